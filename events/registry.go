package events

import (
	"fmt"
	"github.com/saylorsolutions/nain/syncx"
	"golang.org/x/time/rate"
	"log/slog"
	"slices"
	"sync"
)

// maxWarnedBuses bounds the number of unknown bus names with warning state.
// Past this, all warning state is reset, so a client generating names can't grow the registry without limit.
const maxWarnedBuses = 256

// Registry maps bus names to their subscriptions.
// Most code uses the process-wide registry through the package level functions, but a Registry may also be used directly to keep a set of buses isolated.
type Registry struct {
	conf registryConf

	mux   sync.RWMutex
	buses map[string]*busState

	warnMux  sync.Mutex
	warnings map[string]*rate.Sometimes
}

type busState struct {
	name string
	conf busConf

	mux   sync.RWMutex
	table *table
}

// NewRegistry creates an empty [Registry].
func NewRegistry(opts ...RegistryOption) *Registry {
	conf := registryConf{
		warnInterval: DefaultWarnInterval,
	}
	for _, opt := range opts {
		opt(&conf)
	}
	return &Registry{
		conf:     conf,
		buses:    map[string]*busState{},
		warnings: map[string]*rate.Sometimes{},
	}
}

// NewBus registers a new bus with the given name.
// Returns an error wrapping [ErrDuplicateBus] if the name is already in use.
func (r *Registry) NewBus(name string, opts ...BusOption) (*Bus, error) {
	var conf busConf
	for _, opt := range opts {
		opt(&conf)
	}
	state := &busState{
		name:  name,
		conf:  conf,
		table: newTable(),
	}
	err := syncx.LockFuncT(&r.mux, func() error {
		if _, ok := r.buses[name]; ok {
			return fmt.Errorf("%w: '%s'", ErrDuplicateBus, name)
		}
		r.buses[name] = state
		return nil
	})
	if err != nil {
		return nil, err
	}
	syncx.LockFunc(&r.warnMux, func() {
		delete(r.warnings, name)
	})
	return &Bus{name: name, reg: r, state: state}, nil
}

// MustNewBus is like [Registry.NewBus], but a duplicate name is treated as a programming error and panics with a [FatalError].
func (r *Registry) MustNewBus(name string, opts ...BusOption) *Bus {
	bus, err := r.NewBus(name, opts...)
	if err != nil {
		panic(&FatalError{Err: err})
	}
	return bus
}

// DropBus removes the named bus and all of its subscriptions.
// Dropping a bus that doesn't exist does nothing.
func (r *Registry) DropBus(name string) {
	state := syncx.LockFuncT(&r.mux, func() *busState {
		state := r.buses[name]
		delete(r.buses, name)
		return state
	})
	state.clear()
}

// dropState removes state only if it's still the bus registered under its name.
// This keeps a stale [Bus] handle from dropping a newer bus with the same name.
func (r *Registry) dropState(state *busState) {
	removed := syncx.LockFuncT(&r.mux, func() bool {
		if r.buses[state.name] != state {
			return false
		}
		delete(r.buses, state.name)
		return true
	})
	if removed {
		state.clear()
	}
}

// HasBus reports whether a bus with the given name exists.
func (r *Registry) HasBus(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// BusNames returns the names of all current buses in sorted order.
func (r *Registry) BusNames() []string {
	names := syncx.RLockFuncT(&r.mux, func() []string {
		names := make([]string, 0, len(r.buses))
		for name := range r.buses {
			names = append(names, name)
		}
		return names
	})
	slices.Sort(names)
	return names
}

// Close drops every bus in the [Registry].
// The Registry may still be used afterward.
func (r *Registry) Close() {
	states := syncx.LockFuncT(&r.mux, func() map[string]*busState {
		states := r.buses
		r.buses = map[string]*busState{}
		return states
	})
	for _, state := range states {
		state.clear()
	}
}

// Unsubscribe removes the subscription identified by token from the named bus.
// Returns false if the bus or subscription doesn't exist.
func (r *Registry) Unsubscribe(busName string, token Token) bool {
	if token.IsZero() {
		return false
	}
	state, ok := r.lookup(busName)
	if !ok {
		r.unknownBus(busName, "unsubscribe")
		return false
	}
	return syncx.LockFuncT(&state.mux, func() bool {
		return state.table.remove(token)
	})
}

func (r *Registry) lookup(name string) (*busState, bool) {
	return syncx.RLockFuncOK(&r.mux, func() (*busState, bool) {
		state, ok := r.buses[name]
		return state, ok
	})
}

func (r *Registry) logger() *slog.Logger {
	if r.conf.logger != nil {
		return r.conf.logger
	}
	return slog.Default()
}

// unknownBus reports an operation against a missing bus.
// Warnings are rate limited per bus name so a frame loop publishing to a missing bus doesn't flood the log.
func (r *Registry) unknownBus(name, op string) {
	if r.conf.observer != nil {
		r.conf.observer.UnknownBus(name, op)
	}
	sometimes := syncx.LockFuncT(&r.warnMux, func() *rate.Sometimes {
		s, ok := r.warnings[name]
		if !ok {
			if len(r.warnings) >= maxWarnedBuses {
				clear(r.warnings)
			}
			s = &rate.Sometimes{First: 1, Interval: r.conf.warnInterval}
			if r.conf.warnInterval <= 0 {
				s = &rate.Sometimes{Every: 1}
			}
			r.warnings[name] = s
		}
		return s
	})
	sometimes.Do(func() {
		r.logger().Warn("Ignoring operation on unknown bus", "bus", name, "op", op, "error", ErrUnknownBus)
	})
}

func (s *busState) clear() {
	if s == nil {
		return
	}
	syncx.LockFunc(&s.mux, func() {
		s.table.clear()
	})
}
