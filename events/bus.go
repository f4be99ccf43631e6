package events

import (
	"github.com/saylorsolutions/nain/assert"
	"github.com/saylorsolutions/nain/syncx"
	"reflect"
	"time"
)

// Bus is the owner's handle to a named bus.
// The bus lives until [Bus.Close] is called, and all dispatches and subscriptions refer to it by name.
type Bus struct {
	name  string
	reg   *Registry
	state *busState
}

// Name returns the name the bus was registered with.
func (b *Bus) Name() string {
	return b.name
}

// Close removes the bus and all of its subscriptions, making the name available again.
// This is safe to call more than once, and won't affect a newer bus created with the same name.
func (b *Bus) Close() {
	b.reg.dropState(b.state)
}

// SubscribeIn registers handler for events of type T on the named bus in r.
//
// Handlers with a higher priority run first.
// Among handlers with equal priority, the most recently subscribed runs first.
// If the bus doesn't exist then a warning is logged and nothing changes.
func SubscribeIn[T any](r *Registry, busName string, handler Handler[T], priority uint32) {
	SubscribeTokenIn(r, busName, handler, priority)
}

// SubscribeTokenIn is like [SubscribeIn], but returns a [Token] that can be passed to [Registry.Unsubscribe].
// The zero Token is returned if the bus doesn't exist.
func SubscribeTokenIn[T any](r *Registry, busName string, handler Handler[T], priority uint32) Token {
	assert.True("handler is not nil", handler != nil)
	state, ok := r.lookup(busName)
	if !ok {
		r.unknownBus(busName, "subscribe")
		return Token{}
	}
	id := idFor[T]()
	rec := handlerRecord[T]{
		priority: priority,
		token:    newToken(),
		handler:  handler,
	}
	syncx.LockFunc(&state.mux, func() {
		insertHandler(state.table, id, rec)
	})
	return rec.token
}

// DispatchIn sends event to every handler for T on the named bus in r, in priority order.
//
// Handlers run synchronously on the calling goroutine, and each sees the changes made by those before it.
// The bus lock is only held long enough to take a snapshot of the handler list, so a handler may dispatch or subscribe on any bus, including this one.
// Subscriptions made during a dispatch take effect for the next dispatch.
// A panic in a handler stops the dispatch and propagates to the caller.
//
// If the bus doesn't exist then a warning is logged and no handlers are called.
func DispatchIn[T any](r *Registry, busName string, event *T) {
	state, ok := r.lookup(busName)
	if !ok {
		r.unknownBus(busName, "dispatch")
		return
	}
	id := idFor[T]()
	records := syncx.RLockFuncT(&state.mux, func() []handlerRecord[T] {
		return snapshot[T](state.table, id)
	})

	var (
		observer = r.conf.observer
		start    time.Time
		called   int
	)
	if observer != nil {
		start = time.Now()
	}
	handleable, canStop := any(event).(Handleable)
	canStop = canStop && state.conf.stopOnHandled && event != nil
	for i := len(records) - 1; i >= 0; i-- {
		records[i].handler(event)
		called++
		if canStop && handleable.IsHandled() {
			break
		}
	}
	if observer != nil {
		observer.Dispatched(busName, eventName(event), called, time.Since(start))
	}
}

// HandlerCountIn returns the number of handlers for T on the named bus in r.
// Returns 0 if the bus doesn't exist.
func HandlerCountIn[T any](r *Registry, busName string) int {
	state, ok := r.lookup(busName)
	if !ok {
		return 0
	}
	id := idFor[T]()
	return syncx.RLockFuncT(&state.mux, func() int {
		return len(snapshot[T](state.table, id))
	})
}

func eventName[T any](event *T) string {
	if event != nil {
		if e, ok := any(event).(Event); ok {
			return e.Name()
		}
	}
	return reflect.TypeFor[T]().String()
}
