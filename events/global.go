package events

import "github.com/saylorsolutions/nain/syncx"

var defaultRegistry = syncx.NewSingleton(func() *Registry {
	return NewRegistry()
}, func(r *Registry) {
	r.Close()
})

// Init sets up the process-wide [Registry] with the given options.
// Returns false if the registry was already initialized, either by a previous call to Init or by use of the package level functions.
//
// Applications should call Init during startup and [Shutdown] during teardown.
func Init(opts ...RegistryOption) bool {
	_, initialized := defaultRegistry.InitFunc(func() *Registry {
		return NewRegistry(opts...)
	})
	return initialized
}

// Shutdown drops every bus in the process-wide [Registry] and discards it.
// A later call to [Init] or any package level function creates a new one.
// Event ids are kept, so they stay stable for the life of the process.
func Shutdown() bool {
	return defaultRegistry.Shutdown()
}

// Default returns the process-wide [Registry], creating it with default options if needed.
func Default() *Registry {
	return defaultRegistry.Get()
}

// NewBus creates a bus with the given name in the process-wide [Registry].
// Creating a bus with a name that's already in use is a programming error, and panics with a [FatalError] wrapping [ErrDuplicateBus].
func NewBus(name string, opts ...BusOption) *Bus {
	return Default().MustNewBus(name, opts...)
}

// TryNewBus is like [NewBus], but returns an error instead of panicking.
func TryNewBus(name string, opts ...BusOption) (*Bus, error) {
	return Default().NewBus(name, opts...)
}

// DropBus removes the named bus from the process-wide [Registry].
func DropBus(name string) {
	Default().DropBus(name)
}

// Subscribe registers handler for events of type T on the named bus.
// See [SubscribeIn].
func Subscribe[T any](busName string, handler Handler[T], priority uint32) {
	SubscribeIn(Default(), busName, handler, priority)
}

// SubscribeToken registers handler for events of type T on the named bus, and returns a [Token] for [Unsubscribe].
func SubscribeToken[T any](busName string, handler Handler[T], priority uint32) Token {
	return SubscribeTokenIn(Default(), busName, handler, priority)
}

// Unsubscribe removes a subscription made with [SubscribeToken].
func Unsubscribe(busName string, token Token) bool {
	return Default().Unsubscribe(busName, token)
}

// Dispatch sends event to the handlers for T on the named bus.
// See [DispatchIn].
func Dispatch[T any](busName string, event *T) {
	DispatchIn(Default(), busName, event)
}

// HandlerCount returns the number of handlers for T on the named bus.
func HandlerCount[T any](busName string) int {
	return HandlerCountIn[T](Default(), busName)
}
