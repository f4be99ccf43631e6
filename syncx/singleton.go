package syncx

import (
	"sync"
	"sync/atomic"
)

// Singleton holds a process-wide value that is explicitly initialized and torn down.
//
// Unlike a [sync.Once], a Singleton may be shut down and initialized again, which keeps shutdown ordering in the hands of the application.
// [Singleton.Get] will still initialize the value on first use, so callers that never call [Singleton.Init] get a working default.
type Singleton[T any] struct {
	mux      sync.Mutex
	current  atomic.Pointer[T]
	factory  func() T
	teardown func(T)
}

// NewSingleton creates a [Singleton] that uses factory to create its value.
// The teardown function is optional, and is called with the current value in [Singleton.Shutdown].
func NewSingleton[T any](factory func() T, teardown func(T)) *Singleton[T] {
	if factory == nil {
		panic("nil factory function")
	}
	return &Singleton[T]{
		factory:  factory,
		teardown: teardown,
	}
}

// Init creates the value if it doesn't exist yet.
// Returns true if this call created the value.
func (s *Singleton[T]) Init() (T, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if cur := s.current.Load(); cur != nil {
		return *cur, false
	}
	val := s.factory()
	s.current.Store(&val)
	return val, true
}

// InitFunc is like [Singleton.Init], but uses factory instead of the default factory for this initialization only.
// This allows a caller to configure the value at startup.
func (s *Singleton[T]) InitFunc(factory func() T) (T, bool) {
	if factory == nil {
		panic("nil factory function")
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if cur := s.current.Load(); cur != nil {
		return *cur, false
	}
	val := factory()
	s.current.Store(&val)
	return val, true
}

// Get returns the current value, initializing it if needed.
// The fast path is a single atomic load.
func (s *Singleton[T]) Get() T {
	if cur := s.current.Load(); cur != nil {
		return *cur
	}
	val, _ := s.Init()
	return val
}

// IsSet reports whether the value is currently initialized.
func (s *Singleton[T]) IsSet() bool {
	return s.current.Load() != nil
}

// Shutdown runs the teardown function for the current value and clears it.
// Returns false if there was nothing to shut down.
// A later call to [Singleton.Init] or [Singleton.Get] will create a new value.
func (s *Singleton[T]) Shutdown() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	cur := s.current.Swap(nil)
	if cur == nil {
		return false
	}
	if s.teardown != nil {
		s.teardown(*cur)
	}
	return true
}
