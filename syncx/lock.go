package syncx

import "sync"

// LockFunc runs fn while holding mux.
func LockFunc(mux sync.Locker, fn func()) {
	mux.Lock()
	defer mux.Unlock()
	fn()
}

// LockFuncT runs fn while holding mux and returns its result.
func LockFuncT[T any](mux sync.Locker, fn func() T) T {
	mux.Lock()
	defer mux.Unlock()
	return fn()
}

// RLocker is satisfied by [sync.RWMutex], and is used for functions that only need shared access.
type RLocker interface {
	RLock()
	RUnlock()
}

// RLockFunc runs fn while holding a read lock on mux.
// The read lock is released even if fn panics, so a panic may propagate to callers without leaving mux locked.
func RLockFunc(mux RLocker, fn func()) {
	mux.RLock()
	defer mux.RUnlock()
	fn()
}

// RLockFuncT runs fn while holding a read lock on mux and returns its result.
func RLockFuncT[T any](mux RLocker, fn func() T) T {
	mux.RLock()
	defer mux.RUnlock()
	return fn()
}

// RLockFuncOK is like [RLockFuncT], but for lookups that report whether a value was found.
func RLockFuncOK[T any](mux RLocker, fn func() (T, bool)) (T, bool) {
	mux.RLock()
	defer mux.RUnlock()
	return fn()
}
