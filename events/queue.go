package events

import (
	"github.com/saylorsolutions/nain/syncx"
	"sync"
)

// Queue defers dispatches until [Queue.Flush] is called.
// This is useful for handlers that want to trigger more work without running it inside the current dispatch, for example by posting to a queue that the frame loop flushes once per frame.
//
// A Queue is safe for concurrent use.
type Queue struct {
	reg *Registry

	mux     sync.Mutex
	pending []func()
}

// NewQueue creates a [Queue] that dispatches to buses in r.
// If r is nil, then the process-wide [Registry] at the time of the flush is used.
func NewQueue(r *Registry) *Queue {
	return &Queue{reg: r}
}

// Post copies event and queues a dispatch of the copy to the named bus.
func Post[T any](q *Queue, busName string, event T) {
	syncx.LockFunc(&q.mux, func() {
		q.pending = append(q.pending, func() {
			reg := q.reg
			if reg == nil {
				reg = Default()
			}
			DispatchIn(reg, busName, &event)
		})
	})
}

// Len returns the number of queued dispatches.
func (q *Queue) Len() int {
	return syncx.LockFuncT(&q.mux, func() int {
		return len(q.pending)
	})
}

// Flush dispatches all queued events in the order they were posted, and returns how many were dispatched.
// Events posted while flushing are kept for the next call to Flush.
func (q *Queue) Flush() int {
	pending := syncx.LockFuncT(&q.mux, func() []func() {
		pending := q.pending
		q.pending = nil
		return pending
	})
	for _, dispatch := range pending {
		dispatch()
	}
	return len(pending)
}

// Discard drops all queued events without dispatching them.
func (q *Queue) Discard() {
	syncx.LockFunc(&q.mux, func() {
		q.pending = nil
	})
}
