package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

// SignalContext returns a context that is cancelled when any of the given signals are received, so the frame loop can finish its frame and tear down.
// If a second signal is received, then [os.Exit] is called with a non-zero exit code.
// Calling the returned cancel function releases the signal registration, whether or not a signal was received.
func SignalContext(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel, _ := signalContext(parent, signals...)
	return ctx, cancel
}

// signalContext is [SignalContext], plus a channel that is closed once signals are no longer being watched.
func signalContext(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc, <-chan struct{}) {
	if len(signals) == 0 {
		panic("no signals passed to SignalContext")
	}
	ctx, cancelCtx := context.WithCancel(parent)
	var (
		released = make(chan struct{})
		done     = make(chan struct{})
		once     sync.Once
	)
	cancel := func() {
		once.Do(func() {
			close(released)
		})
		cancelCtx()
	}
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, signals...)
	go func() {
		defer close(done)
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelCtx()
		case <-ctx.Done():
			return
		}
		select {
		case <-sigs:
			os.Exit(1)
		case <-released:
		case <-parent.Done():
		}
	}()
	return ctx, cancel, done
}
