package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/saylorsolutions/nain/config"
	"github.com/saylorsolutions/nain/events"
	"github.com/saylorsolutions/nain/window"
	"log/slog"
	"math"
	"sync/atomic"
	"time"
)

var (
	ErrSetup = errors.New("application setup failed")
)

// Application is the pluggable part of the engine.
// Setup is called once the bus exists, and is where an application subscribes its handlers.
// Teardown is called before the bus is dropped.
type Application interface {
	Setup(rt *Runtime) error
	Teardown()
}

// StopReason describes why [Run] returned.
type StopReason string

const (
	StopFrameLimit  StopReason = "frame limit"
	StopWindowClose StopReason = "window closed"
	StopRequested   StopReason = "stop requested"
	StopCancelled   StopReason = "context cancelled"
)

// Runtime gives an [Application] access to the resources owned by [Run].
type Runtime struct {
	// Bus is the name of the bus shared by the window and the application.
	Bus    string
	Window window.Window
	// Queue is flushed once per frame, after input is processed.
	Queue *events.Queue
	Log   *slog.Logger

	reg      *events.Registry
	frame    atomic.Uint64
	stopping atomic.Pointer[StopReason]
}

// Registry returns the registry that the runtime's bus lives in.
func (rt *Runtime) Registry() *events.Registry {
	return rt.reg
}

// Frame returns the number of the current frame, starting at 1.
func (rt *Runtime) Frame() uint64 {
	return rt.frame.Load()
}

// Stop asks the frame loop to exit after the current frame.
func (rt *Runtime) Stop() {
	rt.requestStop(StopRequested)
}

func (rt *Runtime) requestStop(reason StopReason) {
	rt.stopping.CompareAndSwap(nil, &reason)
}

// Subscribe registers a handler for T on the runtime's bus.
func Subscribe[T any](rt *Runtime, handler events.Handler[T], priority uint32) {
	events.SubscribeIn(rt.reg, rt.Bus, handler, priority)
}

// Dispatch sends event to the runtime's bus.
func Dispatch[T any](rt *Runtime, event *T) {
	events.DispatchIn(rt.reg, rt.Bus, event)
}

type runConf struct {
	reg *events.Registry
	log *slog.Logger
}

// Option configures [Run].
type Option func(conf *runConf)

// WithRegistry creates the bus in reg instead of the process-wide registry.
func WithRegistry(reg *events.Registry) Option {
	return func(conf *runConf) {
		conf.reg = reg
	}
}

// WithLogger sets the logger given to the application in [Runtime].
func WithLogger(logger *slog.Logger) Option {
	return func(conf *runConf) {
		conf.log = logger
	}
}

// Run creates the bus named in conf, sets up application, and runs the frame loop until it's told to stop.
//
// Each frame dispatches an [events.AppTickEvent], processes window input, flushes the runtime queue, then dispatches [events.AppUpdateEvent] and [events.AppRenderEvent].
// The loop stops when ctx is cancelled, a [events.WindowCloseEvent] is dispatched, the application calls [Runtime.Stop], or the configured frame limit is reached.
// The bus is dropped before Run returns, and panics from handlers are not recovered.
func Run(ctx context.Context, conf config.Config, application Application, win window.Window, opts ...Option) (StopReason, error) {
	rc := runConf{
		reg: events.Default(),
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(&rc)
	}
	bus, err := rc.reg.NewBus(conf.Bus)
	if err != nil {
		return "", err
	}
	defer bus.Close()

	rt := &Runtime{
		Bus:    conf.Bus,
		Window: win,
		Queue:  events.NewQueue(rc.reg),
		Log:    rc.log.With("bus", conf.Bus),
		reg:    rc.reg,
	}
	// Lowest priority, so every other handler sees the close first.
	Subscribe(rt, func(e *events.WindowCloseEvent) {
		rt.requestStop(StopWindowClose)
	}, 0)

	if err := application.Setup(rt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSetup, err)
	}
	defer application.Teardown()

	reason := loop(ctx, conf, rt)
	rt.Queue.Discard()
	rt.Log.Info("Application stopped", "reason", string(reason), "frames", rt.Frame())
	return reason, nil
}

func loop(ctx context.Context, conf config.Config, rt *Runtime) StopReason {
	var tick <-chan time.Time
	if conf.FrameTime > 0 {
		ticker := time.NewTicker(conf.FrameTime)
		defer ticker.Stop()
		tick = ticker.C
	}
	limit := uint64(math.MaxUint64)
	if conf.Frames > 0 {
		limit = uint64(conf.Frames)
	}
	for {
		if ctx.Err() != nil {
			return StopCancelled
		}
		rt.frame.Add(1)
		Dispatch(rt, &events.AppTickEvent{})
		if rt.Window != nil {
			rt.Window.OnUpdate()
		}
		rt.Queue.Flush()
		Dispatch(rt, &events.AppUpdateEvent{})
		Dispatch(rt, &events.AppRenderEvent{})

		if reason := rt.stopping.Load(); reason != nil {
			return *reason
		}
		if rt.Frame() >= limit {
			return StopFrameLimit
		}
		if tick == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return StopCancelled
		case <-tick:
		}
	}
}
