package window

import (
	"fmt"
	"github.com/saylorsolutions/nain/config"
	"github.com/saylorsolutions/nain/events"
	"github.com/saylorsolutions/nain/syncx"
	"log/slog"
	"sync"
)

// Props describes a window to create.
type Props struct {
	Title  string
	Width  uint32
	Height uint32
	VSync  bool
}

// PropsFromConfig converts the window section of a [config.Config].
func PropsFromConfig(conf config.WindowConfig) Props {
	return Props{
		Title:  conf.Title,
		Width:  conf.Width,
		Height: conf.Height,
		VSync:  conf.VSync,
	}
}

// Window is the facade the application uses to drive a platform window.
type Window interface {
	// OnUpdate processes pending native events, dispatching them to the window's bus.
	OnUpdate()
	Width() uint32
	Height() uint32
	SetVSync(enabled bool)
	IsVSync() bool
	Close()
}

// Option configures a [Headless] window.
type Option func(w *Headless)

// WithRegistry dispatches to buses in reg instead of the process-wide registry.
func WithRegistry(reg *events.Registry) Option {
	return func(w *Headless) {
		w.reg = reg
	}
}

// WithLogger sets the logger for window lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Headless) {
		w.log = logger
	}
}

var _ Window = (*Headless)(nil)

// Headless is a [Window] with no native surface.
// Native events are fed in with [Headless.Inject], from any goroutine, and are translated and dispatched on the next call to [Headless.OnUpdate].
// This is what the sandbox and tests use in place of a platform window.
type Headless struct {
	bus string
	reg *events.Registry
	log *slog.Logger

	mux     sync.Mutex
	props   Props
	pending []NativeEvent
	closed  bool
}

// NewHeadless creates a [Headless] window that dispatches to the named bus.
func NewHeadless(props Props, busName string, opts ...Option) *Headless {
	w := &Headless{
		bus:   busName,
		props: props,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With("window", props.Title)
	w.log.Debug("Created window", "width", props.Width, "height", props.Height, "vsync", props.VSync)
	return w
}

// Inject queues native events for the next [Headless.OnUpdate].
// Events injected after [Headless.Close] are dropped.
func (w *Headless) Inject(native ...NativeEvent) {
	syncx.LockFunc(&w.mux, func() {
		if w.closed {
			return
		}
		w.pending = append(w.pending, native...)
	})
}

func (w *Headless) OnUpdate() {
	pending := syncx.LockFuncT(&w.mux, func() []NativeEvent {
		pending := w.pending
		w.pending = nil
		return pending
	})
	for _, native := range pending {
		w.translate(native)
	}
}

func (w *Headless) Width() uint32 {
	return syncx.LockFuncT(&w.mux, func() uint32 {
		return w.props.Width
	})
}

func (w *Headless) Height() uint32 {
	return syncx.LockFuncT(&w.mux, func() uint32 {
		return w.props.Height
	})
}

func (w *Headless) SetVSync(enabled bool) {
	syncx.LockFunc(&w.mux, func() {
		w.props.VSync = enabled
	})
}

func (w *Headless) IsVSync() bool {
	return syncx.LockFuncT(&w.mux, func() bool {
		return w.props.VSync
	})
}

// Close drops pending events and stops accepting new ones.
func (w *Headless) Close() {
	syncx.LockFunc(&w.mux, func() {
		if w.closed {
			return
		}
		w.closed = true
		w.pending = nil
		w.log.Debug("Closed window")
	})
}

// translate maps one native event to its engine event and dispatches it.
// Resizes update the window size before the event is dispatched, so handlers see the new size.
func (w *Headless) translate(native NativeEvent) {
	switch ev := native.(type) {
	case NativeKey:
		switch ev.Action {
		case Press:
			send(w, events.KeyPressedEvent{KeyCode: ev.Key})
		case Repeat:
			send(w, events.KeyPressedEvent{KeyCode: ev.Key, RepeatCount: 1})
		case Release:
			send(w, events.KeyReleasedEvent{KeyCode: ev.Key})
		}
	case NativeMouseButton:
		switch ev.Action {
		case Press, Repeat:
			send(w, events.MouseButtonPressedEvent{Button: ev.Button})
		case Release:
			send(w, events.MouseButtonReleasedEvent{Button: ev.Button})
		}
	case NativeCursorPos:
		send(w, events.MouseMovedEvent{X: ev.X, Y: ev.Y})
	case NativeScroll:
		send(w, events.MouseScrolledEvent{XOffset: ev.XOffset, YOffset: ev.YOffset})
	case NativeResize:
		syncx.LockFunc(&w.mux, func() {
			w.props.Width = ev.Width
			w.props.Height = ev.Height
		})
		send(w, events.WindowResizeEvent{Width: ev.Width, Height: ev.Height})
	case NativeMove:
		send(w, events.WindowMovedEvent{X: ev.X, Y: ev.Y})
	case NativeFocus:
		if ev.Focused {
			send(w, events.WindowFocusEvent{})
		} else {
			send(w, events.WindowLostFocusEvent{})
		}
	case NativeClose:
		send(w, events.WindowCloseEvent{})
	default:
		w.log.Warn("Dropping unrecognized native event", "type", fmt.Sprintf("%T", native))
	}
}

func send[T any](w *Headless, evt T) {
	if w.reg != nil {
		events.DispatchIn(w.reg, w.bus, &evt)
		return
	}
	events.Dispatch(w.bus, &evt)
}
