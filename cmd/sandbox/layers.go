package main

import (
	"github.com/saylorsolutions/nain/app"
	"github.com/saylorsolutions/nain/events"
	"github.com/saylorsolutions/nain/window"
)

// keyEscape matches the key code the native layer reports for the escape key.
const keyEscape uint32 = 256

// scriptLayer feeds native events to the window on the frame they're scheduled for, standing in for a user.
type scriptLayer struct {
	win    *window.Headless
	script map[uint64][]window.NativeEvent
}

func demoScript() map[uint64][]window.NativeEvent {
	return map[uint64][]window.NativeEvent{
		1:  {window.NativeFocus{Focused: true}},
		3:  {window.NativeCursorPos{X: 320, Y: 200}, window.NativeMouseButton{Button: 0, Action: window.Press}},
		4:  {window.NativeMouseButton{Button: 0, Action: window.Release}},
		6:  {window.NativeKey{Key: 87, Action: window.Press}},
		7:  {window.NativeKey{Key: 87, Action: window.Repeat}},
		8:  {window.NativeKey{Key: 87, Action: window.Release}, window.NativeScroll{YOffset: -1}},
		10: {window.NativeResize{Width: 1920, Height: 1080}},
		12: {window.NativeKey{Key: keyEscape, Action: window.Press}},
		14: {window.NativeClose{}},
	}
}

func (l *scriptLayer) Name() string {
	return "script"
}

func (l *scriptLayer) Attach(rt *app.Runtime, priority uint32) error {
	app.Subscribe(rt, func(e *events.AppTickEvent) {
		if native, ok := l.script[rt.Frame()]; ok {
			l.win.Inject(native...)
		}
	}, priority)
	return nil
}

// gameLayer stands in for game logic, and logs the input that reaches it.
type gameLayer struct {
	moves int
}

func (l *gameLayer) Name() string {
	return "game"
}

func (l *gameLayer) Attach(rt *app.Runtime, priority uint32) error {
	app.Subscribe(rt, func(e *events.KeyPressedEvent) {
		if e.Handled {
			return
		}
		rt.Log.Info("Game input", "event", e.String())
	}, priority)
	app.Subscribe(rt, func(e *events.MouseButtonPressedEvent) {
		if e.Handled {
			return
		}
		rt.Log.Info("Game input", "event", e.String())
	}, priority)
	app.Subscribe(rt, func(e *events.MouseMovedEvent) {
		l.moves++
	}, priority)
	app.Subscribe(rt, func(e *events.WindowResizeEvent) {
		rt.Log.Info("Viewport changed", "event", e.String())
	}, priority)
	app.Subscribe(rt, func(e *events.AppRenderEvent) {
		if rt.Frame()%5 == 0 {
			rt.Log.Debug("Rendered frame", "frame", rt.Frame(), "cursor_moves", l.moves)
		}
	}, priority)
	return nil
}

func (l *gameLayer) Detach() {
	l.moves = 0
}

// inputOverlay sits on top of the game, and consumes the escape key to stop the application.
type inputOverlay struct{}

func (l *inputOverlay) Name() string {
	return "input"
}

func (l *inputOverlay) Attach(rt *app.Runtime, priority uint32) error {
	app.Subscribe(rt, func(e *events.KeyPressedEvent) {
		if e.KeyCode != keyEscape {
			return
		}
		e.Handled = true
		rt.Log.Info("Escape pressed, stopping")
		rt.Stop()
	}, priority)
	app.Subscribe(rt, func(e *events.WindowCloseEvent) {
		rt.Log.Info("Window close requested")
	}, priority)
	return nil
}
