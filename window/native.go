package window

// Action is the state change reported for a key or mouse button by the native layer.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// NativeEvent is an input or window notification as reported by the native windowing layer, before it's translated into an engine event.
type NativeEvent interface {
	native()
}

type (
	// NativeKey reports a key change. Repeat is sent while a key is held.
	NativeKey struct {
		Key    uint32
		Action Action
	}
	NativeMouseButton struct {
		Button uint32
		Action Action
	}
	NativeCursorPos struct {
		X, Y float64
	}
	NativeScroll struct {
		XOffset, YOffset float64
	}
	NativeResize struct {
		Width, Height uint32
	}
	NativeMove struct {
		X, Y int32
	}
	NativeFocus struct {
		Focused bool
	}
	NativeClose struct{}
)

func (NativeKey) native()         {}
func (NativeMouseButton) native() {}
func (NativeCursorPos) native()   {}
func (NativeScroll) native()      {}
func (NativeResize) native()      {}
func (NativeMove) native()        {}
func (NativeFocus) native()       {}
func (NativeClose) native()       {}
