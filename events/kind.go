package events

import "fmt"

// Kind is the fine-grained identity of an event, like [KindKeyPressed].
type Kind int

const (
	KindNone Kind = iota
	KindWindowClose
	KindWindowResize
	KindWindowFocus
	KindWindowLostFocus
	KindWindowMoved
	KindAppTick
	KindAppUpdate
	KindAppRender
	KindKeyPressed
	KindKeyReleased
	KindMouseButtonPressed
	KindMouseButtonReleased
	KindMouseMoved
	KindMouseScrolled
)

var kindNames = [...]string{
	KindNone:                "None",
	KindWindowClose:         "WindowClose",
	KindWindowResize:        "WindowResize",
	KindWindowFocus:         "WindowFocus",
	KindWindowLostFocus:     "WindowLostFocus",
	KindWindowMoved:         "WindowMoved",
	KindAppTick:             "AppTick",
	KindAppUpdate:           "AppUpdate",
	KindAppRender:           "AppRender",
	KindKeyPressed:          "KeyPressed",
	KindKeyReleased:         "KeyReleased",
	KindMouseButtonPressed:  "MouseButtonPressed",
	KindMouseButtonReleased: "MouseButtonReleased",
	KindMouseMoved:          "MouseMoved",
	KindMouseScrolled:       "MouseScrolled",
}

// Kinds returns every defined [Kind] except [KindNone], in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames)-1)
	for k := KindWindowClose; int(k) < len(kindNames); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}
