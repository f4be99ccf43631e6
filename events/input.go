package events

import "fmt"

const (
	keyCategory         = CategoryInput | CategoryKeyboard
	mouseCategory       = CategoryInput | CategoryMouse
	mouseButtonCategory = CategoryInput | CategoryMouse | CategoryMouseButton
)

// KeyPressedEvent is dispatched when a key goes down, and again for each auto-repeat while it's held.
type KeyPressedEvent struct {
	KeyCode     uint32
	RepeatCount uint32
	Handled     bool
}

func (KeyPressedEvent) Kind() Kind                   { return KindKeyPressed }
func (KeyPressedEvent) Category() Category           { return keyCategory }
func (KeyPressedEvent) IsInCategory(c Category) bool { return keyCategory.Has(c) }
func (KeyPressedEvent) Name() string                 { return KindKeyPressed.String() }
func (e KeyPressedEvent) IsHandled() bool            { return e.Handled }
func (e KeyPressedEvent) String() string {
	return fmt.Sprintf("KeyPressedEvent: %d (%d repeats)", e.KeyCode, e.RepeatCount)
}

type KeyReleasedEvent struct {
	KeyCode uint32
	Handled bool
}

func (KeyReleasedEvent) Kind() Kind                   { return KindKeyReleased }
func (KeyReleasedEvent) Category() Category           { return keyCategory }
func (KeyReleasedEvent) IsInCategory(c Category) bool { return keyCategory.Has(c) }
func (KeyReleasedEvent) Name() string                 { return KindKeyReleased.String() }
func (e KeyReleasedEvent) IsHandled() bool            { return e.Handled }
func (e KeyReleasedEvent) String() string {
	return fmt.Sprintf("KeyReleasedEvent: %d", e.KeyCode)
}

// MouseMovedEvent carries the cursor position relative to the window's content area.
type MouseMovedEvent struct {
	X       float64
	Y       float64
	Handled bool
}

func (MouseMovedEvent) Kind() Kind                   { return KindMouseMoved }
func (MouseMovedEvent) Category() Category           { return mouseCategory }
func (MouseMovedEvent) IsInCategory(c Category) bool { return mouseCategory.Has(c) }
func (MouseMovedEvent) Name() string                 { return KindMouseMoved.String() }
func (e MouseMovedEvent) IsHandled() bool            { return e.Handled }
func (e MouseMovedEvent) String() string {
	return fmt.Sprintf("MouseMovedEvent: %v, %v", e.X, e.Y)
}

type MouseScrolledEvent struct {
	XOffset float64
	YOffset float64
	Handled bool
}

func (MouseScrolledEvent) Kind() Kind                   { return KindMouseScrolled }
func (MouseScrolledEvent) Category() Category           { return mouseCategory }
func (MouseScrolledEvent) IsInCategory(c Category) bool { return mouseCategory.Has(c) }
func (MouseScrolledEvent) Name() string                 { return KindMouseScrolled.String() }
func (e MouseScrolledEvent) IsHandled() bool            { return e.Handled }
func (e MouseScrolledEvent) String() string {
	return fmt.Sprintf("MouseScrolledEvent: %v, %v", e.XOffset, e.YOffset)
}

type MouseButtonPressedEvent struct {
	Button  uint32
	Handled bool
}

func (MouseButtonPressedEvent) Kind() Kind                   { return KindMouseButtonPressed }
func (MouseButtonPressedEvent) Category() Category           { return mouseButtonCategory }
func (MouseButtonPressedEvent) IsInCategory(c Category) bool { return mouseButtonCategory.Has(c) }
func (MouseButtonPressedEvent) Name() string                 { return KindMouseButtonPressed.String() }
func (e MouseButtonPressedEvent) IsHandled() bool            { return e.Handled }
func (e MouseButtonPressedEvent) String() string {
	return fmt.Sprintf("MouseButtonPressedEvent: %d", e.Button)
}

type MouseButtonReleasedEvent struct {
	Button  uint32
	Handled bool
}

func (MouseButtonReleasedEvent) Kind() Kind                   { return KindMouseButtonReleased }
func (MouseButtonReleasedEvent) Category() Category           { return mouseButtonCategory }
func (MouseButtonReleasedEvent) IsInCategory(c Category) bool { return mouseButtonCategory.Has(c) }
func (MouseButtonReleasedEvent) Name() string                 { return KindMouseButtonReleased.String() }
func (e MouseButtonReleasedEvent) IsHandled() bool            { return e.Handled }
func (e MouseButtonReleasedEvent) String() string {
	return fmt.Sprintf("MouseButtonReleasedEvent: %d", e.Button)
}
