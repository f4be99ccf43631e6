package events

import "fmt"

type WindowCloseEvent struct{}

func (WindowCloseEvent) Kind() Kind                   { return KindWindowClose }
func (WindowCloseEvent) Category() Category           { return CategoryApplication }
func (WindowCloseEvent) IsInCategory(c Category) bool { return CategoryApplication.Has(c) }
func (WindowCloseEvent) Name() string                 { return KindWindowClose.String() }
func (WindowCloseEvent) String() string               { return "WindowCloseEvent" }

// WindowResizeEvent reports the new framebuffer size in pixels.
type WindowResizeEvent struct {
	Width  uint32
	Height uint32
}

func (WindowResizeEvent) Kind() Kind                   { return KindWindowResize }
func (WindowResizeEvent) Category() Category           { return CategoryApplication }
func (WindowResizeEvent) IsInCategory(c Category) bool { return CategoryApplication.Has(c) }
func (WindowResizeEvent) Name() string                 { return KindWindowResize.String() }
func (e WindowResizeEvent) String() string {
	return fmt.Sprintf("WindowResizeEvent: %d, %d", e.Width, e.Height)
}

type WindowFocusEvent struct{}

func (WindowFocusEvent) Kind() Kind                   { return KindWindowFocus }
func (WindowFocusEvent) Category() Category           { return CategoryApplication }
func (WindowFocusEvent) IsInCategory(c Category) bool { return CategoryApplication.Has(c) }
func (WindowFocusEvent) Name() string                 { return KindWindowFocus.String() }
func (WindowFocusEvent) String() string               { return "WindowFocusEvent" }

type WindowLostFocusEvent struct{}

func (WindowLostFocusEvent) Kind() Kind                   { return KindWindowLostFocus }
func (WindowLostFocusEvent) Category() Category           { return CategoryApplication }
func (WindowLostFocusEvent) IsInCategory(c Category) bool { return CategoryApplication.Has(c) }
func (WindowLostFocusEvent) Name() string                 { return KindWindowLostFocus.String() }
func (WindowLostFocusEvent) String() string               { return "WindowLostFocusEvent" }

// WindowMovedEvent reports the new position of the window's top left corner in screen coordinates.
type WindowMovedEvent struct {
	X int32
	Y int32
}

func (WindowMovedEvent) Kind() Kind                   { return KindWindowMoved }
func (WindowMovedEvent) Category() Category           { return CategoryApplication }
func (WindowMovedEvent) IsInCategory(c Category) bool { return CategoryApplication.Has(c) }
func (WindowMovedEvent) Name() string                 { return KindWindowMoved.String() }
func (e WindowMovedEvent) String() string {
	return fmt.Sprintf("WindowMovedEvent: %d, %d", e.X, e.Y)
}

// AppTickEvent is dispatched at the start of every frame.
type AppTickEvent struct{}

func (AppTickEvent) Kind() Kind                   { return KindAppTick }
func (AppTickEvent) Category() Category           { return CategoryApplication }
func (AppTickEvent) IsInCategory(c Category) bool { return CategoryApplication.Has(c) }
func (AppTickEvent) Name() string                 { return KindAppTick.String() }
func (AppTickEvent) String() string               { return "AppTickEvent" }

type AppUpdateEvent struct{}

func (AppUpdateEvent) Kind() Kind                   { return KindAppUpdate }
func (AppUpdateEvent) Category() Category           { return CategoryApplication }
func (AppUpdateEvent) IsInCategory(c Category) bool { return CategoryApplication.Has(c) }
func (AppUpdateEvent) Name() string                 { return KindAppUpdate.String() }
func (AppUpdateEvent) String() string               { return "AppUpdateEvent" }

type AppRenderEvent struct{}

func (AppRenderEvent) Kind() Kind                   { return KindAppRender }
func (AppRenderEvent) Category() Category           { return CategoryApplication }
func (AppRenderEvent) IsInCategory(c Category) bool { return CategoryApplication.Has(c) }
func (AppRenderEvent) Name() string                 { return KindAppRender.String() }
func (AppRenderEvent) String() string               { return "AppRenderEvent" }
