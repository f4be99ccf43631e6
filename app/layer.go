package app

import "fmt"

// OverlayPriority is the lowest priority given to overlays, so any overlay sees events before every layer.
const OverlayPriority uint32 = 1 << 16

// Layer is one slice of an application, like the game world or a debug overlay.
// Attach subscribes the layer's handlers using the given priority.
type Layer interface {
	Name() string
	Attach(rt *Runtime, priority uint32) error
}

// Detacher may be implemented by a [Layer] that needs cleanup when the application stops.
type Detacher interface {
	Detach()
}

// LayerStack is an [Application] made of layers.
// Layers pushed later sit on top of earlier ones and receive events first.
// Overlays always sit on top of layers.
type LayerStack struct {
	layers   []Layer
	overlays []Layer
	attached []Layer
}

var _ Application = (*LayerStack)(nil)

func (s *LayerStack) PushLayer(layer Layer) *LayerStack {
	s.layers = append(s.layers, layer)
	return s
}

func (s *LayerStack) PushOverlay(overlay Layer) *LayerStack {
	s.overlays = append(s.overlays, overlay)
	return s
}

// Setup attaches layers from the bottom of the stack to the top.
func (s *LayerStack) Setup(rt *Runtime) error {
	if len(s.layers) >= int(OverlayPriority) {
		return fmt.Errorf("too many layers: %d", len(s.layers))
	}
	for i, layer := range s.layers {
		if err := s.attach(rt, layer, uint32(i+1)); err != nil {
			return err
		}
	}
	for i, overlay := range s.overlays {
		if err := s.attach(rt, overlay, OverlayPriority+uint32(i)); err != nil {
			return err
		}
	}
	return nil
}

func (s *LayerStack) attach(rt *Runtime, layer Layer, priority uint32) error {
	if err := layer.Attach(rt, priority); err != nil {
		return fmt.Errorf("failed to attach layer '%s': %w", layer.Name(), err)
	}
	s.attached = append(s.attached, layer)
	rt.Log.Debug("Attached layer", "layer", layer.Name(), "priority", priority)
	return nil
}

// Teardown detaches layers from the top of the stack down.
func (s *LayerStack) Teardown() {
	for i := len(s.attached) - 1; i >= 0; i-- {
		if d, ok := s.attached[i].(Detacher); ok {
			d.Detach()
		}
	}
	s.attached = nil
}
