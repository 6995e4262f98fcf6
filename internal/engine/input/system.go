package input

import "github.com/Faultbox/flyview/internal/engine/ecs"

// SystemName is the dispatcher name of the input system.
const SystemName = "input_system"

// EventSource provides the events gathered for the current frame.
type EventSource interface {
	Events() []Event
}

// System feeds the frame's events into the Handler resource.
type System struct {
	source EventSource
}

// NewSystem creates an input system reading from source.
func NewSystem(source EventSource) *System {
	return &System{source: source}
}

// Run implements ecs.System.
func (s *System) Run(w *ecs.World) {
	h, ok := ecs.Resource[Handler](w)
	if !ok {
		return
	}
	h.BeginFrame()
	for _, ev := range s.source.Events() {
		h.Process(ev)
	}
}

// Bundle registers the input system and installs the Handler resource.
type Bundle struct {
	World    *ecs.World
	Source   EventSource
	Bindings *Bindings
}

// Build implements ecs.Bundle.
func (b *Bundle) Build(d *ecs.DispatcherBuilder) error {
	ecs.SetResource(b.World, NewHandler(b.Bindings))
	d.With(NewSystem(b.Source), SystemName)
	return nil
}
