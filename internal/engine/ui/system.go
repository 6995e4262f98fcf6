package ui

import (
	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/ui2d"
)

// SystemName is the dispatcher name of the ui system.
const SystemName = "ui_system"

// MeasureFunc returns the size of text drawn at scale.
type MeasureFunc func(text string, scale float32) (float32, float32)

// System instantiates loaded layouts and resolves element rectangles against
// the ScreenDimensions resource.
type System struct {
	measure MeasureFunc
}

// NewSystem creates the ui system. A nil measure uses the ui2d font metrics.
func NewSystem(measure MeasureFunc) *System {
	if measure == nil {
		measure = ui2d.NewAtlas().MeasureText
	}
	return &System{measure: measure}
}

// Run implements ecs.System.
func (s *System) Run(w *ecs.World) {
	Apply(w)

	dims, ok := ecs.Resource[ecs.ScreenDimensions](w)
	if !ok {
		return
	}
	sw, sh := float32(dims.Width), float32(dims.Height)
	texts := ecs.StorageOf[Text](w)
	ecs.StorageOf[Transform](w).Each(func(e ecs.Entity, t *Transform) {
		var cw, ch float32
		if txt, ok := texts.Get(e); ok {
			cw, ch = s.measure(txt.Text, txt.Scale)
		}
		t.Resolve(sw, sh, cw, ch)
	})
}

// Bundle registers the ui system.
type Bundle struct {
	Measure MeasureFunc
}

// Build implements ecs.Bundle.
func (b *Bundle) Build(d *ecs.DispatcherBuilder) error {
	d.With(NewSystem(b.Measure), SystemName)
	return nil
}
