package renderer

import (
	"fmt"

	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/ui"
	"github.com/Faultbox/flyview/internal/engine/ui2d"
)

// RenderUI draws ui elements: backgrounds first, then text centered in each
// element's rectangle.
type RenderUI struct {
	r *ui2d.Renderer
}

// NewRenderUI creates the pass. GPU resources are made in Init.
func NewRenderUI() *RenderUI {
	return &RenderUI{}
}

// Init implements Plugin.
func (p *RenderUI) Init() error {
	r, err := ui2d.New(1, 1)
	if err != nil {
		return fmt.Errorf("ui renderer: %w", err)
	}
	p.r = r
	return nil
}

// Render implements Plugin.
func (p *RenderUI) Render(w *ecs.World, dims ecs.ScreenDimensions) {
	p.r.Resize(dims.Width, dims.Height)
	p.r.Begin()

	texts := ecs.StorageOf[ui.Text](w)
	backgrounds := ecs.StorageOf[ui.Background](w)
	ui.EachResolved(w, func(e ecs.Entity, t *ui.Transform) {
		rect := t.Rect
		if bg, ok := backgrounds.Get(e); ok {
			p.r.DrawRect(rect.X, rect.Y, rect.W, rect.H, ui2d.FromArray(bg.Color))
		}
		txt, ok := texts.Get(e)
		if !ok || txt.Text == "" {
			return
		}
		tw, th := p.r.MeasureText(txt.Text, txt.Scale)
		x := rect.X + (rect.W-tw)/2
		y := rect.Y + (rect.H-th)/2
		p.r.DrawText(x, y, txt.Text, txt.Scale, ui2d.FromArray(txt.Color))
	})

	p.r.End()
}

// Dispose implements Plugin.
func (p *RenderUI) Dispose() {
	if p.r != nil {
		p.r.Close()
	}
}
