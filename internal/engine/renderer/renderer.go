// Package renderer draws the world: a window pass clearing the screen
// followed by plugins for shaded meshes and UI text.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/logger"
)

// Plugin is one rendering pass.
type Plugin interface {
	// Init creates GPU resources. Called once with a current GL context.
	Init() error
	Render(w *ecs.World, dims ecs.ScreenDimensions)
	Dispose()
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	clear   [4]float32
	dims    ecs.ScreenDimensions
	plugins []Plugin
}

// New initializes OpenGL and the plugins, in order.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(toWindow RenderToWindow, plugins ...Plugin) (*Renderer, error) {
	r := &Renderer{clear: toWindow.ClearColor}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	for _, p := range plugins {
		if err := p.Init(); err != nil {
			r.Close()
			return nil, fmt.Errorf("initializing %T: %w", p, err)
		}
		r.plugins = append(r.plugins, p)
	}
	return r, nil
}

// RenderToWindow configures the window pass.
type RenderToWindow struct {
	ClearColor [4]float32
}

// Close disposes plugins in reverse order.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for i := len(r.plugins) - 1; i >= 0; i-- {
		r.plugins[i].Dispose()
	}
	r.plugins = nil
}

// Resize sets the viewport to the drawable size, which is larger than the
// window on HiDPI displays.
func (r *Renderer) Resize(dims ecs.ScreenDimensions) {
	r.dims = dims
	gl.Viewport(0, 0, int32(dims.DrawableWidth), int32(dims.DrawableHeight))
	logger.Debug("renderer resized",
		zap.Int("width", dims.Width),
		zap.Int("height", dims.Height),
		zap.Int("drawable_width", dims.DrawableWidth),
		zap.Int("drawable_height", dims.DrawableHeight),
	)
}

// Render clears the screen and runs every plugin.
func (r *Renderer) Render(w *ecs.World) {
	gl.ClearColor(r.clear[0], r.clear[1], r.clear[2], r.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	for _, p := range r.plugins {
		p.Render(w, r.dims)
	}
}
