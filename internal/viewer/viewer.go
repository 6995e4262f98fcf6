// Package viewer runs the application: window, world, systems, states and
// rendering in one main loop.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/config"
	"github.com/Faultbox/flyview/internal/engine/assets"
	"github.com/Faultbox/flyview/internal/engine/debug"
	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/input"
	"github.com/Faultbox/flyview/internal/engine/renderer"
	"github.com/Faultbox/flyview/internal/engine/window"
	"github.com/Faultbox/flyview/internal/logger"
	"github.com/Faultbox/flyview/internal/viewer/states"
)

// Application is the viewer instance.
type Application struct {
	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	world       *ecs.World
	dispatcher  *ecs.Dispatcher
	states      *states.Machine
	data        *states.StateData
	screenshots *debug.ScreenshotCapture
}

// New opens the window and builds the world for cfg.
func New(cfg *config.Config) (*Application, error) {
	paths, err := cfg.Paths.Resolve()
	if err != nil {
		return nil, err
	}
	logger.Info("initializing viewer",
		zap.String("root", paths.Root),
		zap.String("assets", paths.AssetsDir),
		zap.String("scene", cfg.Paths.Scene),
	)

	display, err := config.LoadDisplay(paths.Display)
	if err != nil {
		return nil, err
	}

	a := &Application{input: input.New(), world: ecs.NewWorld()}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(display)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	bindings, err := input.LoadBindings(paths.Input)
	if err != nil {
		a.window.Close()
		return nil, err
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	a.renderer, err = renderer.New(
		renderer.RenderToWindow{ClearColor: display.Clear()},
		renderer.NewRenderShaded3D(),
		renderer.NewRenderUI(),
	)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	dims := a.window.Dimensions()
	ecs.SetResource(a.world, &dims)
	ecs.SetResource(a.world, &ecs.Time{})
	a.renderer.Resize(dims)

	a.dispatcher, err = BuildDispatcher(a.world, Systems{
		Source:   a.input,
		Bindings: bindings,
		Controls: cfg.Controls,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("building systems: %w", err)
	}
	logger.Debug("systems", zap.Strings("order", a.dispatcher.Names()))

	a.data = &states.StateData{
		World:    a.world,
		Loader:   assets.NewLoader(paths.AssetsDir),
		Bindings: bindings,
	}
	a.states = states.NewMachine(states.NewLoading(cfg.Paths.Scene, cfg.Paths.UILayouts))
	a.screenshots = debug.NewScreenshotCapture(paths.Screenshots, "flyview")

	logger.Info("viewer initialized successfully")
	return a, nil
}

// Run drives the main loop until the last state stops.
func (a *Application) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.states.Start(a.data)
	logger.Info("starting main loop")

	for a.states.Running() {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Events
		closed := a.input.Update()
		for _, ev := range a.input.Events() {
			if ev.Type == input.EventWindowResize {
				a.resize()
			}
			a.states.HandleEvent(a.data, ev)
		}
		if closed && a.states.Running() {
			a.states.Stop(a.data)
		}
		if !a.states.Running() {
			break
		}

		// 2. Systems, then state logic
		if tm, ok := ecs.Resource[ecs.Time](a.world); ok {
			tm.Advance(dt)
		}
		a.dispatcher.Dispatch(a.world)
		a.states.Update(a.data)
		if !a.states.Running() {
			break
		}

		// 3. Render and present
		a.renderer.Render(a.world)
		if a.data.ScreenshotRequested {
			a.data.ScreenshotRequested = false
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("main loop finished")
	return nil
}

func (a *Application) resize() {
	dims := a.window.Dimensions()
	if cur, ok := ecs.Resource[ecs.ScreenDimensions](a.world); ok {
		*cur = dims
	}
	a.renderer.Resize(dims)
}

func (a *Application) screenshot() {
	dims := a.window.Dimensions()
	path, err := a.screenshots.Capture(dims.DrawableWidth, dims.DrawableHeight)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases everything New created.
func (a *Application) Close() {
	logger.Info("closing viewer")

	if a.states != nil {
		a.states.Stop(a.data)
	}
	if a.dispatcher != nil {
		a.dispatcher.Dispose(a.world)
	}
	renderer.DestroyRenderables(a.world)
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
