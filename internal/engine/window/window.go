// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/config"
	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	display   *config.DisplayConfig
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

// New creates a window with an OpenGL 4.1 core context as described by
// the display config.
func New(d *config.DisplayConfig) (*Window, error) {
	w := &Window{display: d}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// 4.1 core is the highest macOS supports.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	width, height := d.Size()
	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		d.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(width),
		int32(height),
		windowFlags(d),
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}
	if d.MinDimensions != nil {
		w.sdlWindow.SetMinimumSize(int32(d.MinDimensions[0]), int32(d.MinDimensions[1]))
	}
	if d.MaxDimensions != nil {
		w.sdlWindow.SetMaximumSize(int32(d.MaxDimensions[0]), int32(d.MaxDimensions[1]))
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if d.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	dims := w.Dimensions()
	logger.Info("window created",
		zap.String("title", d.Title),
		zap.Int("width", dims.Width),
		zap.Int("height", dims.Height),
		zap.Int("drawable_width", dims.DrawableWidth),
		zap.Int("drawable_height", dims.DrawableHeight),
		zap.Bool("fullscreen", d.Fullscreen),
		zap.Bool("vsync", d.VSync),
	)

	return w, nil
}

func windowFlags(d *config.DisplayConfig) uint32 {
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_ALLOW_HIGHDPI)
	if d.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	if d.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	return flags
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the current logical window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// Dimensions reports the logical and drawable sizes. They differ on HiDPI
// displays.
func (w *Window) Dimensions() ecs.ScreenDimensions {
	width, height := w.sdlWindow.GetSize()
	dw, dh := w.sdlWindow.GLGetDrawableSize()
	return ecs.ScreenDimensions{
		Width:          int(width),
		Height:         int(height),
		DrawableWidth:  int(dw),
		DrawableHeight: int(dh),
	}
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// ClearColor returns the configured clear color.
func (w *Window) ClearColor() [4]float32 {
	return w.display.Clear()
}
