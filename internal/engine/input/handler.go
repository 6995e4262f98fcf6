package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Handler tracks which keys and mouse buttons are held and answers axis and
// action queries against the bindings.
type Handler struct {
	bindings *Bindings

	down    map[sdl.Scancode]bool
	pressed map[sdl.Scancode]bool

	buttons        map[uint8]bool
	mouseX, mouseY int
	deltaX, deltaY float32
}

// NewHandler creates a handler for the given bindings.
func NewHandler(b *Bindings) *Handler {
	if b == nil {
		b = &Bindings{}
	}
	return &Handler{
		bindings: b,
		down:     make(map[sdl.Scancode]bool),
		pressed:  make(map[sdl.Scancode]bool),
		buttons:  make(map[uint8]bool),
	}
}

// Bindings returns the handler's bindings.
func (h *Handler) Bindings() *Bindings {
	return h.bindings
}

// BeginFrame clears per-frame state (presses and mouse motion).
func (h *Handler) BeginFrame() {
	clear(h.pressed)
	h.deltaX, h.deltaY = 0, 0
}

// Process applies one event.
func (h *Handler) Process(ev Event) {
	switch ev.Type {
	case EventKeyDown:
		if !h.down[ev.Key] && !ev.Repeat {
			h.pressed[ev.Key] = true
		}
		h.down[ev.Key] = true
	case EventKeyUp:
		delete(h.down, ev.Key)
	case EventMouseMove:
		h.mouseX, h.mouseY = ev.MouseX, ev.MouseY
		h.deltaX += float32(ev.RelX)
		h.deltaY += float32(ev.RelY)
	case EventMouseDown:
		h.buttons[ev.Button] = true
	case EventMouseUp:
		delete(h.buttons, ev.Button)
	case EventFocusLost:
		clear(h.down)
		clear(h.buttons)
	}
}

// KeyDown reports whether a key is held.
func (h *Handler) KeyDown(sc sdl.Scancode) bool {
	return h.down[sc]
}

// Axis returns the value of a bound axis in [-1, 1]. Unbound axes are 0.
func (h *Handler) Axis(name string) float32 {
	a, ok := h.bindings.axes[name]
	if !ok {
		return 0
	}
	var v float32
	if h.anyDown(a.pos) {
		v++
	}
	if h.anyDown(a.neg) {
		v--
	}
	return v
}

// ActionDown reports whether any key of an action is held.
func (h *Handler) ActionDown(name string) bool {
	return h.anyDown(h.bindings.actions[name])
}

// ActionPressed reports whether an action's key went down this frame.
func (h *Handler) ActionPressed(name string) bool {
	for _, k := range h.bindings.actions[name] {
		if h.pressed[k] {
			return true
		}
	}
	return false
}

// MouseDelta returns the mouse motion accumulated this frame.
func (h *Handler) MouseDelta() (dx, dy float32) {
	return h.deltaX, h.deltaY
}

// MousePosition returns the last known cursor position.
func (h *Handler) MousePosition() (x, y int) {
	return h.mouseX, h.mouseY
}

// MouseButtonDown reports whether an SDL mouse button (sdl.BUTTON_LEFT, ...) is held.
func (h *Handler) MouseButtonDown(button uint8) bool {
	return h.buttons[button]
}

func (h *Handler) anyDown(keys []sdl.Scancode) bool {
	for _, k := range keys {
		if h.down[k] {
			return true
		}
	}
	return false
}
