// Package control moves tagged entities from input: fly-style translation
// and mouse look.
package control

import (
	gomath "math"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/input"
	"github.com/Faultbox/flyview/internal/engine/transform"
	"github.com/Faultbox/flyview/pkg/math"
)

// Dispatcher names.
const (
	FlyMovementSystemName  = "fly_movement"
	FreeRotationSystemName = "free_rotation"
)

// FlyControlTag marks entities driven by the fly controls.
const FlyControlTag = "fly_control"

// DefaultSpeed is the fly speed in units per second.
const DefaultSpeed = 100

// FlyMovementSystem moves fly_control entities along their local axes.
// An empty axis name disables that direction.
type FlyMovementSystem struct {
	Speed float32
	AxisX string
	AxisY string
	AxisZ string
}

// NewFlyMovementSystem creates the system.
func NewFlyMovementSystem(speed float32, axisX, axisY, axisZ string) *FlyMovementSystem {
	return &FlyMovementSystem{Speed: speed, AxisX: axisX, AxisY: axisY, AxisZ: axisZ}
}

// Direction reads the bound axes into an unnormalized direction.
func (s *FlyMovementSystem) Direction(h *input.Handler) math.Vec3 {
	axis := func(name string) float32 {
		if name == "" {
			return 0
		}
		return h.Axis(name)
	}
	return math.Vec3{X: axis(s.AxisX), Y: axis(s.AxisY), Z: axis(s.AxisZ)}
}

// Run implements ecs.System.
func (s *FlyMovementSystem) Run(w *ecs.World) {
	h, ok := ecs.Resource[input.Handler](w)
	if !ok {
		return
	}
	tm, ok := ecs.Resource[ecs.Time](w)
	if !ok {
		return
	}

	dir := s.Direction(h)
	if dir.IsZero() {
		return
	}
	dir = dir.Normalize()
	distance := float32(tm.Delta) * s.Speed

	transforms := ecs.StorageOf[transform.Transform](w)
	for _, e := range w.Tagged(FlyControlTag) {
		if tr, ok := transforms.Get(e); ok {
			tr.MoveAlongLocal(dir, distance)
		}
	}
}

// FreeRotationSystem turns fly_control entities with the mouse while the
// right button is held. Sensitivity is in degrees per pixel.
type FreeRotationSystem struct {
	SensitivityX float32
	SensitivityY float32
}

// NewFreeRotationSystem creates the system.
func NewFreeRotationSystem(sensitivityX, sensitivityY float32) *FreeRotationSystem {
	return &FreeRotationSystem{SensitivityX: sensitivityX, SensitivityY: sensitivityY}
}

// Run implements ecs.System.
func (s *FreeRotationSystem) Run(w *ecs.World) {
	h, ok := ecs.Resource[input.Handler](w)
	if !ok || !h.MouseButtonDown(sdl.BUTTON_RIGHT) {
		return
	}
	dx, dy := h.MouseDelta()
	if dx == 0 && dy == 0 {
		return
	}
	yaw := radians(-dx * s.SensitivityX)
	pitch := radians(-dy * s.SensitivityY)

	transforms := ecs.StorageOf[transform.Transform](w)
	for _, e := range w.Tagged(FlyControlTag) {
		if tr, ok := transforms.Get(e); ok {
			tr.RotateLocal(math.UnitX, pitch)
			tr.RotateWorld(math.UnitY, yaw)
		}
	}
}

func radians(deg float32) float32 {
	return deg * gomath.Pi / 180
}

// FlyControlBundle registers fly movement and, optionally, mouse look.
type FlyControlBundle struct {
	Speed                      float32
	AxisX, AxisY, AxisZ        string
	MouseLook                  bool
	SensitivityX, SensitivityY float32
}

// Build implements ecs.Bundle.
func (b *FlyControlBundle) Build(d *ecs.DispatcherBuilder) error {
	d.With(NewFlyMovementSystem(b.Speed, b.AxisX, b.AxisY, b.AxisZ), FlyMovementSystemName, input.SystemName)
	if b.MouseLook {
		d.With(NewFreeRotationSystem(b.SensitivityX, b.SensitivityY), FreeRotationSystemName, FlyMovementSystemName)
	}
	return nil
}
