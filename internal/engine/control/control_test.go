package control

import (
	gomath "math"
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/input"
	"github.com/Faultbox/flyview/internal/engine/transform"
	"github.com/Faultbox/flyview/pkg/math"
)

const bindingsYAML = `
axes:
  move_x: {pos: [D], neg: [A]}
  move_y: {pos: [E], neg: [Q]}
  move_z: {pos: [S], neg: [W]}
`

func keys(name string) (sdl.Scancode, bool) {
	sc, ok := map[string]sdl.Scancode{
		"W": sdl.SCANCODE_W, "A": sdl.SCANCODE_A, "S": sdl.SCANCODE_S,
		"D": sdl.SCANCODE_D, "Q": sdl.SCANCODE_Q, "E": sdl.SCANCODE_E,
	}[name]
	return sc, ok
}

func setup(t *testing.T, delta float64) (*ecs.World, *input.Handler, *transform.Transform, *transform.Transform) {
	t.Helper()
	b, err := input.ParseBindings([]byte(bindingsYAML), keys)
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld()
	h := input.NewHandler(b)
	ecs.SetResource(w, h)
	ecs.SetResource(w, &ecs.Time{Delta: delta})

	flying := w.Create()
	ft := transform.New()
	ecs.Insert(w, flying, ft)
	w.Tag(flying, FlyControlTag)

	still := w.Create()
	st := transform.New()
	ecs.Insert(w, still, st)
	return w, h, ft, st
}

func closeTo(a, b math.Vec3) bool {
	d := a.Sub(b)
	return d.Length() < 1e-3
}

func TestFlyMovement(t *testing.T) {
	tests := []struct {
		name string
		keys []sdl.Scancode
		want math.Vec3
	}{
		{"idle", nil, math.Vec3{}},
		{"forward", []sdl.Scancode{sdl.SCANCODE_W}, math.Vec3{Z: -50}},
		{"right", []sdl.Scancode{sdl.SCANCODE_D}, math.Vec3{X: 50}},
		{"up", []sdl.Scancode{sdl.SCANCODE_E}, math.Vec3{Y: 50}},
		{"diagonal is normalized", []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_D},
			math.Vec3{X: 50 / gomath.Sqrt2, Z: -50 / gomath.Sqrt2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, ft, st := setup(t, 0.5)
			for _, k := range tt.keys {
				h.Process(input.Event{Type: input.EventKeyDown, Key: k})
			}
			NewFlyMovementSystem(DefaultSpeed, "move_x", "move_y", "move_z").Run(w)
			if !closeTo(ft.Translation, tt.want) {
				t.Errorf("Translation = %v, want %v", ft.Translation, tt.want)
			}
			if st.Translation != (math.Vec3{}) {
				t.Errorf("untagged entity moved to %v", st.Translation)
			}
		})
	}
}

func TestFlyMovementLocalAxes(t *testing.T) {
	w, h, ft, _ := setup(t, 1)
	ft.RotateWorld(math.UnitY, gomath.Pi/2)
	h.Process(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_W})

	NewFlyMovementSystem(10, "move_x", "move_y", "move_z").Run(w)
	if !closeTo(ft.Translation, math.Vec3{X: -10}) {
		t.Errorf("Translation = %v, want (-10,0,0)", ft.Translation)
	}
}

func TestFlyMovementOptionalAxes(t *testing.T) {
	w, h, ft, _ := setup(t, 1)
	h.Process(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_E})

	NewFlyMovementSystem(10, "move_x", "", "move_z").Run(w)
	if ft.Translation != (math.Vec3{}) {
		t.Errorf("disabled axis moved entity to %v", ft.Translation)
	}
}

func TestFreeRotation(t *testing.T) {
	w, h, ft, _ := setup(t, 1)
	s := NewFreeRotationSystem(1, 1)

	h.Process(input.Event{Type: input.EventMouseMove, RelX: 90})
	s.Run(w)
	if ft.Rotation != math.QuatIdentity() {
		t.Error("rotated without the right button")
	}

	h.Process(input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_RIGHT})
	s.Run(w)
	// 90 degrees to the right: forward turns from -Z to +X.
	if !closeTo(ft.Forward(), math.UnitX) {
		t.Errorf("Forward() = %v, want +X", ft.Forward())
	}
}

func TestFlyControlBundle(t *testing.T) {
	nop := ecs.SystemFunc(func(*ecs.World) {})
	d, err := ecs.NewDispatcherBuilder().
		With(nop, input.SystemName).
		WithBundle(&FlyControlBundle{Speed: 1, MouseLook: true}).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	names := d.Names()
	if len(names) != 3 || names[1] != FlyMovementSystemName || names[2] != FreeRotationSystemName {
		t.Errorf("Names() = %v", names)
	}
}
