package transform

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/pkg/math"
)

const eps = 1e-4

func near(a, b math.Vec3) bool {
	d := a.Sub(b)
	return gomath.Abs(float64(d.X)) < eps && gomath.Abs(float64(d.Y)) < eps && gomath.Abs(float64(d.Z)) < eps
}

func TestAxes(t *testing.T) {
	tr := New()
	if !near(tr.Forward(), math.Vec3{Z: -1}) || !near(tr.Right(), math.UnitX) || !near(tr.Up(), math.UnitY) {
		t.Fatalf("identity axes: f=%v r=%v u=%v", tr.Forward(), tr.Right(), tr.Up())
	}

	tr.RotateWorld(math.UnitY, float32(gomath.Pi/2))
	if !near(tr.Forward(), math.Vec3{X: -1}) {
		t.Errorf("after yaw Forward() = %v, want -X", tr.Forward())
	}
}

func TestMoveAlongLocal(t *testing.T) {
	tr := New()
	tr.RotateWorld(math.UnitY, float32(gomath.Pi/2))
	tr.MoveAlongLocal(math.Vec3{Z: -1}, 10)
	if !near(tr.Translation, math.Vec3{X: -10}) {
		t.Errorf("Translation = %v, want (-10,0,0)", tr.Translation)
	}

	tr.AppendTranslationAlong(math.UnitY, 2)
	if !near(tr.Translation, math.Vec3{X: -10, Y: 2}) {
		t.Errorf("Translation = %v, want (-10,2,0)", tr.Translation)
	}
}

func TestSystemParents(t *testing.T) {
	w := ecs.NewWorld()

	root := w.Create()
	rt := New()
	rt.Translation = math.Vec3{X: 5}
	ecs.Insert(w, root, rt)

	child := w.Create()
	ct := New()
	ct.Translation = math.Vec3{Y: 3}
	ecs.Insert(w, child, ct)
	ecs.Insert(w, child, &Parent{Entity: root})

	System{}.Run(w)

	g, ok := ecs.Get[Global](w, child)
	if !ok {
		t.Fatal("child has no Global")
	}
	if !near(g.Position(), math.Vec3{X: 5, Y: 3}) {
		t.Errorf("child position = %v, want (5,3,0)", g.Position())
	}

	rt.Translation = math.Vec3{X: 1}
	System{}.Run(w)
	if !near(g.Position(), math.Vec3{X: 1, Y: 3}) {
		t.Errorf("after move child position = %v, want (1,3,0)", g.Position())
	}

	if err := w.Delete(root); err != nil {
		t.Fatal(err)
	}
	System{}.Run(w)
	if !near(g.Position(), math.Vec3{Y: 3}) {
		t.Errorf("orphan position = %v, want (0,3,0)", g.Position())
	}
}

func TestSystemSelfParent(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Create()
	ecs.Insert(w, e, New())
	ecs.Insert(w, e, &Parent{Entity: e})
	System{}.Run(w)
	if _, ok := ecs.Get[Global](w, e); !ok {
		t.Error("self-parented entity has no Global")
	}
}
