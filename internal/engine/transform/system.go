package transform

import (
	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/pkg/math"
)

// SystemName is the dispatcher name of the transform system.
const SystemName = "transform_system"

// maxDepth bounds parent chains so a malformed hierarchy cannot loop.
const maxDepth = 64

// Parent links an entity to the entity its Transform is relative to.
type Parent struct {
	Entity ecs.Entity
}

// Global is the world-space matrix computed by the transform system.
type Global struct {
	Matrix math.Mat4
}

// Position returns the world-space translation.
func (g *Global) Position() math.Vec3 {
	return g.Matrix.Translation()
}

// System computes Global for every entity with a Transform.
type System struct{}

// Run implements ecs.System.
func (System) Run(w *ecs.World) {
	locals := ecs.StorageOf[Transform](w)
	parents := ecs.StorageOf[Parent](w)
	globals := ecs.StorageOf[Global](w)

	computed := make(map[ecs.Entity]math.Mat4, locals.Len())
	var resolve func(e ecs.Entity, depth int) math.Mat4
	resolve = func(e ecs.Entity, depth int) math.Mat4 {
		if m, ok := computed[e]; ok {
			return m
		}
		local, ok := locals.Get(e)
		if !ok {
			return math.Identity()
		}
		m := local.Matrix()
		if p, ok := parents.Get(e); ok && depth < maxDepth && w.Alive(p.Entity) && p.Entity != e {
			m = resolve(p.Entity, depth+1).Mul(m)
		}
		computed[e] = m
		return m
	}

	locals.Each(func(e ecs.Entity, _ *Transform) {
		m := resolve(e, 0)
		if g, ok := globals.Get(e); ok {
			g.Matrix = m
			return
		}
		globals.Insert(e, &Global{Matrix: m})
	})
}

// Bundle registers the transform system after the named systems.
type Bundle struct {
	Deps []string
}

// NewBundle creates a transform bundle running after deps.
func NewBundle(deps ...string) *Bundle {
	return &Bundle{Deps: deps}
}

// Build implements ecs.Bundle.
func (b *Bundle) Build(d *ecs.DispatcherBuilder) error {
	d.With(System{}, SystemName, b.Deps...)
	return nil
}
