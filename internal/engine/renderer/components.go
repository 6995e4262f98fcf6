package renderer

import (
	"github.com/Faultbox/flyview/internal/engine/camera"
	"github.com/Faultbox/flyview/internal/engine/control"
	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/mesh"
	"github.com/Faultbox/flyview/internal/engine/texture"
)

// Material holds the textures of a renderable. Nil textures fall back to
// white albedo and black emission.
type Material struct {
	Albedo   *texture.Texture
	Emission *texture.Texture
}

// Renderable is a mesh on the GPU with its material.
type Renderable struct {
	Mesh     *mesh.Mesh
	Material Material
}

// Destroy releases the mesh and textures.
func (r *Renderable) Destroy() {
	if r.Mesh != nil {
		r.Mesh.Destroy()
	}
	if r.Material.Albedo != nil {
		r.Material.Albedo.Destroy()
	}
	if r.Material.Emission != nil {
		r.Material.Emission.Destroy()
	}
}

// AmbientColor is the resource lighting every surface evenly.
type AmbientColor struct {
	Color [4]float32
}

// DestroyRenderables frees the GPU resources of every renderable in w.
func DestroyRenderables(w *ecs.World) {
	ecs.StorageOf[Renderable](w).Each(func(_ ecs.Entity, r *Renderable) {
		r.Destroy()
	})
}

// ActiveCamera picks the camera to render with: the first fly-controlled
// camera, else the camera with the lowest entity id.
func ActiveCamera(w *ecs.World) (ecs.Entity, *camera.Camera, bool) {
	cameras := ecs.StorageOf[camera.Camera](w)
	for _, e := range w.Tagged(control.FlyControlTag) {
		if c, ok := cameras.Get(e); ok {
			return e, c, true
		}
	}
	es := cameras.Entities()
	if len(es) == 0 {
		return ecs.Entity{}, nil, false
	}
	c, _ := cameras.Get(es[0])
	return es[0], c, true
}
