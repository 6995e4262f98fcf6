package prefab

import (
	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/engine/assets"
	"github.com/Faultbox/flyview/internal/engine/control"
	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/mesh"
	"github.com/Faultbox/flyview/internal/engine/renderer"
	"github.com/Faultbox/flyview/internal/engine/texture"
	"github.com/Faultbox/flyview/internal/engine/transform"
	"github.com/Faultbox/flyview/internal/logger"
)

// SystemName is the dispatcher name of the prefab system.
const SystemName = "prefab"

// Ref is the component asking for a loaded scene to be spawned at its
// entity. The first scene entry becomes the entity itself.
type Ref struct {
	Handle *assets.Handle[*Loaded]
}

// UploadFunc turns decoded assets into a renderable.
type UploadFunc func(le *LoadedEntity) *renderer.Renderable

// UploadGL uploads a mesh and its textures. Must run on the GL thread.
func UploadGL(le *LoadedEntity) *renderer.Renderable {
	r := &renderer.Renderable{Mesh: mesh.Upload(le.Mesh)}
	if le.Albedo != nil {
		r.Material.Albedo = texture.Upload(le.Albedo)
	}
	if le.Emission != nil {
		r.Material.Emission = texture.Upload(le.Emission)
	}
	return r
}

// System spawns scenes whose handle has resolved and removes the Ref.
// Failed scenes are logged and dropped.
type System struct {
	upload UploadFunc
	log    *zap.Logger
}

// NewSystem creates the prefab system. A nil upload uses UploadGL.
func NewSystem(upload UploadFunc) *System {
	if upload == nil {
		upload = UploadGL
	}
	return &System{upload: upload, log: logger.Named("prefab")}
}

// Run implements ecs.System.
func (s *System) Run(w *ecs.World) {
	refs := ecs.StorageOf[Ref](w)
	for _, e := range refs.Entities() {
		ref, _ := refs.Get(e)
		if !ref.Handle.Ready() {
			continue
		}
		refs.Remove(e)

		loaded, ok := ref.Handle.Get()
		if !ok {
			s.log.Error("scene not spawned",
				zap.String("path", ref.Handle.Path()),
				zap.Error(ref.Handle.Err()),
			)
			continue
		}
		spawned := s.Spawn(w, e, loaded)
		s.log.Info("scene spawned",
			zap.String("path", ref.Handle.Path()),
			zap.Int("entities", len(spawned)),
		)
	}
}

// Spawn creates the scene's entities with root as the first one and returns
// them in file order.
func (s *System) Spawn(w *ecs.World, root ecs.Entity, l *Loaded) []ecs.Entity {
	if l.Scene.AmbientColor != nil {
		ecs.SetResource(w, &renderer.AmbientColor{Color: *l.Scene.AmbientColor})
	}

	out := make([]ecs.Entity, len(l.Scene.Entities))
	for i, entry := range l.Scene.Entities {
		e := root
		if i > 0 {
			e = w.Create()
		}
		out[i] = e
		if entry.Parent != nil {
			ecs.Insert(w, e, &transform.Parent{Entity: out[*entry.Parent]})
		}
		s.apply(w, e, &entry.Data, &l.Entities[i])
	}
	return out
}

func (s *System) apply(w *ecs.World, e ecs.Entity, p *ScenePrefab, le *LoadedEntity) {
	if p.Graphics != nil && le.Mesh != nil {
		ecs.Insert(w, e, s.upload(le))
	}
	if p.Transform != nil {
		ecs.Insert(w, e, p.Transform.Transform())
	}
	if p.Light != nil {
		l := *p.Light
		ecs.Insert(w, e, &l)
	}
	if p.Camera != nil {
		ecs.Insert(w, e, p.Camera.Camera())
	}
	if p.AutoFov != nil {
		af := *p.AutoFov
		ecs.Insert(w, e, &af)
	}
	if p.ShowFovTag {
		w.Tag(e, ShowFovTag)
	}
	if p.ControlTag {
		w.Tag(e, control.FlyControlTag)
	}
}
