package prefab

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/flyview/internal/engine/assets"
	"github.com/Faultbox/flyview/internal/engine/mesh"
	"github.com/Faultbox/flyview/internal/engine/texture"
	"github.com/Faultbox/flyview/internal/validation"
)

// Entry is one entity of a scene file. Parent is the index of an earlier
// entry.
type Entry struct {
	Parent *int        `yaml:"parent"`
	Data   ScenePrefab `yaml:"data"`
}

// Scene is a decoded scene file.
type Scene struct {
	AmbientColor *[4]float32 `yaml:"ambient_color"`
	Entities     []Entry     `yaml:"entities" validate:"dive"`
}

// ParseScene decodes and validates a scene file.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks parent links, then the fields of every entity.
func (s *Scene) Validate() error {
	for i, e := range s.Entities {
		if e.Parent != nil && (*e.Parent < 0 || *e.Parent >= i) {
			return fmt.Errorf("entity %d: %w, got %d", i, ErrParent, *e.Parent)
		}
	}
	if err := validation.Struct(s); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	return nil
}

// Loaded is a scene with its meshes and images decoded, ready for GPU
// upload on the main thread.
type Loaded struct {
	Scene    *Scene
	Entities []LoadedEntity
}

// LoadedEntity holds the decoded assets of one entry. Fields are nil when
// the entry has no graphics.
type LoadedEntity struct {
	Mesh     *mesh.Data
	Albedo   *image.RGBA
	Emission *image.RGBA
}

// Load reads a scene file and everything it references in the background.
// The handle resolves once all meshes and textures are decoded.
func Load(l *assets.Loader, path string, progress *assets.ProgressCounter) *assets.Handle[*Loaded] {
	return assets.Load(l, path, func(data []byte) (*Loaded, error) {
		s, err := ParseScene(data)
		if err != nil {
			return nil, err
		}
		return Decode(l, s)
	}, progress)
}

// Decode generates shapes and reads the meshes and textures a scene names.
func Decode(l *assets.Loader, s *Scene) (*Loaded, error) {
	out := &Loaded{Scene: s, Entities: make([]LoadedEntity, len(s.Entities))}
	for i, e := range s.Entities {
		g := e.Data.Graphics
		if g == nil {
			continue
		}
		le := &out.Entities[i]

		var err error
		if g.Mesh.Shape != nil {
			le.Mesh, err = g.Mesh.Shape.Generate()
		} else {
			le.Mesh, err = loadMesh(l, g.Mesh.Asset)
		}
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}

		if le.Albedo, err = loadTexture(l, g.Material.Albedo); err != nil {
			return nil, fmt.Errorf("entity %d albedo: %w", i, err)
		}
		if le.Emission, err = loadTexture(l, g.Material.Emission); err != nil {
			return nil, fmt.Errorf("entity %d emission: %w", i, err)
		}
	}
	return out, nil
}

func loadMesh(l *assets.Loader, path string) (*mesh.Data, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
	default:
		return nil, fmt.Errorf("mesh %s: unsupported format %q", path, ext)
	}
	full, err := l.Resolve(path)
	if err != nil {
		return nil, err
	}
	return mesh.LoadGLTF(full)
}

func loadTexture(l *assets.Loader, src *TextureSource) (*image.RGBA, error) {
	switch {
	case src == nil:
		return nil, nil
	case src.Color != nil:
		return texture.Solid(texture.ColorFromFloats(*src.Color)), nil
	}
	data, err := l.Read(src.File)
	if err != nil {
		return nil, err
	}
	return texture.Decode(src.File, data)
}
