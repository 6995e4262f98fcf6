package prefab

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	gomath "math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/flyview/internal/engine/assets"
	"github.com/Faultbox/flyview/internal/engine/camera"
	"github.com/Faultbox/flyview/internal/engine/control"
	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/lighting"
	"github.com/Faultbox/flyview/internal/engine/mesh"
	"github.com/Faultbox/flyview/internal/engine/renderer"
	"github.com/Faultbox/flyview/internal/engine/transform"
	"github.com/Faultbox/flyview/internal/validation"
)

const testScene = `
ambient_color: [0.1, 0.1, 0.1, 1.0]
entities:
  - data:
      transform:
        translation: [0, 0, 10]
      camera:
        perspective:
          aspect: 1.3
          fovy: 1.0
          znear: 0.1
          zfar: 2000
      auto_fov: {}
      show_fov_tag: true
      control_tag: true
  - data:
      graphics:
        mesh:
          shape:
            kind: sphere
            u: 16
            v: 8
        material:
          albedo:
            file: textures/red.png
          emission:
            color: [0, 0, 0, 1]
      transform:
        translation: [5, 0, 0]
        scale: [2, 2, 2]
  - parent: 1
    data:
      light:
        point:
          intensity: 5
          color: [1, 1, 1]
`

func writeAssets(t *testing.T, scene string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "textures"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scene.yaml"), []byte(scene), 0o644); err != nil {
		t.Fatal(err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		img.Set(i%2, i/2, color.RGBA{255, 0, 0, 255})
	}
	f, err := os.Create(filepath.Join(dir, "textures", "red.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return dir
}

func loadScene(t *testing.T, dir string) (*assets.Handle[*Loaded], *assets.ProgressCounter) {
	t.Helper()
	progress := assets.NewProgressCounter()
	h := Load(assets.NewLoader(dir), "scene.yaml", progress)
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("scene did not load")
	}
	return h, progress
}

func TestParseScene(t *testing.T) {
	s, err := ParseScene([]byte(testScene))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	if len(s.Entities) != 3 {
		t.Fatalf("entities = %d, want 3", len(s.Entities))
	}

	cam := s.Entities[0].Data
	if cam.Graphics != nil || cam.Light != nil {
		t.Error("absent fields must stay nil")
	}
	if cam.AutoFov == nil || *cam.AutoFov != camera.DefaultAutoFov() {
		t.Errorf("auto_fov = %+v, want defaults", cam.AutoFov)
	}
	if !cam.ShowFovTag || !cam.ControlTag {
		t.Error("tags not decoded")
	}

	light := s.Entities[2]
	if light.Parent == nil || *light.Parent != 1 {
		t.Errorf("parent = %v, want 1", light.Parent)
	}
	if light.Data.Light.Point == nil || light.Data.Light.Point.Radius != lighting.DefaultPointLight().Radius {
		t.Errorf("point light = %+v", light.Data.Light.Point)
	}
}

func TestParseSceneEmptyEntity(t *testing.T) {
	s, err := ParseScene([]byte("entities:\n  - data: {}\n"))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	if s.AmbientColor != nil {
		t.Errorf("ambient = %v, want unset", *s.AmbientColor)
	}
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name  string
		scene string
		want  error
	}{
		{
			name:  "forward parent",
			scene: "entities:\n  - parent: 1\n    data: {}\n  - data: {}\n",
			want:  ErrParent,
		},
		{
			name:  "self parent",
			scene: "entities:\n  - parent: 0\n    data: {}\n",
			want:  ErrParent,
		},
		{
			name:  "two projections",
			scene: "entities:\n  - data:\n      camera:\n        perspective: {aspect: 1, fovy: 1, znear: 0.1, zfar: 10}\n        orthographic: {left: -1, right: 1, bottom: -1, top: 1, znear: 0, zfar: 1}\n",
			want:  ErrCameraKind,
		},
		{
			name:  "no projection",
			scene: "entities:\n  - data:\n      camera: {}\n",
			want:  ErrCameraKind,
		},
		{
			name:  "two light kinds",
			scene: "entities:\n  - data:\n      light:\n        point: {}\n        directional: {}\n",
			want:  lighting.ErrLightKind,
		},
		{
			name:  "shape and asset",
			scene: "entities:\n  - data:\n      graphics:\n        mesh:\n          shape: {kind: cube}\n          asset: a.glb\n",
			want:  ErrMeshSource,
		},
		{
			name:  "unknown shape",
			scene: "entities:\n  - data:\n      graphics:\n        mesh:\n          shape: {kind: teapot}\n",
			want:  mesh.ErrUnknownShape,
		},
		{
			name:  "zfar before znear",
			scene: "entities:\n  - data:\n      camera:\n        perspective: {aspect: 1, fovy: 1, znear: 1, zfar: 0.5}\n",
			want:  ErrProjection,
		},
		{
			name:  "orthographic zero width",
			scene: "entities:\n  - data:\n      camera:\n        orthographic: {left: 1, right: 1, bottom: -1, top: 1, znear: 0, zfar: 1}\n",
			want:  ErrProjection,
		},
		{
			name:  "orthographic zero height",
			scene: "entities:\n  - data:\n      camera:\n        orthographic: {left: -1, right: 1, bottom: 2, top: 2, znear: 0, zfar: 1}\n",
			want:  ErrProjection,
		},
		{
			name:  "orthographic zero depth",
			scene: "entities:\n  - data:\n      camera:\n        orthographic: {left: -1, right: 1, bottom: -1, top: 1, znear: 5, zfar: 5}\n",
			want:  ErrProjection,
		},
		{
			name:  "empty texture source",
			scene: "entities:\n  - data:\n      graphics:\n        mesh: {shape: {kind: cube}}\n        material:\n          albedo: {}\n",
			want:  ErrTextureKind,
		},
		{
			name:  "zero point radius",
			scene: "entities:\n  - data:\n      light:\n        point: {radius: 0}\n",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.scene))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseSceneErrorPath(t *testing.T) {
	src := "entities:\n  - data: {}\n  - data:\n      camera:\n        orthographic: {left: 1, right: 1, bottom: -1, top: 1, znear: 0, zfar: 1}\n"
	_, err := ParseScene([]byte(src))
	var fe *validation.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want a field error", err)
	}
	if want := "entities[1].data.camera.orthographic.right"; fe.Path != want {
		t.Errorf("path = %q, want %q", fe.Path, want)
	}
}

func TestOrthographicCameraIsFinite(t *testing.T) {
	s, err := ParseScene([]byte("entities:\n  - data:\n      camera:\n        orthographic: {left: -2, right: 2, bottom: -1, top: 1, znear: 0.1, zfar: 10}\n"))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	m := s.Entities[0].Data.Camera.Camera().Projection
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			if v := float64(m.At(row, col)); gomath.IsNaN(v) || gomath.IsInf(v, 0) {
				t.Fatalf("projection[%d][%d] = %v", row, col, v)
			}
		}
	}
}

func TestLoadDecodesAssets(t *testing.T) {
	h, progress := loadScene(t, writeAssets(t, testScene))
	loaded, ok := h.Get()
	if !ok {
		t.Fatalf("load failed: %v", h.Err())
	}
	if progress.NumAssets() != 1 {
		t.Errorf("progress tracks %d assets", progress.NumAssets())
	}

	if loaded.Entities[0].Mesh != nil {
		t.Error("camera entry must have no mesh")
	}
	sphere := loaded.Entities[1]
	if sphere.Mesh == nil || len(sphere.Mesh.Indices) == 0 {
		t.Fatal("sphere mesh not generated")
	}
	if sphere.Albedo == nil || sphere.Albedo.RGBAAt(0, 0) != (color.RGBA{255, 0, 0, 255}) {
		t.Error("albedo texture not decoded")
	}
	if sphere.Emission == nil || sphere.Emission.Bounds().Dx() != 1 {
		t.Error("solid emission texture not built")
	}
}

func TestLoadMissingTextureFails(t *testing.T) {
	scene := "entities:\n  - data:\n      graphics:\n        mesh: {shape: {kind: cube}}\n        material:\n          albedo: {file: textures/missing.png}\n"
	h, _ := loadScene(t, writeAssets(t, scene))
	if !errors.Is(h.Err(), assets.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", h.Err())
	}
}

func TestLoadUnsupportedMesh(t *testing.T) {
	scene := "entities:\n  - data:\n      graphics:\n        mesh: {asset: meshes/thing.obj}\n"
	h, _ := loadScene(t, writeAssets(t, scene))
	if h.Err() == nil {
		t.Error("expected error for .obj mesh")
	}
}

func fakeUpload(uploaded *int) UploadFunc {
	return func(le *LoadedEntity) *renderer.Renderable {
		*uploaded++
		return &renderer.Renderable{}
	}
}

func TestSystemSpawnsScene(t *testing.T) {
	h, _ := loadScene(t, writeAssets(t, testScene))

	w := ecs.NewWorld()
	root := w.Create()
	ecs.Insert(w, root, &Ref{Handle: h})

	uploaded := 0
	NewSystem(fakeUpload(&uploaded)).Run(w)

	if _, ok := ecs.Get[Ref](w, root); ok {
		t.Error("Ref must be removed after spawning")
	}
	if w.Len() != 3 {
		t.Errorf("entities = %d, want 3", w.Len())
	}
	if uploaded != 1 {
		t.Errorf("uploads = %d, want 1", uploaded)
	}

	cam, ok := ecs.Get[camera.Camera](w, root)
	if !ok || cam.Kind != camera.Perspective {
		t.Fatal("root must carry the camera")
	}
	if _, ok := ecs.Get[camera.AutoFov](w, root); !ok {
		t.Error("root must carry AutoFov")
	}
	if e, ok := w.FindTag(ShowFovTag); !ok || e != root {
		t.Errorf("show_fov tag on %v", e)
	}
	if e, ok := w.FindTag(control.FlyControlTag); !ok || e != root {
		t.Errorf("fly_control tag on %v", e)
	}

	lights := ecs.StorageOf[lighting.Light](w).Entities()
	if len(lights) != 1 {
		t.Fatalf("lights = %d, want 1", len(lights))
	}
	parent, ok := ecs.Get[transform.Parent](w, lights[0])
	if !ok {
		t.Fatal("light must have a parent")
	}
	if _, ok := ecs.Get[renderer.Renderable](w, parent.Entity); !ok {
		t.Error("light parent must be the sphere")
	}

	amb, ok := ecs.Resource[renderer.AmbientColor](w)
	if !ok || amb.Color != [4]float32{0.1, 0.1, 0.1, 1} {
		t.Errorf("ambient = %+v", amb)
	}

	// Global transforms follow the parent link.
	transform.System{}.Run(w)
	g, ok := ecs.Get[transform.Global](w, parent.Entity)
	if !ok || g.Position().X != 5 {
		t.Errorf("sphere global = %+v", g)
	}
}

func TestSystemWaitsAndDropsFailures(t *testing.T) {
	w := ecs.NewWorld()
	pending := w.Create()
	h, _ := assets.Pending[*Loaded]("scene.yaml")
	ecs.Insert(w, pending, &Ref{Handle: h})

	uploaded := 0
	sys := NewSystem(fakeUpload(&uploaded))
	sys.Run(w)
	if _, ok := ecs.Get[Ref](w, pending); !ok {
		t.Error("unresolved Ref must stay")
	}

	h, _ = loadScene(t, t.TempDir()) // no scene.yaml
	failed := w.Create()
	ecs.Insert(w, failed, &Ref{Handle: h})
	sys.Run(w)
	if _, ok := ecs.Get[Ref](w, failed); ok {
		t.Error("failed Ref must be dropped")
	}
	if !w.Alive(failed) {
		t.Error("entity must survive a failed scene")
	}
}
