// Package prefab describes scene entities declaratively and turns scene
// files into live entities.
package prefab

import (
	"errors"

	"github.com/Faultbox/flyview/internal/engine/camera"
	"github.com/Faultbox/flyview/internal/engine/lighting"
	"github.com/Faultbox/flyview/internal/engine/mesh"
	"github.com/Faultbox/flyview/internal/engine/transform"
	"github.com/Faultbox/flyview/internal/validation"
	"github.com/Faultbox/flyview/pkg/math"
)

// ShowFovTag marks the camera whose field of view is displayed.
const ShowFovTag = "show_fov"

// Validation errors.
var (
	ErrCameraKind  = errors.New("camera must have exactly one of perspective or orthographic")
	ErrProjection  = errors.New("degenerate camera projection")
	ErrMeshSource  = errors.New("mesh must have exactly one of shape or asset")
	ErrTextureKind = errors.New("texture must have exactly one of file or color")
	ErrParent      = errors.New("parent must reference an earlier entity")
)

func init() {
	validation.Sentinel(ErrCameraKind, "CameraData.Perspective")
	validation.Sentinel(ErrProjection,
		"PerspectiveData.Aspect", "PerspectiveData.Fovy", "PerspectiveData.ZNear", "PerspectiveData.ZFar",
		"OrthographicData.Right", "OrthographicData.Top", "OrthographicData.ZFar",
	)
	validation.Sentinel(ErrMeshSource, "MeshSource.Shape")
	validation.Sentinel(ErrTextureKind, "TextureSource.File")
}

// ScenePrefab is one entity of a scene file. Every field is optional and
// independent of the others.
type ScenePrefab struct {
	Graphics   *Graphics       `yaml:"graphics"`
	Transform  *TransformData  `yaml:"transform"`
	Light      *lighting.Light `yaml:"light"`
	Camera     *CameraData     `yaml:"camera"`
	AutoFov    *camera.AutoFov `yaml:"auto_fov"`
	ShowFovTag bool            `yaml:"show_fov_tag"`
	ControlTag bool            `yaml:"control_tag"`
}

// Graphics is a mesh with its material.
type Graphics struct {
	Mesh     MeshSource `yaml:"mesh"`
	Material Material   `yaml:"material"`
}

// MeshSource is either a procedural shape or a glTF/GLB asset path.
type MeshSource struct {
	Shape *mesh.Shape `yaml:"shape" validate:"required_without=Asset,excluded_with=Asset"`
	Asset string      `yaml:"asset"`
}

// Material names the textures of a mesh.
type Material struct {
	Albedo   *TextureSource `yaml:"albedo"`
	Emission *TextureSource `yaml:"emission"`
}

// TextureSource is either an image file or a solid RGBA color.
type TextureSource struct {
	File  string      `yaml:"file" validate:"required_without=Color,excluded_with=Color"`
	Color *[4]float32 `yaml:"color"`
}

// TransformData is a transform as written in scene files. Rotation is a
// quaternion [x, y, z, w].
type TransformData struct {
	Translation [3]float32  `yaml:"translation"`
	Rotation    *[4]float32 `yaml:"rotation"`
	Scale       *[3]float32 `yaml:"scale"`
}

// Transform converts to the transform component.
func (d *TransformData) Transform() *transform.Transform {
	t := transform.New()
	t.Translation = math.V3(d.Translation)
	if d.Rotation != nil {
		t.Rotation = math.Q4(*d.Rotation)
	}
	if d.Scale != nil {
		t.Scale = math.V3(*d.Scale)
	}
	return t
}

// CameraData holds exactly one projection.
type CameraData struct {
	Perspective  *PerspectiveData  `yaml:"perspective" validate:"required_without=Orthographic,excluded_with=Orthographic"`
	Orthographic *OrthographicData `yaml:"orthographic"`
}

// PerspectiveData is a perspective projection; fovy is in radians.
type PerspectiveData struct {
	Aspect float32 `yaml:"aspect" validate:"gt=0"`
	Fovy   float32 `yaml:"fovy" validate:"gt=0,lt=3.14159265"`
	ZNear  float32 `yaml:"znear" validate:"gt=0"`
	ZFar   float32 `yaml:"zfar" validate:"gtfield=ZNear"`
}

// OrthographicData is an orthographic projection. Opposite planes must
// differ.
type OrthographicData struct {
	Left   float32 `yaml:"left"`
	Right  float32 `yaml:"right" validate:"nefield=Left"`
	Bottom float32 `yaml:"bottom"`
	Top    float32 `yaml:"top" validate:"nefield=Bottom"`
	ZNear  float32 `yaml:"znear"`
	ZFar   float32 `yaml:"zfar" validate:"nefield=ZNear"`
}

// Camera builds the camera component.
func (d *CameraData) Camera() *camera.Camera {
	if p := d.Perspective; p != nil {
		return camera.NewPerspective(p.Aspect, p.Fovy, p.ZNear, p.ZFar)
	}
	o := d.Orthographic
	return camera.NewOrthographic(o.Left, o.Right, o.Bottom, o.Top, o.ZNear, o.ZFar)
}
