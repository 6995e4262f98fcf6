// Package transform provides local and global entity transforms.
package transform

import (
	"github.com/Faultbox/flyview/pkg/math"
)

// Transform is an entity's position, orientation and scale relative to its
// parent (or the world when it has none).
type Transform struct {
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
}

// New returns the identity transform.
func New() *Transform {
	return &Transform{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Matrix returns translation * rotation * scale.
func (t *Transform) Matrix() math.Mat4 {
	return math.Compose(t.Translation, t.Rotation, t.Scale)
}

// Forward returns the local -Z axis in parent space.
func (t *Transform) Forward() math.Vec3 {
	return t.Rotation.Rotate(math.Vec3{Z: -1})
}

// Right returns the local +X axis in parent space.
func (t *Transform) Right() math.Vec3 {
	return t.Rotation.Rotate(math.UnitX)
}

// Up returns the local +Y axis in parent space.
func (t *Transform) Up() math.Vec3 {
	return t.Rotation.Rotate(math.UnitY)
}

// AppendTranslation moves the transform by v in parent space.
func (t *Transform) AppendTranslation(v math.Vec3) *Transform {
	t.Translation = t.Translation.Add(v)
	return t
}

// AppendTranslationAlong moves distance units along dir in parent space.
func (t *Transform) AppendTranslationAlong(dir math.Vec3, distance float32) *Transform {
	return t.AppendTranslation(dir.Scale(distance))
}

// MoveAlongLocal moves distance units along dir expressed in the
// transform's own axes.
func (t *Transform) MoveAlongLocal(dir math.Vec3, distance float32) *Transform {
	return t.AppendTranslationAlong(t.Rotation.Rotate(dir), distance)
}

// RotateWorld rotates around an axis given in parent space.
func (t *Transform) RotateWorld(axis math.Vec3, angle float32) *Transform {
	t.Rotation = math.QuatFromAxisAngle(axis, angle).Mul(t.Rotation).Normalize()
	return t
}

// RotateLocal rotates around an axis given in the transform's own axes.
func (t *Transform) RotateLocal(axis math.Vec3, angle float32) *Transform {
	t.Rotation = t.Rotation.Mul(math.QuatFromAxisAngle(axis, angle)).Normalize()
	return t
}
