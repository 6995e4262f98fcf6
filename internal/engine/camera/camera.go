// Package camera provides projection cameras and field-of-view helpers.
package camera

import (
	gomath "math"

	"github.com/Faultbox/flyview/pkg/math"
)

// Kind tells how a camera projects.
type Kind int

const (
	Perspective Kind = iota
	Orthographic
)

func (k Kind) String() string {
	if k == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Camera holds a projection matrix. The view comes from the entity's
// global transform.
type Camera struct {
	Kind       Kind
	Projection math.Mat4

	ZNear, ZFar float32

	// Orthographic bounds, kept so the projection can be rebuilt.
	Left, Right, Bottom, Top float32
}

// NewPerspective creates a perspective camera. fovy is in radians.
func NewPerspective(aspect, fovy, znear, zfar float32) *Camera {
	return &Camera{
		Kind:       Perspective,
		Projection: math.Perspective(aspect, fovy, znear, zfar),
		ZNear:      znear,
		ZFar:       zfar,
	}
}

// NewOrthographic creates an orthographic camera.
func NewOrthographic(left, right, bottom, top, znear, zfar float32) *Camera {
	return &Camera{
		Kind:       Orthographic,
		Projection: math.Orthographic(left, right, bottom, top, znear, zfar),
		ZNear:      znear,
		ZFar:       zfar,
		Left:       left,
		Right:      right,
		Bottom:     bottom,
		Top:        top,
	}
}

// SetPerspective rebuilds the projection keeping the clip planes.
func (c *Camera) SetPerspective(aspect, fovy float32) {
	c.Kind = Perspective
	c.Projection = math.Perspective(aspect, fovy, c.ZNear, c.ZFar)
}

// Fovy returns the vertical field of view encoded in a projection:
// 2 * atan(-1 / m[1][1]).
func Fovy(m math.Mat4) float32 {
	return float32(2 * gomath.Atan(-1/float64(m.At(1, 1))))
}

// Aspect returns the aspect ratio encoded in a projection:
// |m[1][1] / m[0][0]|.
func Aspect(m math.Mat4) float32 {
	return float32(gomath.Abs(float64(m.At(1, 1)) / float64(m.At(0, 0))))
}

// Fovx approximates the horizontal field of view as Fovy * Aspect.
func Fovx(m math.Mat4) float32 {
	return Fovy(m) * Aspect(m)
}

// View returns the view matrix for a camera placed at the given world matrix.
func View(global math.Mat4) math.Mat4 {
	return global.Inverse()
}

// GLProjection returns the projection converted to OpenGL clip space.
func (c *Camera) GLProjection() math.Mat4 {
	return math.GLClipCorrection().Mul(c.Projection)
}
