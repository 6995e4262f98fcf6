package mesh

import (
	"errors"
	gomath "math"

	"github.com/Faultbox/flyview/internal/validation"
)

// ErrUnknownShape is returned for shape kinds Generate does not know.
var ErrUnknownShape = errors.New("unknown shape")

func init() {
	validation.Sentinel(ErrUnknownShape, "Shape.Kind")
}

// ShapeKind names a procedural shape.
type ShapeKind string

const (
	Cube     ShapeKind = "cube"
	Sphere   ShapeKind = "sphere"
	Plane    ShapeKind = "plane"
	Cylinder ShapeKind = "cylinder"
	Cone     ShapeKind = "cone"
)

const defaultDivisions = 32

// Shape describes a procedural mesh. Every shape spans -1..1 on each axis
// before Scale is applied.
type Shape struct {
	Kind ShapeKind `yaml:"kind" validate:"oneof=cube sphere plane cylinder cone"`
	// U and V are the divisions around and along the shape.
	U     int         `yaml:"u,omitempty" validate:"gte=0"`
	V     int         `yaml:"v,omitempty" validate:"gte=0"`
	Scale *[3]float32 `yaml:"scale,omitempty"`
}

// Validate checks the shape kind and divisions.
func (s Shape) Validate() error {
	return validation.Struct(s)
}

// Generate builds the shape's triangles with normals and tangents.
func (s Shape) Generate() (*Data, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	u, v := s.U, s.V

	var d *Data
	switch s.Kind {
	case Cube:
		d = cube()
	case Sphere:
		d = sphere(divisions(u, 3), divisions(v, 2))
	case Plane:
		d = plane(max(u, 1), max(v, 1))
	case Cylinder:
		d = cylinder(divisions(u, 3))
	case Cone:
		d = cone(divisions(u, 3))
	}
	if s.Scale != nil {
		d.Scale(*s.Scale)
	}
	return d, nil
}

func divisions(n, least int) int {
	if n == 0 {
		return defaultDivisions
	}
	return max(n, least)
}

// quad appends a grid of divU x divV quads centered on n with axes u and v
// (u x v = n), spanning -1..1 along u and v.
func quad(d *Data, n, u, v [3]float32, divU, divV int) {
	base := uint32(len(d.Vertices))
	for j := 0; j <= divV; j++ {
		fv := float32(j) / float32(divV)
		for i := 0; i <= divU; i++ {
			fu := float32(i) / float32(divU)
			p := add(n, add(scale(u, 2*fu-1), scale(v, 2*fv-1)))
			d.Vertices = append(d.Vertices, Vertex{
				Position: p,
				Normal:   n,
				Tangent:  u,
				TexCoord: [2]float32{fu, fv},
			})
		}
	}
	row := uint32(divU + 1)
	for j := 0; j < divV; j++ {
		for i := 0; i < divU; i++ {
			a := base + uint32(j)*row + uint32(i)
			d.Indices = append(d.Indices, a, a+1, a+row+1, a, a+row+1, a+row)
		}
	}
}

func cube() *Data {
	d := &Data{}
	faces := [6][3][3]float32{
		{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	}
	for _, f := range faces {
		quad(d, f[0], f[1], f[2], 1, 1)
	}
	return d
}

// plane lies in XZ facing +Y.
func plane(divU, divV int) *Data {
	d := &Data{}
	quad(d, [3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}, divU, divV)
	for i := range d.Vertices {
		d.Vertices[i].Normal = [3]float32{0, 1, 0}
	}
	return d
}

func sphere(divU, divV int) *Data {
	d := &Data{}
	for j := 0; j <= divV; j++ {
		theta := gomath.Pi * float64(j) / float64(divV)
		st, ct := float32(gomath.Sin(theta)), float32(gomath.Cos(theta))
		for i := 0; i <= divU; i++ {
			phi := 2 * gomath.Pi * float64(i) / float64(divU)
			sp, cp := float32(gomath.Sin(phi)), float32(gomath.Cos(phi))
			p := [3]float32{st * sp, ct, st * cp}
			d.Vertices = append(d.Vertices, Vertex{
				Position: p,
				Normal:   p,
				Tangent:  [3]float32{cp, 0, -sp},
				TexCoord: [2]float32{float32(i) / float32(divU), 1 - float32(j)/float32(divV)},
			})
		}
	}
	row := uint32(divU + 1)
	for j := 0; j < divV; j++ {
		for i := 0; i < divU; i++ {
			a := uint32(j)*row + uint32(i)
			b := a + row
			if j != 0 {
				d.Indices = append(d.Indices, a, b, a+1)
			}
			if j != divV-1 {
				d.Indices = append(d.Indices, a+1, b, b+1)
			}
		}
	}
	return d
}

func ring(divU int) (sin, cos []float32) {
	sin = make([]float32, divU+1)
	cos = make([]float32, divU+1)
	for i := 0; i <= divU; i++ {
		phi := 2 * gomath.Pi * float64(i) / float64(divU)
		sin[i], cos[i] = float32(gomath.Sin(phi)), float32(gomath.Cos(phi))
	}
	return sin, cos
}

// disc appends a cap at height y; up selects the facing direction.
func disc(d *Data, divU int, y float32, up bool) {
	sin, cos := ring(divU)
	n := [3]float32{0, -1, 0}
	if up {
		n = [3]float32{0, 1, 0}
	}
	center := uint32(len(d.Vertices))
	d.Vertices = append(d.Vertices, Vertex{
		Position: [3]float32{0, y, 0},
		Normal:   n,
		Tangent:  [3]float32{1, 0, 0},
		TexCoord: [2]float32{0.5, 0.5},
	})
	for i := 0; i <= divU; i++ {
		d.Vertices = append(d.Vertices, Vertex{
			Position: [3]float32{sin[i], y, cos[i]},
			Normal:   n,
			Tangent:  [3]float32{1, 0, 0},
			TexCoord: [2]float32{0.5 + sin[i]/2, 0.5 + cos[i]/2},
		})
	}
	for i := uint32(0); i < uint32(divU); i++ {
		a, b := center+1+i, center+2+i
		if up {
			d.Indices = append(d.Indices, center, a, b)
		} else {
			d.Indices = append(d.Indices, center, b, a)
		}
	}
}

func cylinder(divU int) *Data {
	d := &Data{}
	sin, cos := ring(divU)
	for i := 0; i <= divU; i++ {
		n := [3]float32{sin[i], 0, cos[i]}
		t := [3]float32{cos[i], 0, -sin[i]}
		u := float32(i) / float32(divU)
		d.Vertices = append(d.Vertices,
			Vertex{Position: [3]float32{sin[i], 1, cos[i]}, Normal: n, Tangent: t, TexCoord: [2]float32{u, 1}},
			Vertex{Position: [3]float32{sin[i], -1, cos[i]}, Normal: n, Tangent: t, TexCoord: [2]float32{u, 0}},
		)
	}
	for i := uint32(0); i < uint32(divU); i++ {
		top, bottom := 2*i, 2*i+1
		d.Indices = append(d.Indices, top, bottom, top+2, top+2, bottom, bottom+2)
	}
	disc(d, divU, 1, true)
	disc(d, divU, -1, false)
	return d
}

func cone(divU int) *Data {
	d := &Data{}
	sin, cos := ring(divU)
	// Slant normal of a cone with radius 1 and height 2.
	slant := func(s, c float32) [3]float32 {
		return normalize([3]float32{2 * s, 1, 2 * c})
	}
	for i := 0; i < divU; i++ {
		mid := 2 * gomath.Pi * (float64(i) + 0.5) / float64(divU)
		ms, mc := float32(gomath.Sin(mid)), float32(gomath.Cos(mid))
		u0, u1 := float32(i)/float32(divU), float32(i+1)/float32(divU)

		base := uint32(len(d.Vertices))
		d.Vertices = append(d.Vertices,
			Vertex{Position: [3]float32{0, 1, 0}, Normal: slant(ms, mc), Tangent: [3]float32{mc, 0, -ms}, TexCoord: [2]float32{(u0 + u1) / 2, 1}},
			Vertex{Position: [3]float32{sin[i], -1, cos[i]}, Normal: slant(sin[i], cos[i]), Tangent: [3]float32{cos[i], 0, -sin[i]}, TexCoord: [2]float32{u0, 0}},
			Vertex{Position: [3]float32{sin[i+1], -1, cos[i+1]}, Normal: slant(sin[i+1], cos[i+1]), Tangent: [3]float32{cos[i+1], 0, -sin[i+1]}, TexCoord: [2]float32{u1, 0}},
		)
		d.Indices = append(d.Indices, base, base+1, base+2)
	}
	disc(d, divU, -1, false)
	return d
}
