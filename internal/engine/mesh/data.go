// Package mesh builds triangle meshes from procedural shapes and glTF files
// and uploads them to the GPU.
package mesh

import (
	gomath "math"
)

// Vertex is the interleaved vertex layout shared by every mesh.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Tangent  [3]float32
	TexCoord [2]float32
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Data is CPU-side mesh data ready for upload.
type Data struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds computes the bounding box of the vertices.
func (d *Data) Bounds() Bounds {
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for i := range d.Vertices {
		p := d.Vertices[i].Position
		for k := 0; k < 3; k++ {
			b.Min[k] = min(b.Min[k], p[k])
			b.Max[k] = max(b.Max[k], p[k])
		}
	}
	return b
}

// Scale multiplies every position by s. Normals are corrected for
// non-uniform scale.
func (d *Data) Scale(s [3]float32) {
	for i := range d.Vertices {
		v := &d.Vertices[i]
		for k := 0; k < 3; k++ {
			v.Position[k] *= s[k]
		}
		if s[0] != 0 && s[1] != 0 && s[2] != 0 {
			v.Normal = normalize([3]float32{v.Normal[0] / s[0], v.Normal[1] / s[1], v.Normal[2] / s[2]})
		}
	}
}

// Append adds another mesh's triangles.
func (d *Data) Append(other *Data) {
	base := uint32(len(d.Vertices))
	d.Vertices = append(d.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		d.Indices = append(d.Indices, idx+base)
	}
}

// ComputeNormals sets smooth per-vertex normals from the triangles.
func (d *Data) ComputeNormals() {
	sums := make([][3]float32, len(d.Vertices))
	for t := 0; t+2 < len(d.Indices); t += 3 {
		i0, i1, i2 := d.Indices[t], d.Indices[t+1], d.Indices[t+2]
		p0, p1, p2 := d.Vertices[i0].Position, d.Vertices[i1].Position, d.Vertices[i2].Position
		n := cross(sub(p1, p0), sub(p2, p0))
		for _, i := range [3]uint32{i0, i1, i2} {
			sums[i] = add(sums[i], n)
		}
	}
	for i := range d.Vertices {
		d.Vertices[i].Normal = normalize(sums[i])
	}
}

// ComputeTangents derives per-vertex tangents from texture coordinates.
// Vertices without usable UVs get a tangent perpendicular to the normal.
func (d *Data) ComputeTangents() {
	sums := make([][3]float32, len(d.Vertices))
	for t := 0; t+2 < len(d.Indices); t += 3 {
		i0, i1, i2 := d.Indices[t], d.Indices[t+1], d.Indices[t+2]
		v0, v1, v2 := d.Vertices[i0], d.Vertices[i1], d.Vertices[i2]

		e1, e2 := sub(v1.Position, v0.Position), sub(v2.Position, v0.Position)
		du1, dv1 := v1.TexCoord[0]-v0.TexCoord[0], v1.TexCoord[1]-v0.TexCoord[1]
		du2, dv2 := v2.TexCoord[0]-v0.TexCoord[0], v2.TexCoord[1]-v0.TexCoord[1]

		det := du1*dv2 - du2*dv1
		if gomath.Abs(float64(det)) < 1e-8 {
			continue
		}
		r := 1 / det
		tangent := [3]float32{
			(e1[0]*dv2 - e2[0]*dv1) * r,
			(e1[1]*dv2 - e2[1]*dv1) * r,
			(e1[2]*dv2 - e2[2]*dv1) * r,
		}
		for _, i := range [3]uint32{i0, i1, i2} {
			sums[i] = add(sums[i], tangent)
		}
	}

	for i := range d.Vertices {
		n := d.Vertices[i].Normal
		t := sums[i]
		// Gram-Schmidt against the normal.
		t = sub(t, scale(n, dot(n, t)))
		if dot(t, t) < 1e-12 {
			t = perpendicular(n)
		}
		d.Vertices[i].Tangent = normalize(t)
	}
}

func perpendicular(n [3]float32) [3]float32 {
	axis := [3]float32{1, 0, 0}
	if gomath.Abs(float64(n[0])) > 0.9 {
		axis = [3]float32{0, 1, 0}
	}
	return cross(axis, n)
}

func add(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func scale(a [3]float32, s float32) [3]float32 {
	return [3]float32{a[0] * s, a[1] * s, a[2] * s}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	l := float32(gomath.Sqrt(float64(dot(v, v))))
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
