package lighting

import (
	gomath "math"

	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/transform"
)

// MaxLights is the number of lights of each kind the shaders accept.
const MaxLights = 16

// Buffer holds the scene's lights as flat arrays ready for uniform upload.
// Colors are premultiplied by intensity.
type Buffer struct {
	PointCount      int32
	PointPositions  [MaxLights * 3]float32
	PointColors     [MaxLights * 3]float32
	PointRadii      [MaxLights]float32
	PointSmoothness [MaxLights]float32
	DirCount        int32
	DirDirections   [MaxLights * 3]float32
	DirColors       [MaxLights * 3]float32
	SpotCount       int32
	SpotPositions   [MaxLights * 3]float32
	SpotDirections  [MaxLights * 3]float32
	SpotColors      [MaxLights * 3]float32
	SpotCosAngles   [MaxLights]float32
	SpotRanges      [MaxLights]float32
	SpotSmoothness  [MaxLights]float32
	Dropped         int
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	*b = Buffer{}
}

// AddPoint appends a point light at pos. Returns false if the buffer is full.
func (b *Buffer) AddPoint(pos [3]float32, l *PointLight) bool {
	i := int(b.PointCount)
	if i >= MaxLights {
		b.Dropped++
		return false
	}
	put3(b.PointPositions[:], i, pos)
	put3(b.PointColors[:], i, scaled(l.Color, l.Intensity))
	b.PointRadii[i] = l.Radius
	b.PointSmoothness[i] = l.Smoothness
	b.PointCount++
	return true
}

// AddDirectional appends a directional light.
func (b *Buffer) AddDirectional(l *DirectionalLight) bool {
	i := int(b.DirCount)
	if i >= MaxLights {
		b.Dropped++
		return false
	}
	put3(b.DirDirections[:], i, normalized(l.Direction))
	put3(b.DirColors[:], i, scaled(l.Color, l.Intensity))
	b.DirCount++
	return true
}

// AddSpot appends a spot light at pos.
func (b *Buffer) AddSpot(pos [3]float32, l *SpotLight) bool {
	i := int(b.SpotCount)
	if i >= MaxLights {
		b.Dropped++
		return false
	}
	put3(b.SpotPositions[:], i, pos)
	put3(b.SpotDirections[:], i, normalized(l.Direction))
	put3(b.SpotColors[:], i, scaled(l.Color, l.Intensity))
	b.SpotCosAngles[i] = float32(gomath.Cos(float64(l.Angle) / 2))
	b.SpotRanges[i] = l.Range
	b.SpotSmoothness[i] = l.Smoothness
	b.SpotCount++
	return true
}

// Gather fills the buffer from every entity with a Light. Positions come from
// the global transform; lights without one sit at the origin.
func (b *Buffer) Gather(w *ecs.World) {
	b.Reset()
	globals := ecs.StorageOf[transform.Global](w)
	ecs.StorageOf[Light](w).Each(func(e ecs.Entity, l *Light) {
		var pos [3]float32
		if g, ok := globals.Get(e); ok {
			pos = g.Position().Array()
		}
		switch {
		case l.Point != nil:
			b.AddPoint(pos, l.Point)
		case l.Directional != nil:
			b.AddDirectional(l.Directional)
		case l.Spot != nil:
			b.AddSpot(pos, l.Spot)
		}
	})
}

func put3(dst []float32, i int, v [3]float32) {
	dst[i*3+0] = v[0]
	dst[i*3+1] = v[1]
	dst[i*3+2] = v[2]
}

func scaled(c [3]float32, s float32) [3]float32 {
	return [3]float32{c[0] * s, c[1] * s, c[2] * s}
}

func normalized(v [3]float32) [3]float32 {
	l := float32(gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l == 0 {
		return [3]float32{0, -1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
