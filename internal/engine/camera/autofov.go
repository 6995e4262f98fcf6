package camera

import (
	gomath "math"

	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// AutoFovSystemName is the dispatcher name of the auto fov system.
const AutoFovSystemName = "auto_fov"

// AutoFov adapts a perspective camera to the screen aspect ratio.
type AutoFov struct {
	BaseFovx        float32   `yaml:"base_fovx"`
	BaseAspectRatio [2]uint32 `yaml:"base_aspect_ratio"`
	FovxGrowthRate  float32   `yaml:"fovx_growth_rate"`
	Fixed           bool      `yaml:"fixed"`
	MinFovx         float32   `yaml:"min_fovx"`
	MaxFovx         float32   `yaml:"max_fovx"`
	MinFovy         float32   `yaml:"min_fovy"`
	MaxFovy         float32   `yaml:"max_fovy"`
}

// DefaultAutoFov returns the defaults used when a scene gives no values.
func DefaultAutoFov() AutoFov {
	return AutoFov{
		BaseFovx:        1.861684535,
		BaseAspectRatio: [2]uint32{16, 9},
		FovxGrowthRate:  1,
		Fixed:           true,
		MinFovx:         1e-7,
		MaxFovx:         gomath.Pi,
		MinFovy:         1e-7,
		MaxFovy:         gomath.Pi,
	}
}

// UnmarshalYAML fills missing fields with the defaults.
func (a *AutoFov) UnmarshalYAML(node *yaml.Node) error {
	type raw AutoFov
	v := raw(DefaultAutoFov())
	if err := node.Decode(&v); err != nil {
		return err
	}
	*a = AutoFov(v)
	return nil
}

func (a *AutoFov) baseAspect() float32 {
	if a.BaseAspectRatio[1] == 0 {
		return 1
	}
	return float32(a.BaseAspectRatio[0]) / float32(a.BaseAspectRatio[1])
}

// NewFovx returns the horizontal field of view for a screen aspect ratio.
func (a *AutoFov) NewFovx(aspect float32) float32 {
	if a.Fixed {
		return clamp(a.BaseFovx, a.MinFovx, a.MaxFovx)
	}
	fovx := a.BaseFovx * (1 + a.FovxGrowthRate*(aspect/a.baseAspect()-1))
	return clamp(fovx, a.MinFovx, a.MaxFovx)
}

// NewFovy returns the vertical field of view matching NewFovx.
func (a *AutoFov) NewFovy(aspect float32) float32 {
	fovx := a.NewFovx(aspect)
	fovy := float32(2 * gomath.Atan(gomath.Tan(float64(fovx)/2)/float64(aspect)))
	return clamp(fovy, a.MinFovy, a.MaxFovy)
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}

// AutoFovSystem rebuilds perspective projections when the screen aspect
// ratio changes or a new camera appears.
type AutoFovSystem struct {
	lastAspect float32
	seen       map[ecs.Entity]struct{}
}

// NewAutoFovSystem creates the system.
func NewAutoFovSystem() *AutoFovSystem {
	return &AutoFovSystem{seen: make(map[ecs.Entity]struct{})}
}

// Run implements ecs.System.
func (s *AutoFovSystem) Run(w *ecs.World) {
	dims, ok := ecs.Resource[ecs.ScreenDimensions](w)
	if !ok || dims.Height == 0 {
		return
	}
	aspect := dims.AspectRatio()
	changed := aspect != s.lastAspect
	s.lastAspect = aspect

	cameras := ecs.StorageOf[Camera](w)
	live := make(map[ecs.Entity]struct{}, len(s.seen))
	ecs.StorageOf[AutoFov](w).Each(func(e ecs.Entity, af *AutoFov) {
		cam, ok := cameras.Get(e)
		if !ok || cam.Kind != Perspective {
			return
		}
		live[e] = struct{}{}
		if _, known := s.seen[e]; known && !changed {
			return
		}
		fovy := af.NewFovy(aspect)
		cam.SetPerspective(aspect, fovy)
		logger.Debug("camera projection updated",
			zap.Stringer("entity", e),
			zap.Float32("aspect", aspect),
			zap.Float32("fovy", fovy),
		)
	})
	s.seen = live
}
