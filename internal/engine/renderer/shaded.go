package renderer

import (
	"fmt"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/engine/camera"
	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/lighting"
	"github.com/Faultbox/flyview/internal/engine/renderer/shaders"
	"github.com/Faultbox/flyview/internal/engine/shader"
	"github.com/Faultbox/flyview/internal/engine/texture"
	"github.com/Faultbox/flyview/internal/engine/transform"
	"github.com/Faultbox/flyview/internal/logger"
	"github.com/Faultbox/flyview/pkg/math"
)

// RenderShaded3D draws every Renderable lit by the scene's lights, seen from
// the active camera.
type RenderShaded3D struct {
	program       *shader.Program
	white, black  *texture.Texture
	lights        lighting.Buffer
	warnedDropped bool
}

// NewRenderShaded3D creates the pass. GPU resources are made in Init.
func NewRenderShaded3D() *RenderShaded3D {
	return &RenderShaded3D{}
}

// Init implements Plugin.
func (p *RenderShaded3D) Init() error {
	var err error
	p.program, err = shader.NewProgram(shaders.ShadedVertexShader, shaders.ShadedFragmentShader)
	if err != nil {
		return fmt.Errorf("shaded program: %w", err)
	}
	p.white = texture.UploadSolid(color.RGBA{255, 255, 255, 255})
	p.black = texture.UploadSolid(color.RGBA{0, 0, 0, 255})
	return nil
}

// Render implements Plugin.
func (p *RenderShaded3D) Render(w *ecs.World, _ ecs.ScreenDimensions) {
	camEntity, cam, ok := ActiveCamera(w)
	if !ok {
		return
	}
	globals := ecs.StorageOf[transform.Global](w)
	view := math.Identity()
	if g, ok := globals.Get(camEntity); ok {
		view = camera.View(g.Matrix)
	}

	p.lights.Gather(w)
	if p.lights.Dropped > 0 && !p.warnedDropped {
		logger.Warn("too many lights, extra ones ignored",
			zap.Int("max_per_kind", lighting.MaxLights),
			zap.Int("dropped", p.lights.Dropped),
		)
		p.warnedDropped = true
	}

	var ambient [3]float32
	if a, ok := ecs.Resource[AmbientColor](w); ok {
		ambient = [3]float32{a.Color[0], a.Color[1], a.Color[2]}
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	// The Y flip in GLProjection reverses winding.
	gl.FrontFace(gl.CW)

	prog := p.program
	prog.Use()
	prog.SetMat4("uView", view)
	prog.SetMat4("uProjection", cam.GLProjection())
	prog.SetVec3("uAmbient", ambient)
	prog.SetInt("uAlbedo", 0)
	prog.SetInt("uEmission", 1)
	p.uploadLights()

	ecs.StorageOf[Renderable](w).Each(func(e ecs.Entity, r *Renderable) {
		if r.Mesh == nil {
			return
		}
		model := math.Identity()
		if g, ok := globals.Get(e); ok {
			model = g.Matrix
		}
		prog.SetMat4("uModel", model)
		prog.SetMat3("uNormalMatrix", model.NormalMatrix())
		orDefault(r.Material.Albedo, p.white).Bind(0)
		orDefault(r.Material.Emission, p.black).Bind(1)
		r.Mesh.Draw()
	})

	gl.FrontFace(gl.CCW)
	gl.Disable(gl.CULL_FACE)
	gl.UseProgram(0)
}

func (p *RenderShaded3D) uploadLights() {
	b := &p.lights
	prog := p.program

	prog.SetInt("uPointCount", b.PointCount)
	prog.SetVec3Array("uPointPositions", b.PointPositions[:])
	prog.SetVec3Array("uPointColors", b.PointColors[:])
	prog.SetFloatArray("uPointRadii", b.PointRadii[:])
	prog.SetFloatArray("uPointSmoothness", b.PointSmoothness[:])

	prog.SetInt("uDirCount", b.DirCount)
	prog.SetVec3Array("uDirDirections", b.DirDirections[:])
	prog.SetVec3Array("uDirColors", b.DirColors[:])

	prog.SetInt("uSpotCount", b.SpotCount)
	prog.SetVec3Array("uSpotPositions", b.SpotPositions[:])
	prog.SetVec3Array("uSpotDirections", b.SpotDirections[:])
	prog.SetVec3Array("uSpotColors", b.SpotColors[:])
	prog.SetFloatArray("uSpotCosAngles", b.SpotCosAngles[:])
	prog.SetFloatArray("uSpotRanges", b.SpotRanges[:])
	prog.SetFloatArray("uSpotSmoothness", b.SpotSmoothness[:])
}

func orDefault(t, def *texture.Texture) *texture.Texture {
	if t == nil {
		return def
	}
	return t
}

// Dispose implements Plugin.
func (p *RenderShaded3D) Dispose() {
	if p.program != nil {
		p.program.Destroy()
	}
	if p.white != nil {
		p.white.Destroy()
	}
	if p.black != nil {
		p.black.Destroy()
	}
}
