// Package ui2d provides a simple 2D overlay renderer using OpenGL: batched
// solid quads and bitmap text in logical screen pixels.
package ui2d

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/flyview/internal/engine/shader"
	"github.com/Faultbox/flyview/pkg/math"
)

const (
	solidFloats = 7 // pos3 + color4
	textFloats  = 9 // pos3 + uv2 + color4
)

// Renderer handles 2D UI rendering with OpenGL.
type Renderer struct {
	screenWidth  int
	screenHeight int

	solidShader *shader.Program
	textShader  *shader.Program

	solidVAO, solidVBO uint32
	textVAO, textVBO   uint32

	solidVertices []float32
	textVertices  []float32

	font *Font
}

// New creates a 2D renderer for a screen of width x height logical pixels.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		screenWidth:   width,
		screenHeight:  height,
		solidVertices: make([]float32, 0, 4096),
		textVertices:  make([]float32, 0, 4096),
	}

	var err error
	r.solidShader, err = shader.NewProgram(solidVertexShader, solidFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	r.textShader, err = shader.NewProgram(textVertexShader, textFragmentShader)
	if err != nil {
		r.solidShader.Destroy()
		return nil, fmt.Errorf("create text shader: %w", err)
	}

	r.solidVAO, r.solidVBO = createBuffers(solidFloats, []int32{3, 4})
	r.textVAO, r.textVBO = createBuffers(textFloats, []int32{3, 2, 4})
	r.font = NewFont()

	return r, nil
}

// createBuffers creates a VAO/VBO pair with tightly packed float attributes
// at locations 0..n-1.
func createBuffers(floatsPerVertex int32, sizes []int32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := floatsPerVertex * 4
	offset := uintptr(0)
	for i, size := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(i), size, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(uint32(i))
		offset += uintptr(size * 4)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
}

// ScreenSize returns the current screen dimensions.
func (r *Renderer) ScreenSize() (int, int) {
	return r.screenWidth, r.screenHeight
}

// Begin starts a new UI frame.
func (r *Renderer) Begin() {
	r.solidVertices = r.solidVertices[:0]
	r.textVertices = r.textVertices[:0]
}

// End renders everything queued since Begin.
func (r *Renderer) End() {
	var prevBlend, prevDepth, prevCull int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)
	gl.GetIntegerv(gl.CULL_FACE, &prevCull)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	// y grows downwards in screen space.
	proj := math.Ortho2D(0, float32(r.screenWidth), float32(r.screenHeight), 0)

	if len(r.solidVertices) > 0 {
		r.solidShader.Use()
		r.solidShader.SetMat4("uProjection", proj)
		drawBatch(r.solidVAO, r.solidVBO, r.solidVertices, solidFloats)
	}

	if len(r.textVertices) > 0 {
		r.textShader.Use()
		r.textShader.SetMat4("uProjection", proj)
		r.textShader.SetInt("uTexture", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.font.TextureID())
		drawBatch(r.textVAO, r.textVBO, r.textVertices, textFloats)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if prevBlend == gl.FALSE {
		gl.Disable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull == gl.TRUE {
		gl.Enable(gl.CULL_FACE)
	}
}

func drawBatch(vao, vbo uint32, vertices []float32, floatsPerVertex int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/floatsPerVertex))
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	if r.font != nil {
		r.font.Close()
	}
	for _, vao := range []*uint32{&r.solidVAO, &r.textVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, vbo := range []*uint32{&r.solidVBO, &r.textVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
	r.solidShader.Destroy()
	r.textShader.Destroy()
}

// DrawRect draws a filled rectangle.
func (r *Renderer) DrawRect(x, y, width, height float32, color Color) {
	r.solidVertices = appendQuad(r.solidVertices, x, y, width, height, nil, color)
}

// DrawPanel draws a rectangle with a one pixel border.
func (r *Renderer) DrawPanel(x, y, width, height float32, bg, border Color) {
	r.DrawRect(x, y, width, height, bg)
	if border.A == 0 {
		return
	}
	r.DrawRect(x, y, width, 1, border)
	r.DrawRect(x, y+height-1, width, 1, border)
	r.DrawRect(x, y, 1, height, border)
	r.DrawRect(x+width-1, y, 1, height, border)
}

// DrawText draws text with its top-left corner at x, y.
func (r *Renderer) DrawText(x, y float32, text string, scale float32, color Color) {
	r.textVertices = appendText(r.textVertices, r.font.Atlas, x, y, text, scale, color)
}

// MeasureText returns the width and height of rendered text.
func (r *Renderer) MeasureText(text string, scale float32) (float32, float32) {
	return r.font.MeasureText(text, scale)
}

// appendText queues one quad per glyph.
func appendText(dst []float32, a *Atlas, x, y float32, text string, scale float32, c Color) []float32 {
	charW := float32(a.GlyphW) * scale
	charH := float32(a.GlyphH) * scale

	curX := x
	for _, ch := range text {
		if ch == '\n' {
			curX = x
			y += charH
			continue
		}
		u0, v0, u1, v1 := a.GlyphUV(ch)
		dst = appendQuad(dst, curX, y, charW, charH, &[4]float32{u0, v0, u1, v1}, c)
		curX += charW
	}
	return dst
}

// appendQuad appends two triangles. With uv set the vertex carries texture
// coordinates (text layout), otherwise only position and color.
func appendQuad(dst []float32, x, y, w, h float32, uv *[4]float32, c Color) []float32 {
	corners := [6][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 0}, {1, 1}, {0, 1}}
	for _, k := range corners {
		dst = append(dst, x+k[0]*w, y+k[1]*h, 0)
		if uv != nil {
			dst = append(dst, uv[0]+k[0]*(uv[2]-uv[0]), uv[1]+k[1]*(uv[3]-uv[1]))
		}
		dst = append(dst, c.R, c.G, c.B, c.A)
	}
	return dst
}

const solidVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;

out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const solidFragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

const textVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

uniform mat4 uProjection;

out vec2 vTexCoord;
out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vTexCoord = aTexCoord;
	vColor = aColor;
}
`

const textFragmentShader = `
#version 410 core

uniform sampler2D uTexture;

in vec2 vTexCoord;
in vec4 vColor;
out vec4 FragColor;

void main() {
	float alpha = texture(uTexture, vTexCoord).a;
	FragColor = vec4(vColor.rgb, vColor.a * alpha);
}
`
