package ui2d

import (
	"image"
	"image/draw"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Atlas layout: printable ASCII in a 16 column grid.
const (
	firstGlyph   = ' '
	lastGlyph    = '~'
	atlasColumns = 16
)

// Atlas is a CPU-side bitmap font: one cell per printable ASCII glyph.
type Atlas struct {
	Mask          *image.Alpha
	GlyphW        int
	GlyphH        int
	columns, rows int
}

// NewAtlas renders the 7x13 basic font into a glyph grid.
func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	count := int(lastGlyph-firstGlyph) + 1
	a := &Atlas{
		GlyphW:  face.Advance,
		GlyphH:  face.Height,
		columns: atlasColumns,
		rows:    (count + atlasColumns - 1) / atlasColumns,
	}
	a.Mask = image.NewAlpha(image.Rect(0, 0, a.columns*a.GlyphW, a.rows*a.GlyphH))

	d := font.Drawer{Dst: a.Mask, Src: image.Opaque, Face: face}
	for r := firstGlyph; r <= lastGlyph; r++ {
		col, row := a.cell(r)
		d.Dot = fixed.P(col*a.GlyphW, row*a.GlyphH+face.Ascent)
		d.DrawString(string(r))
	}
	return a
}

func (a *Atlas) cell(r rune) (col, row int) {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	i := int(r - firstGlyph)
	return i % a.columns, i / a.columns
}

// GlyphUV returns the texture coordinates of a glyph. Runes outside
// printable ASCII map to '?'.
func (a *Atlas) GlyphUV(r rune) (u0, v0, u1, v1 float32) {
	col, row := a.cell(r)
	w, h := float32(a.Mask.Rect.Dx()), float32(a.Mask.Rect.Dy())
	u0 = float32(col*a.GlyphW) / w
	v0 = float32(row*a.GlyphH) / h
	u1 = float32((col+1)*a.GlyphW) / w
	v1 = float32((row+1)*a.GlyphH) / h
	return u0, v0, u1, v1
}

// MeasureText returns the size of text at a scale. Lines split on '\n'.
func (a *Atlas) MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	widest := 0
	for _, l := range lines {
		widest = max(widest, len([]rune(l)))
	}
	return float32(widest*a.GlyphW) * scale, float32(len(lines)*a.GlyphH) * scale
}

// Font is an Atlas uploaded as a texture.
type Font struct {
	*Atlas
	texture uint32
}

// NewFont builds the atlas and uploads it. Must run on the GL thread.
func NewFont() *Font {
	a := NewAtlas()
	rgba := image.NewRGBA(a.Mask.Rect)
	draw.Draw(rgba, rgba.Rect, image.White, image.Point{}, draw.Src)
	for i, alpha := range a.Mask.Pix {
		rgba.Pix[i*4+3] = alpha
	}

	f := &Font{Atlas: a}
	gl.GenTextures(1, &f.texture)
	gl.BindTexture(gl.TEXTURE_2D, f.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return f
}

// TextureID returns the GL texture.
func (f *Font) TextureID() uint32 {
	return f.texture
}

// Close releases the texture.
func (f *Font) Close() {
	if f.texture != 0 {
		gl.DeleteTextures(1, &f.texture)
		f.texture = 0
	}
}
