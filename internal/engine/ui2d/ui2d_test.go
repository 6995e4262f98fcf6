package ui2d

import "testing"

func TestAtlasGlyphs(t *testing.T) {
	a := NewAtlas()
	if a.GlyphW != 7 || a.GlyphH != 13 {
		t.Fatalf("glyph size = %dx%d, want 7x13", a.GlyphW, a.GlyphH)
	}

	// 'A' must have some ink, ' ' none.
	ink := func(r rune) int {
		col, row := a.cell(r)
		n := 0
		for y := row * a.GlyphH; y < (row+1)*a.GlyphH; y++ {
			for x := col * a.GlyphW; x < (col+1)*a.GlyphW; x++ {
				if a.Mask.AlphaAt(x, y).A > 0 {
					n++
				}
			}
		}
		return n
	}
	if ink('A') == 0 {
		t.Error("glyph 'A' is empty")
	}
	if ink(' ') != 0 {
		t.Error("space glyph has ink")
	}
}

func TestAtlasUV(t *testing.T) {
	a := NewAtlas()
	u0, v0, u1, v1 := a.GlyphUV(' ')
	if u0 != 0 || v0 != 0 {
		t.Errorf("space UV origin = (%v, %v)", u0, v0)
	}
	if u1 <= u0 || v1 <= v0 {
		t.Errorf("space UV = %v %v %v %v", u0, v0, u1, v1)
	}

	q := [4]float32{}
	q[0], q[1], q[2], q[3] = a.GlyphUV('?')
	var e [4]float32
	e[0], e[1], e[2], e[3] = a.GlyphUV('é')
	if q != e {
		t.Errorf("non-ASCII glyph UV = %v, want '?' %v", e, q)
	}
}

func TestMeasureText(t *testing.T) {
	a := NewAtlas()
	tests := []struct {
		text  string
		scale float32
		w, h  float32
	}{
		{"", 1, 0, 0},
		{"abc", 1, 21, 13},
		{"abc", 2, 42, 26},
		{"a\nlonger", 1, 42, 26},
	}
	for _, tt := range tests {
		w, h := a.MeasureText(tt.text, tt.scale)
		if w != tt.w || h != tt.h {
			t.Errorf("MeasureText(%q, %v) = %v x %v, want %v x %v", tt.text, tt.scale, w, h, tt.w, tt.h)
		}
	}
}

func TestAppendText(t *testing.T) {
	a := NewAtlas()
	v := appendText(nil, a, 10, 20, "ab\nc", 1, ColorWhite)
	if got := len(v) / textFloats; got != 3*6 {
		t.Fatalf("vertices = %d, want 18", got)
	}
	// Third glyph starts a new line at x=10, y=20+13.
	third := v[2*6*textFloats:]
	if third[0] != 10 || third[1] != 33 {
		t.Errorf("third glyph origin = (%v, %v), want (10, 33)", third[0], third[1])
	}

	s := appendQuad(nil, 0, 0, 4, 2, nil, FromArray([4]float32{1, 0, 0, 1}))
	if len(s) != 6*solidFloats {
		t.Errorf("solid quad floats = %d", len(s))
	}
	if s[3] != 1 || s[4] != 0 {
		t.Errorf("solid quad color = %v", s[3:7])
	}
}
