package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x1, bottom-up, BGR.
	data := append(tgaHeader(TGATypeUncompressed, 2, 1, 24, 0),
		0, 0, 255, // red
		255, 0, 0, // blue
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatal(err)
	}
	rgba := img.(*image.RGBA)
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel 0 = %v, want red", got)
	}
	if got := rgba.RGBAAt(1, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pixel 1 = %v, want blue", got)
	}
}

func TestDecodeTGAOrientation(t *testing.T) {
	// 1x2 with 32-bit pixels: first stored pixel is the bottom row unless
	// the top-to-bottom bit is set.
	pixels := []byte{0, 255, 0, 255, 0, 0, 255, 128}
	tests := []struct {
		name       string
		descriptor byte
		top        color.RGBA
	}{
		{"bottom-up", 0, color.RGBA{255, 0, 0, 128}},
		{"top-down", 0x20, color.RGBA{0, 255, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append(tgaHeader(TGATypeUncompressed, 1, 2, 32, tt.descriptor), pixels...)
			img, err := DecodeTGA(data)
			if err != nil {
				t.Fatal(err)
			}
			if got := img.(*image.RGBA).RGBAAt(0, 0); got != tt.top {
				t.Errorf("top pixel = %v, want %v", got, tt.top)
			}
		})
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1: a run of two white pixels then one raw black pixel.
	data := append(tgaHeader(TGATypeRLE, 3, 1, 24, 0x20),
		0x81, 255, 255, 255,
		0x00, 0, 0, 0,
	)
	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatal(err)
	}
	rgba := img.(*image.RGBA)
	want := []color.RGBA{{255, 255, 255, 255}, {255, 255, 255, 255}, {0, 0, 0, 255}}
	for x, w := range want {
		if got := rgba.RGBAAt(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	colorMapped := tgaHeader(TGATypeUncompressed, 1, 1, 24, 0)
	colorMapped[1] = 1

	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 2}},
		{"color mapped", colorMapped},
		{"grayscale", tgaHeader(3, 1, 1, 8, 0)},
		{"16 bit", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0)},
		{"truncated pixels", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, 0), 1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeFormats(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(1, 0, color.RGBA{10, 20, 30, 255})

	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"tex.png", pngBuf.Bytes()},
		{"tex.bmp", bmpBuf.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.name, tt.data)
			if err != nil {
				t.Fatal(err)
			}
			if got := img.RGBAAt(1, 0); got != (color.RGBA{10, 20, 30, 255}) {
				t.Errorf("pixel = %v", got)
			}
		})
	}

	if _, err := Decode("junk.png", []byte("not an image")); err == nil {
		t.Error("expected error for junk data")
	}
}

func TestFlipVertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 1, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 2, A: 255})
	out := FlipVertical(img)
	if out.RGBAAt(0, 0).R != 2 || out.RGBAAt(0, 1).R != 1 {
		t.Errorf("FlipVertical rows = %v, %v", out.RGBAAt(0, 0), out.RGBAAt(0, 1))
	}
}

func TestColorFromFloats(t *testing.T) {
	got := ColorFromFloats([4]float32{1, 0.5, -1, 2})
	if got != (color.RGBA{255, 128, 0, 255}) {
		t.Errorf("ColorFromFloats = %v", got)
	}
	if Solid(got).RGBAAt(0, 0) != got {
		t.Error("Solid pixel mismatch")
	}
}
