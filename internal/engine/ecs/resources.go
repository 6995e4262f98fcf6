package ecs

// Time is the frame clock resource.
type Time struct {
	Delta   float64 // seconds since the previous frame
	Elapsed float64
	Frame   uint64
}

// Advance moves the clock forward by dt seconds.
func (t *Time) Advance(dt float64) {
	t.Delta = dt
	t.Elapsed += dt
	t.Frame++
}

// ScreenDimensions is the window size resource.
type ScreenDimensions struct {
	Width, Height                 int // logical window size
	DrawableWidth, DrawableHeight int // framebuffer size in pixels
}

// AspectRatio returns width / height, or 1 before the first resize.
func (s *ScreenDimensions) AspectRatio() float32 {
	if s.Height == 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// HiDPIFactor returns drawable pixels per logical pixel.
func (s *ScreenDimensions) HiDPIFactor() float32 {
	if s.Width == 0 || s.DrawableWidth == 0 {
		return 1
	}
	return float32(s.DrawableWidth) / float32(s.Width)
}
