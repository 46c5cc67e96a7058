package raster

import (
	"math"
	"testing"
)

func pixel(fb *FrameBuffer, x, y int) [4]uint8 {
	i := (y*fb.Width + x) * 4
	return [4]uint8{fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3]}
}

func TestSegmentWritesShadedColorAndDepth(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	RasterizeSegment(fb, 2.5, 8.5, 0, 13.5, 8.5, 0, 1, 200, 100, 50, 255, 0.5)

	got := pixel(fb, 8, 8)
	want := [4]uint8{100, 50, 25, 255}
	if got != want {
		t.Fatalf("pixel (8,8): got %v, want %v", got, want)
	}
	if math.IsInf(fb.ZBuf[8*16+8], -1) {
		t.Fatal("depth not written")
	}
	// a pixel well off the line stays untouched
	if got := pixel(fb, 8, 2); got != ([4]uint8{}) {
		t.Fatalf("pixel (8,2) should be empty, got %v", got)
	}
	if !math.IsInf(fb.ZBuf[2*16+8], -1) {
		t.Fatal("depth written outside the line")
	}
}

func TestDepthTestKeepsNearerSegment(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	RasterizeSegment(fb, 2.5, 8.5, 0, 13.5, 8.5, 0, 1, 255, 0, 0, 255, 1)

	// farther segment must not overwrite
	RasterizeSegment(fb, 2.5, 8.5, -1, 13.5, 8.5, -1, 1, 0, 255, 0, 255, 1)
	if got := pixel(fb, 8, 8); got != ([4]uint8{255, 0, 0, 255}) {
		t.Fatalf("farther segment overwrote: got %v", got)
	}

	// nearer segment wins
	RasterizeSegment(fb, 2.5, 8.5, 1, 13.5, 8.5, 1, 1, 0, 0, 255, 255, 1)
	if got := pixel(fb, 8, 8); got != ([4]uint8{0, 0, 255, 255}) {
		t.Fatalf("nearer segment lost: got %v", got)
	}
}

func TestSegmentClipsToBuffer(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	// entirely off screen, must not panic or write anything
	RasterizeDot(fb, -10, -10, 0, 3, 255, 255, 255, 255)
	RasterizeSegment(fb, -20, 4, 0, -10, 4, 0, 2, 255, 255, 255, 255, 1)
	for i, c := range fb.Color {
		if c != 0 {
			t.Fatalf("color byte %d written by off-screen draw", i)
		}
	}

	// partially off screen draws its visible part without panicking
	RasterizeSegment(fb, -4, 4.5, 0, 4, 4.5, 0, 1, 255, 255, 255, 255, 1)
	if got := pixel(fb, 1, 4); got != ([4]uint8{255, 255, 255, 255}) {
		t.Fatalf("visible part of clipped segment missing: got %v", got)
	}
}

func TestDotIsRound(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	RasterizeDot(fb, 8, 8, 0, 2, 255, 255, 255, 255)

	if got := pixel(fb, 8, 8); got[3] != 255 {
		t.Fatal("dot center not written")
	}
	// corners of the bounding box are outside the disc
	if got := pixel(fb, 6, 6); got[3] != 0 {
		t.Fatal("dot corner should be outside the disc")
	}
}

func TestToNRGBA(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	RasterizeDot(fb, 2, 2, 0, 1, 10, 20, 30, 255)

	img := fb.ToNRGBA()
	c := img.NRGBAAt(2, 2)
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Fatalf("image pixel: got %v", c)
	}
	if img.NRGBAAt(0, 0).A != 0 {
		t.Fatal("untouched pixel should be transparent")
	}
}
