package raster

import "math"

// RasterizeSegment draws a depth-tested thick line between two projected
// points. Coordinates are in pixels, z grows toward the viewer.
//
// This is the HOT PATH of clip rendering — bounding box walk with a
// point-to-segment distance test, zero allocation in the inner loop.
func RasterizeSegment(
	fb *FrameBuffer,
	x0, y0, z0, x1, y1, z1 float64,
	halfWidth float64,
	r, g, b, a uint8,
	shade float64,
) {
	minX := int(math.Floor(math.Min(x0, x1) - halfWidth))
	maxX := int(math.Ceil(math.Max(x0, x1) + halfWidth))
	minY := int(math.Floor(math.Min(y0, y1) - halfWidth))
	maxY := int(math.Ceil(math.Max(y0, y1) + halfWidth))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	dx := x1 - x0
	dy := y1 - y0
	lenSq := dx*dx + dy*dy

	sr := uint8(float64(r) * shade)
	sg := uint8(float64(g) * shade)
	sb := uint8(float64(b) * shade)

	hw2 := halfWidth * halfWidth

	for sy := minY; sy <= maxY; sy++ {
		py := float64(sy) + 0.5
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			px := float64(sx) + 0.5

			// Project the pixel onto the segment, clamp to the endpoints.
			t := 0.0
			if lenSq > 1e-12 {
				t = ((px-x0)*dx + (py-y0)*dy) / lenSq
				if t < 0 {
					t = 0
				} else if t > 1 {
					t = 1
				}
			}
			cx := x0 + t*dx
			cy := y0 + t*dy
			ddx := px - cx
			ddy := py - cy
			if ddx*ddx+ddy*ddy > hw2 {
				continue
			}

			z := z0 + t*(z1-z0)
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			ci := zIdx * 4
			fb.Color[ci+0] = sr
			fb.Color[ci+1] = sg
			fb.Color[ci+2] = sb
			fb.Color[ci+3] = a
		}
	}
}

// RasterizeDot draws a depth-tested filled disc, used for joint markers.
func RasterizeDot(fb *FrameBuffer, x, y, z, radius float64, r, g, b, a uint8) {
	RasterizeSegment(fb, x, y, z, x, y, z, radius, r, g, b, a, 1)
}
