package raster

import (
	"image"

	"mocap-renderer/internal/asf"
	"mocap-renderer/internal/mathutil"
	"mocap-renderer/internal/viewmatrix"
)

// Bone and joint colors before shading.
var (
	boneColor  = [4]uint8{235, 235, 245, 255}
	jointColor = [4]uint8{255, 170, 60, 255}
)

// RenderPose draws the skeleton's current pose as a depth-shaded stick
// figure. The framing must be computed once for the whole clip so the
// camera holds still between frames; size already includes any
// supersampling factor.
func RenderPose(
	skel *asf.Skeleton,
	view mathutil.Mat3,
	framing viewmatrix.Framing,
	size int,
) *image.NRGBA {
	fb := NewFrameBuffer(size, size)
	lc := DefaultLightConfig()

	segs := skel.JointPositions()
	if len(segs) == 0 {
		return fb.ToNRGBA()
	}

	// Depth range across the figure, for the depth cue.
	minZ, maxZ := 0.0, 0.0
	type projSeg struct {
		x0, y0, z0, x1, y1, z1 float64
		dir                    mathutil.Vec3
	}
	proj := make([]projSeg, len(segs))
	for i, s := range segs {
		x0, y0, z0 := viewmatrix.Project(s[0], view, framing, size)
		x1, y1, z1 := viewmatrix.Project(s[1], view, framing, size)
		proj[i] = projSeg{x0, y0, z0, x1, y1, z1, s[1].Sub(s[0])}
		mid := (z0 + z1) / 2
		if i == 0 || mid < minZ {
			minZ = mid
		}
		if i == 0 || mid > maxZ {
			maxZ = mid
		}
	}
	zSpan := maxZ - minZ
	if zSpan < 1e-6 {
		zSpan = 1
	}

	boneWidth := float64(size) / 160
	if boneWidth < 1 {
		boneWidth = 1
	}
	jointRadius := boneWidth * 1.6

	for _, s := range proj {
		depth := ((s.z0+s.z1)/2-minZ)/zSpan*2 - 1
		shade := lc.ShadeSegment(s.dir, depth)
		RasterizeSegment(fb, s.x0, s.y0, s.z0, s.x1, s.y1, s.z1,
			boneWidth, boneColor[0], boneColor[1], boneColor[2], boneColor[3], shade)
	}

	// Joint markers on top of the bones: nudge z forward so they win the
	// depth test against their own segments.
	for _, s := range proj {
		RasterizeDot(fb, s.x1, s.y1, s.z1+1e-3, jointRadius,
			jointColor[0], jointColor[1], jointColor[2], jointColor[3])
	}

	return fb.ToNRGBA()
}
