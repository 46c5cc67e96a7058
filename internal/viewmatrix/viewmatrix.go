package viewmatrix

import (
	"math"

	"mocap-renderer/internal/mathutil"
)

// Camera is an orbit camera described by angles in degrees. The matrix it
// produces maps world space to screen space (X right, Y up, Z toward the
// viewer).
type Camera struct {
	Yaw   float64
	Pitch float64
	Roll  float64
}

// DefaultCamera gives the three-quarter view used for clip renders.
func DefaultCamera() Camera {
	return Camera{Yaw: 30, Pitch: -15}
}

// Matrix builds the view rotation: Rz(roll) @ Rx(pitch) @ Ry(yaw).
func (c Camera) Matrix() mathutil.Mat3 {
	return mathutil.Mat3Mul(
		mathutil.Mat3Mul(
			mathutil.RotZ(mathutil.Deg2Rad(c.Roll)),
			mathutil.RotX(mathutil.Deg2Rad(c.Pitch))),
		mathutil.RotY(mathutil.Deg2Rad(c.Yaw)))
}

// Framing fixes the world-to-screen mapping for a whole clip, so the
// camera does not drift between frames: a world-space center and a uniform
// scale chosen from the bounds of every pose in the clip.
type Framing struct {
	Center mathutil.Vec3
	Scale  float64
}

// ComputeFraming fits the given view-space point cloud into a renderSize
// square, leaving margin pixels on each side.
func ComputeFraming(points []mathutil.Vec3, view mathutil.Mat3, renderSize, margin int) Framing {
	min := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		v := view.MulVec3(p)
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	if len(points) == 0 {
		return Framing{Scale: 1}
	}

	center := min.Add(max).Scale(0.5)
	span := max[0] - min[0]
	if s := max[1] - min[1]; s > span {
		span = s
	}
	if span < 1e-3 {
		span = 1e-3
	}

	return Framing{
		Center: center,
		Scale:  float64(renderSize-2*margin) / span,
	}
}

// Project maps a world point to screen coordinates plus a depth value
// (larger z is closer to the viewer).
func Project(p mathutil.Vec3, view mathutil.Mat3, f Framing, renderSize int) (x, y, z float64) {
	v := view.MulVec3(p).Sub(f.Center)
	half := float64(renderSize) / 2
	return half + v[0]*f.Scale, half - v[1]*f.Scale, v[2] * f.Scale
}
