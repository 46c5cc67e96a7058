package mathutil

import "math"

// Quat represents a unit quaternion (x, y, z, w).
type Quat [4]float64

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatRotX returns a rotation of a radians about the X axis.
func QuatRotX(a float64) Quat {
	return Quat{math.Sin(a * 0.5), 0, 0, math.Cos(a * 0.5)}
}

// QuatRotY returns a rotation of a radians about the Y axis.
func QuatRotY(a float64) Quat {
	return Quat{0, math.Sin(a * 0.5), 0, math.Cos(a * 0.5)}
}

// QuatRotZ returns a rotation of a radians about the Z axis.
func QuatRotZ(a float64) Quat {
	return Quat{0, 0, math.Sin(a * 0.5), math.Cos(a * 0.5)}
}

// QuatFromEulerZYX composes three axis rotations as Rz ∘ Ry ∘ Rx
// (X applied first). This is the composition order used by ASF axis
// declarations and AMC channel data.
func QuatFromEulerZYX(rx, ry, rz float64) Quat {
	return QuatRotZ(rz).Mul(QuatRotY(ry)).Mul(QuatRotX(rx))
}

// Mul returns the Hamilton product a ∘ b: the rotation that applies b
// first, then a.
func (a Quat) Mul(b Quat) Quat {
	ax, ay, az, aw := a[0], a[1], a[2], a[3]
	bx, by, bz, bw := b[0], b[1], b[2], b[3]
	return Quat{
		aw*bx + ax*bw + ay*bz - az*by,
		aw*by - ax*bz + ay*bw + az*bx,
		aw*bz + ax*by - ay*bx + az*bw,
		aw*bw - ax*bx - ay*by - az*bz,
	}
}

// Inverse returns the inverse rotation. Assumes a unit quaternion, so this
// is the conjugate.
func (q Quat) Inverse() Quat {
	return Quat{-q[0], -q[1], -q[2], q[3]}
}

// Dot returns the 4D dot product.
func (a Quat) Dot(b Quat) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// Normalize rescales to unit length. The zero quaternion normalizes to
// identity.
func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.Dot(q))
	if l < 1e-12 {
		return QuatIdentity()
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// Slerp spherically interpolates from a toward b by t in [0,1].
// Takes the shorter arc; falls back to normalized lerp when the inputs are
// nearly parallel.
func (a Quat) Slerp(b Quat, t float64) Quat {
	d := a.Dot(b)
	if d < 0 {
		b = Quat{-b[0], -b[1], -b[2], -b[3]}
		d = -d
	}
	if d > 0.9995 {
		return Quat{
			a[0] + (b[0]-a[0])*t,
			a[1] + (b[1]-a[1])*t,
			a[2] + (b[2]-a[2])*t,
			a[3] + (b[3]-a[3])*t,
		}.Normalize()
	}
	theta := math.Acos(d)
	sin := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sin
	wb := math.Sin(t*theta) / sin
	return Quat{
		a[0]*wa + b[0]*wb,
		a[1]*wa + b[1]*wb,
		a[2]*wa + b[2]*wb,
		a[3]*wa + b[3]*wb,
	}
}

// RotateVec3 rotates v by q.
func (q Quat) RotateVec3(v Vec3) Vec3 {
	u := Vec3{q[0], q[1], q[2]}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q[3])).Add(u.Cross(t))
}

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}

// AngleTo returns the absolute rotation angle in radians between two unit
// quaternions.
func (a Quat) AngleTo(b Quat) float64 {
	d := math.Abs(a.Dot(b))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d)
}
