package mathutil

import (
	"math"
	"testing"
)

const eps = 1e-9

func quatNear(t *testing.T, got, want Quat, label string) {
	t.Helper()
	if got.AngleTo(want) > 1e-7 {
		t.Fatalf("%s: got %v, want %v", label, got, want)
	}
}

func vecNear(t *testing.T, got, want Vec3, label string) {
	t.Helper()
	if got.Sub(want).Len() > 1e-9 {
		t.Fatalf("%s: got %v, want %v", label, got, want)
	}
}

func TestQuatFromEulerZYXMatchesMatrixComposition(t *testing.T) {
	rx, ry, rz := 0.3, -0.7, 1.1
	q := QuatFromEulerZYX(rx, ry, rz)

	want := Mat3Mul(Mat3Mul(RotZ(rz), RotY(ry)), RotX(rx))
	got := QuatToMat3(q)
	for i := 0; i < 9; i++ {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("matrix element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRotateVec3MatchesMatrix(t *testing.T) {
	q := QuatFromEulerZYX(0.4, 0.9, -1.3)
	v := Vec3{1, -2, 3}
	vecNear(t, q.RotateVec3(v), QuatToMat3(q).MulVec3(v), "rotate")
}

func TestRotateVec3Axis(t *testing.T) {
	// 90° about X sends +Y to +Z
	vecNear(t, QuatRotX(math.Pi/2).RotateVec3(Vec3{0, 1, 0}), Vec3{0, 0, 1}, "rotX")
}

func TestSlerpEndpointsAndMidpoint(t *testing.T) {
	a := QuatIdentity()
	b := QuatRotX(math.Pi / 2)

	quatNear(t, a.Slerp(b, 0), a, "t=0")
	quatNear(t, a.Slerp(b, 1), b, "t=1")
	quatNear(t, a.Slerp(b, 0.5), QuatRotX(math.Pi/4), "t=0.5")
}

func TestSlerpTakesShorterArc(t *testing.T) {
	a := QuatRotY(0.2)
	b := QuatRotY(0.4)
	neg := Quat{-b[0], -b[1], -b[2], -b[3]} // same rotation, opposite sign
	quatNear(t, a.Slerp(neg, 0.5), QuatRotY(0.3), "negated target")
}

func TestInverseRoundTrip(t *testing.T) {
	q := QuatFromEulerZYX(0.5, 0.25, -0.75)
	quatNear(t, q.Mul(q.Inverse()), QuatIdentity(), "q * q^-1")
	quatNear(t, q.Inverse().Mul(q), QuatIdentity(), "q^-1 * q")
}

func TestAngleTo(t *testing.T) {
	if d := QuatRotZ(0.5).AngleTo(QuatIdentity()); math.Abs(d-0.5) > eps {
		t.Fatalf("angle: got %v, want 0.5", d)
	}
}

func TestNormalizeZeroIsIdentity(t *testing.T) {
	quatNear(t, Quat{}.Normalize(), QuatIdentity(), "zero quat")
}
