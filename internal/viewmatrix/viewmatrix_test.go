package viewmatrix

import (
	"math"
	"testing"

	"mocap-renderer/internal/mathutil"
)

func TestIdentityCameraMatrix(t *testing.T) {
	m := Camera{}.Matrix()
	id := mathutil.Mat3Identity()
	for i := 0; i < 9; i++ {
		if math.Abs(m[i]-id[i]) > 1e-12 {
			t.Fatalf("element %d: got %v", i, m[i])
		}
	}
}

func TestYawOrbitsAroundY(t *testing.T) {
	m := Camera{Yaw: 90}.Matrix()
	got := m.MulVec3(mathutil.Vec3{1, 0, 0})
	want := mathutil.Vec3{0, 0, -1}
	if got.Sub(want).Len() > 1e-12 {
		t.Fatalf("yaw 90: got %v, want %v", got, want)
	}
}

func TestFramingCentersAndScales(t *testing.T) {
	points := []mathutil.Vec3{{0, 0, 0}, {2, 2, 0}}
	view := mathutil.Mat3Identity()
	f := ComputeFraming(points, view, 100, 10)

	if f.Center.Sub(mathutil.Vec3{1, 1, 0}).Len() > 1e-12 {
		t.Fatalf("center: got %v", f.Center)
	}
	// span 2 into 80 usable pixels
	if math.Abs(f.Scale-40) > 1e-12 {
		t.Fatalf("scale: got %v, want 40", f.Scale)
	}

	x, y, _ := Project(mathutil.Vec3{0, 0, 0}, view, f, 100)
	if math.Abs(x-10) > 1e-9 || math.Abs(y-90) > 1e-9 {
		t.Fatalf("min corner: got (%v, %v), want (10, 90)", x, y)
	}
	// world +Y maps upward on screen (smaller pixel y)
	x, y, _ = Project(mathutil.Vec3{2, 2, 0}, view, f, 100)
	if math.Abs(x-90) > 1e-9 || math.Abs(y-10) > 1e-9 {
		t.Fatalf("max corner: got (%v, %v), want (90, 10)", x, y)
	}
}

func TestFramingDegenerateInputs(t *testing.T) {
	f := ComputeFraming(nil, mathutil.Mat3Identity(), 100, 10)
	if f.Scale != 1 {
		t.Fatalf("empty cloud scale: got %v, want 1", f.Scale)
	}

	// single point: span is clamped, the point lands at image center
	p := mathutil.Vec3{3, -2, 1}
	f = ComputeFraming([]mathutil.Vec3{p}, mathutil.Mat3Identity(), 100, 10)
	if f.Scale <= 0 || math.IsInf(f.Scale, 0) {
		t.Fatalf("degenerate scale: got %v", f.Scale)
	}
	x, y, _ := Project(p, mathutil.Mat3Identity(), f, 100)
	if math.Abs(x-50) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Fatalf("single point should center: got (%v, %v)", x, y)
	}
}

func TestProjectDepthGrowsTowardViewer(t *testing.T) {
	view := mathutil.Mat3Identity()
	f := Framing{Scale: 1}
	_, _, zNear := Project(mathutil.Vec3{0, 0, 2}, view, f, 100)
	_, _, zFar := Project(mathutil.Vec3{0, 0, -2}, view, f, 100)
	if zNear <= zFar {
		t.Fatalf("depth ordering: near %v, far %v", zNear, zFar)
	}
}
