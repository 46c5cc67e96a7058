package amc

import (
	"math"
	"strings"
	"testing"

	"mocap-renderer/internal/anim"
	"mocap-renderer/internal/asf"
	"mocap-renderer/internal/mathutil"
)

const testASF = `:version 1.10
:units
  angle deg
:root
  order TX TY TZ RX RY RZ
  position 0 0 0
  orientation 0 0 0
:bonedata
  begin
     id 1
     name lowerback
     direction 0 1 0
     length 2
     axis 0 0 0 XYZ
  end
  begin
     id 2
     name lowerarm
     direction 1 0 0
     length 4
     axis 30 45 60 XYZ
     dof rx
     limits (-160.0 20.0)
  end
  begin
     id 3
     name hand
     direction 0 -1 0
     length 1
     axis 0 0 0 XYZ
     dof rx ry rz
     limits (-90 90)
            (-90 90)
            (-90 90)
  end
:hierarchy
  begin
    root lowerback
    lowerback lowerarm
    lowerarm hand
  end
`

const testAMC = `#!Comment line
:FULLY-SPECIFIED
:DEGREES
1
root 1 2 3 0 0 90
lowerarm 45.0
hand 10 20 30
clavicle 1 2
2
root 0 0 0 0 0 0
lowerarm 0
`

func parseBoth(t *testing.T) (*asf.Skeleton, *anim.Animation) {
	t.Helper()
	skel, err := asf.Parse(testASF)
	if err != nil {
		t.Fatalf("asf parse: %v", err)
	}
	motion := &anim.Animation{}
	if err := Parse(testAMC, skel, motion); err != nil {
		t.Fatalf("amc parse: %v", err)
	}
	return skel, motion
}

func TestFrameBlocks(t *testing.T) {
	_, motion := parseBoth(t)
	if motion.FrameCount() != 2 {
		t.Fatalf("frames: got %d, want 2", motion.FrameCount())
	}
	if motion.Frame(0).Frame != 1 || motion.Frame(1).Frame != 2 {
		t.Fatalf("frame numbers: got %d, %d", motion.Frame(0).Frame, motion.Frame(1).Frame)
	}
}

func TestRootChannels(t *testing.T) {
	_, motion := parseBoth(t)
	kf := motion.Frame(0)

	wantPos := mathutil.Vec3{1, 2, 3}.Scale(asf.ScaleToMeters)
	if kf.RootPosition.Sub(wantPos).Len() > 1e-12 {
		t.Fatalf("root position: got %v, want %v", kf.RootPosition, wantPos)
	}
	if kf.RootRotation.AngleTo(mathutil.QuatRotZ(math.Pi/2)) > 1e-9 {
		t.Fatalf("root rotation: got %v", kf.RootRotation)
	}
}

// A bone with a single rx dof at 45° must come out as the bone's
// conversion sandwich around a pure X rotation.
func TestSingleDofSandwich(t *testing.T) {
	skel, motion := parseBoth(t)
	i, _ := skel.BoneIndex("lowerarm")
	b := &skel.Bones[i]

	want := b.BoneToRotation.Mul(mathutil.QuatRotX(math.Pi / 4)).Mul(b.RotationToBone)
	got := motion.Frame(0).Joint(i)
	if got.AngleTo(want) > 1e-9 {
		t.Fatalf("lowerarm joint: got %v, want %v", got, want)
	}
}

func TestThreeDofSlotOrder(t *testing.T) {
	skel, motion := parseBoth(t)
	i, _ := skel.BoneIndex("hand")

	// hand's axis is identity, so the joint is the bare ZYX composition
	want := mathutil.QuatFromEulerZYX(
		mathutil.Deg2Rad(10), mathutil.Deg2Rad(20), mathutil.Deg2Rad(30))
	got := motion.Frame(0).Joint(i)
	if got.AngleTo(want) > 1e-9 {
		t.Fatalf("hand joint: got %v, want %v", got, want)
	}
}

// A bone with every dof disabled never appears in the motion data, so its
// stored orientation is identity in every frame.
func TestZeroDofBoneIsIdentity(t *testing.T) {
	skel, motion := parseBoth(t)
	i, _ := skel.BoneIndex("lowerback")
	for f := 0; f < motion.FrameCount(); f++ {
		if motion.Frame(f).Joint(i).AngleTo(mathutil.QuatIdentity()) > 1e-12 {
			t.Fatalf("frame %d: lowerback not identity", f)
		}
	}
}

func TestUnknownBoneLineIgnored(t *testing.T) {
	// clavicle is not in the skeleton; the parse must still succeed
	_, motion := parseBoth(t)
	if motion.FrameCount() != 2 {
		t.Fatalf("frames: got %d, want 2", motion.FrameCount())
	}
}

func TestMalformedNumberFailsFile(t *testing.T) {
	skel, err := asf.Parse(testASF)
	if err != nil {
		t.Fatalf("asf parse: %v", err)
	}
	bad := strings.Replace(testAMC, "lowerarm 45.0", "lowerarm forty-five", 1)
	if err := Parse(bad, skel, &anim.Animation{}); err == nil {
		t.Fatal("expected numeric parse error")
	}
}

func TestBoneDataBeforeFrameFails(t *testing.T) {
	skel, err := asf.Parse(testASF)
	if err != nil {
		t.Fatalf("asf parse: %v", err)
	}
	if err := Parse("lowerarm 45.0\n", skel, &anim.Animation{}); err == nil {
		t.Fatal("expected error for bone data before frame header")
	}
}

func TestParseAppendsToExistingAnimation(t *testing.T) {
	skel, err := asf.Parse(testASF)
	if err != nil {
		t.Fatalf("asf parse: %v", err)
	}
	motion := &anim.Animation{}
	if err := Parse(testAMC, skel, motion); err != nil {
		t.Fatalf("first parse: %v", err)
	}
	if err := Parse(testAMC, skel, motion); err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if motion.FrameCount() != 4 {
		t.Fatalf("frames after two parses: got %d, want 4", motion.FrameCount())
	}
}
