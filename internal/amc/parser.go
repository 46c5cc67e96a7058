// Package amc parses AMC motion-capture text into keyframe animations,
// using a parsed skeleton to map each bone's channel data into the
// skeleton-wide rotation space.
package amc

import (
	"fmt"
	"strconv"
	"strings"

	"mocap-renderer/internal/anim"
	"mocap-renderer/internal/asf"
	"mocap-renderer/internal/mathutil"
)

// Parse appends the keyframes found in AMC motion text to dst.
//
// Header lines (comments and :section markers) are skipped. A line holding
// a single integer opens a new frame block; every following line names a
// bone and carries one number per active degree of freedom, in degrees.
// Bones the skeleton does not know are skipped so motion files carrying
// extra markers still load; malformed numbers fail the whole file.
func Parse(text string, skel *asf.Skeleton, dst *anim.Animation) error {
	var kf *anim.Keyframe

	for i, raw := range strings.Split(text, "\n") {
		s := strings.TrimSpace(raw)
		if s == "" || strings.HasPrefix(s, "#") || strings.HasPrefix(s, ":") {
			continue
		}
		num := i + 1
		fields := strings.Fields(s)

		if n, err := strconv.Atoi(fields[0]); err == nil && len(fields) == 1 {
			if kf != nil {
				dst.AppendFrame(kf)
			}
			kf = anim.NewKeyframe(n, skel.BoneCount())
			continue
		}
		if kf == nil {
			return fmt.Errorf("amc: line %d: bone data before first frame number", num)
		}

		if fields[0] == "root" {
			if err := parseRootLine(fields, kf); err != nil {
				return fmt.Errorf("amc: line %d: %w", num, err)
			}
			continue
		}

		idx, ok := skel.BoneIndex(fields[0])
		if !ok {
			// extra marker, not part of this skeleton
			continue
		}
		if err := parseBoneLine(fields, skel, idx, kf); err != nil {
			return fmt.Errorf("amc: line %d: %w", num, err)
		}
	}

	if kf != nil {
		dst.AppendFrame(kf)
	}
	return nil
}

// parseRootLine reads the six root channels: position in native units,
// orientation in degrees. The root takes its channels verbatim; no
// bone-space conversion applies.
func parseRootLine(fields []string, kf *anim.Keyframe) error {
	if len(fields) != 7 {
		return fmt.Errorf("root needs 6 channels, got %d", len(fields)-1)
	}
	var v [6]float64
	for i := 0; i < 6; i++ {
		f, err := strconv.ParseFloat(fields[1+i], 64)
		if err != nil {
			return err
		}
		v[i] = f
	}
	kf.RootPosition = mathutil.Vec3{v[0], v[1], v[2]}.Scale(asf.ScaleToMeters)
	kf.RootRotation = mathutil.QuatFromEulerZYX(
		mathutil.Deg2Rad(v[3]), mathutil.Deg2Rad(v[4]), mathutil.Deg2Rad(v[5]))
	return nil
}

// parseBoneLine reads one number per active dof in X,Y,Z slot order,
// composes them Z∘Y∘X into the bone's local axis rotation, and sandwiches
// that between the bone's conversion quats to land in rotation space.
func parseBoneLine(fields []string, skel *asf.Skeleton, idx int, kf *anim.Keyframe) error {
	b := &skel.Bones[idx]

	var angles [3]float64
	next := 1
	for axis := 0; axis < 3; axis++ {
		if !b.DOF[axis] {
			continue
		}
		if next >= len(fields) {
			return fmt.Errorf("bone %s: expected %d channel values", b.Name, dofCount(b))
		}
		f, err := strconv.ParseFloat(fields[next], 64)
		if err != nil {
			return err
		}
		angles[axis] = mathutil.Deg2Rad(f)
		next++
	}

	local := mathutil.QuatFromEulerZYX(angles[0], angles[1], angles[2])
	kf.SetJoint(idx, b.BoneToRotation.Mul(local).Mul(b.RotationToBone))
	return nil
}

func dofCount(b *asf.Bone) int {
	n := 0
	for _, on := range b.DOF {
		if on {
			n++
		}
	}
	return n
}
