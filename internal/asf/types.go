package asf

import "mocap-renderer/internal/mathutil"

// ScaleToMeters converts the ASF/AMC native distance unit to meters.
// Acclaim data is stored in (1/0.45)-inch units: (1/0.45) * 0.0254.
const ScaleToMeters = 0.056444

// Bone is one rigid segment in the skeleton arena. The index of a bone in
// Skeleton.Bones is its handle; keyframes and parent/child links refer to
// bones by handle, never by name.
type Bone struct {
	Name      string
	Direction mathutil.Vec3 // unit vector in the parent-relative rest frame
	Length    float64       // meters

	// DOF marks which rotation channels (x, y, z) this bone's motion data
	// encodes. Channels not marked here are always zero.
	DOF [3]bool

	// RestPosition is Direction scaled by Length, fixed once the bone's
	// definition block closes.
	RestPosition mathutil.Vec3

	// BoneToRotation maps the bone's local axis frame into the skeleton-wide
	// rotation space; RotationToBone is its inverse. Both come from the
	// bone's axis declaration.
	BoneToRotation mathutil.Quat
	RotationToBone mathutil.Quat

	Parent   int // parent handle, -1 when attached directly under the root
	Children []int

	// Current pose, written by the animation controller every update.
	LocalPosition mathutil.Vec3
	LocalRotation mathutil.Quat
}

// Skeleton holds the bone arena plus the skeleton's own rest placement.
// Read-only after parsing except for the pose fields, which one animation
// controller at a time may write.
type Skeleton struct {
	Bones []Bone
	Roots []int // handles of bones attached directly under the root

	RootPosition mathutil.Vec3 // rest placement, meters
	RootRotation mathutil.Quat

	// Current root pose, written by the animation controller.
	CurrentPosition mathutil.Vec3
	CurrentRotation mathutil.Quat

	names map[string]int
}

// NewSkeleton builds a skeleton around an existing bone arena. Parent
// handles must already be set; Roots and the name index are derived.
func NewSkeleton(bones []Bone) *Skeleton {
	s := &Skeleton{
		Bones:           bones,
		RootRotation:    mathutil.QuatIdentity(),
		CurrentRotation: mathutil.QuatIdentity(),
		names:           make(map[string]int, len(bones)),
	}
	for i := range s.Bones {
		b := &s.Bones[i]
		if b.LocalRotation == (mathutil.Quat{}) {
			b.LocalRotation = mathutil.QuatIdentity()
		}
		if b.LocalPosition == (mathutil.Vec3{}) {
			b.LocalPosition = b.RestPosition
		}
		if b.BoneToRotation == (mathutil.Quat{}) {
			b.BoneToRotation = mathutil.QuatIdentity()
			b.RotationToBone = mathutil.QuatIdentity()
		}
		s.names[b.Name] = i
		if b.Parent < 0 {
			s.Roots = append(s.Roots, i)
		} else {
			p := &s.Bones[b.Parent]
			p.Children = append(p.Children, i)
		}
	}
	return s
}

// BoneIndex resolves a bone name to its handle.
func (s *Skeleton) BoneIndex(name string) (int, bool) {
	i, ok := s.names[name]
	return i, ok
}

// BoneCount returns the number of bones in the arena.
func (s *Skeleton) BoneCount() int {
	return len(s.Bones)
}
