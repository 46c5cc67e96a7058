package anim

import "mocap-renderer/internal/mathutil"

// Keyframe is one instant of a pose: a root placement plus one orientation
// per bone handle. Handles index the owning skeleton's bone arena; a handle
// with no stored orientation reads back as identity.
type Keyframe struct {
	Frame        int // frame number from the motion file, informational
	RootPosition mathutil.Vec3
	RootRotation mathutil.Quat

	joints []mathutil.Quat
}

// NewKeyframe returns an identity pose with room for boneCount joints.
func NewKeyframe(frame, boneCount int) *Keyframe {
	joints := make([]mathutil.Quat, boneCount)
	for i := range joints {
		joints[i] = mathutil.QuatIdentity()
	}
	return &Keyframe{
		Frame:        frame,
		RootRotation: mathutil.QuatIdentity(),
		joints:       joints,
	}
}

// SetJoint stores the orientation for a bone handle, growing the joint
// table if the handle is beyond it.
func (k *Keyframe) SetJoint(bone int, q mathutil.Quat) {
	if bone < 0 {
		return
	}
	for len(k.joints) <= bone {
		k.joints = append(k.joints, mathutil.QuatIdentity())
	}
	k.joints[bone] = q
}

// Joint returns the orientation for a bone handle, identity when the
// handle has no stored orientation.
func (k *Keyframe) Joint(bone int) mathutil.Quat {
	if bone < 0 || bone >= len(k.joints) {
		return mathutil.QuatIdentity()
	}
	return k.joints[bone]
}

// JointCount returns the size of the joint table.
func (k *Keyframe) JointCount() int {
	return len(k.joints)
}

// Clone returns a deep copy.
func (k *Keyframe) Clone() *Keyframe {
	c := *k
	c.joints = make([]mathutil.Quat, len(k.joints))
	copy(c.joints, k.joints)
	return &c
}

// Blend moves this pose toward other by alpha in [0,1], in place: the root
// position lerps, the root and joint orientations slerp. alpha of 1 leaves
// an exact copy of other's pose.
func (k *Keyframe) Blend(other *Keyframe, alpha float64) {
	k.RootPosition = k.RootPosition.Lerp(other.RootPosition, alpha)
	k.RootRotation = k.RootRotation.Slerp(other.RootRotation, alpha)
	n := len(k.joints)
	if len(other.joints) > n {
		// grow so orientations present only on the other side still blend
		for len(k.joints) < len(other.joints) {
			k.joints = append(k.joints, mathutil.QuatIdentity())
		}
		n = len(k.joints)
	}
	for i := 0; i < n; i++ {
		k.joints[i] = k.joints[i].Slerp(other.Joint(i), alpha)
	}
}
