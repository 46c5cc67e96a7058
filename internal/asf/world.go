package asf

import "mocap-renderer/internal/mathutil"

// WorldMatrices computes a world transform per bone from the current pose,
// walking the arena from the attached roots. Unattached bones keep an
// identity transform. The returned slice is indexed by bone handle.
func (s *Skeleton) WorldMatrices() []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(s.Bones))
	for i := range worlds {
		worlds[i] = mathutil.Mat4Identity()
	}

	rootWorld := mathutil.FromMat3Translation(
		mathutil.QuatToMat3(s.CurrentRotation), s.CurrentPosition)

	stack := make([]int, len(s.Roots))
	copy(stack, s.Roots)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		b := &s.Bones[i]
		parentWorld := rootWorld
		if b.Parent >= 0 {
			parentWorld = worlds[b.Parent]
		}
		local := mathutil.FromMat3Translation(
			mathutil.QuatToMat3(b.LocalRotation), b.LocalPosition)
		worlds[i] = mathutil.Mat4Mul(parentWorld, local)

		stack = append(stack, b.Children...)
	}

	return worlds
}

// RootWorld returns the skeleton root's current world transform.
func (s *Skeleton) RootWorld() mathutil.Mat4 {
	return mathutil.FromMat3Translation(
		mathutil.QuatToMat3(s.CurrentRotation), s.CurrentPosition)
}

// JointPositions returns one world-space segment per attached bone: the
// origin of the bone's parent frame and the origin of the bone's own frame.
// This is the geometry the stick-figure renderer draws.
func (s *Skeleton) JointPositions() [][2]mathutil.Vec3 {
	worlds := s.WorldMatrices()
	rootPos := s.CurrentPosition

	segs := make([][2]mathutil.Vec3, 0, len(s.Bones))
	var walk func(i int)
	walk = func(i int) {
		b := &s.Bones[i]
		from := rootPos
		if b.Parent >= 0 {
			from = worlds[b.Parent].Translation()
		}
		segs = append(segs, [2]mathutil.Vec3{from, worlds[i].Translation()})
		for _, c := range b.Children {
			walk(c)
		}
	}
	for _, r := range s.Roots {
		walk(r)
	}
	return segs
}
