package anim

// Animation is an ordered sequence of keyframes making up one clip.
// Whoever holds the reference owns the frames; a controller reading from an
// animation expects the stored keyframes not to change under it.
type Animation struct {
	frames []*Keyframe
}

// FrameCount returns the number of keyframes.
func (a *Animation) FrameCount() int {
	return len(a.frames)
}

// Frame returns the keyframe at index i, or nil when out of range.
func (a *Animation) Frame(i int) *Keyframe {
	if i < 0 || i >= len(a.frames) {
		return nil
	}
	return a.frames[i]
}

// AppendFrame adds a keyframe at the back.
func (a *Animation) AppendFrame(k *Keyframe) {
	a.frames = append(a.frames, k)
}

// PrependFrame adds a keyframe at the front.
func (a *Animation) PrependFrame(k *Keyframe) {
	a.frames = append([]*Keyframe{k}, a.frames...)
}

// TrimFront drops the first n frames.
func (a *Animation) TrimFront(n int) {
	if n <= 0 {
		return
	}
	if n > len(a.frames) {
		n = len(a.frames)
	}
	a.frames = a.frames[n:]
}

// TrimBack drops the last n frames.
func (a *Animation) TrimBack(n int) {
	if n <= 0 {
		return
	}
	if n > len(a.frames) {
		n = len(a.frames)
	}
	a.frames = a.frames[:len(a.frames)-n]
}

// MakeLoop removes the discontinuity at the loop point by blending the
// final n frames toward the corresponding frames at the start of the clip.
// The blend weight ramps up across the window, so the last frame ends up
// equal to frame n-1 and wrapping back to frame 0 lands one step away.
func (a *Animation) MakeLoop(n int) {
	if n <= 0 || n > len(a.frames) {
		return
	}
	base := len(a.frames) - n
	for i := 0; i < n; i++ {
		alpha := float64(i+1) / float64(n)
		a.frames[base+i].Blend(a.frames[i], alpha)
	}
}
