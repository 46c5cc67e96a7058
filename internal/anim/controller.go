package anim

import (
	"mocap-renderer/internal/asf"
	"mocap-renderer/internal/mathutil"
)

// Node is the capability a scene-graph attachment point exposes. The
// controller pushes resolved bone poses through it once per update; it is
// the only coupling to whatever draws the skeleton.
type Node interface {
	SetLocalPosition(mathutil.Vec3)
	SetLocalRotation(mathutil.Quat)
}

type overlayEntry struct {
	motion           *Animation
	transitionFrames int
}

// Controller drives playback of one primary animation, optionally layered
// with a queue of transient overlay animations, onto one skeleton. It is
// stateful and single-threaded: one controller per skeleton, Update called
// once per render frame.
type Controller struct {
	skeleton     *asf.Skeleton
	fps          float64
	absoluteRoot bool

	motion      *Animation
	elapsed     float64
	frame       int
	lastRootPos mathutil.Vec3 // primary track root position cache

	overlays           []overlayEntry
	overlayElapsed     float64
	overlayFrame       int
	overlayLastRootPos mathutil.Vec3 // head overlay root position cache

	pose *Keyframe // last resolved pose

	rootNode  Node
	boneNodes []Node
}

// NewController creates a stopped controller for one skeleton.
// absoluteRootMotion selects the root translation policy for the lifetime
// of the controller: true applies each keyframe's root pose as an absolute
// offset from the skeleton's rest placement, false accumulates per-frame
// root position deltas onto the skeleton's current position so clip motion
// composes with externally driven movement.
func NewController(skel *asf.Skeleton, fps float64, absoluteRootMotion bool) *Controller {
	return &Controller{
		skeleton:     skel,
		fps:          fps,
		absoluteRoot: absoluteRootMotion,
		boneNodes:    make([]Node, skel.BoneCount()),
	}
}

// BindRoot attaches a scene-graph node mirroring the skeleton root pose.
func (c *Controller) BindRoot(n Node) {
	c.rootNode = n
}

// BindBone attaches a scene-graph node mirroring one bone's pose.
func (c *Controller) BindBone(bone int, n Node) {
	if bone >= 0 && bone < len(c.boneNodes) {
		c.boneNodes[bone] = n
	}
}

// Playing reports whether a primary track is set.
func (c *Controller) Playing() bool {
	return c.motion != nil
}

// CurrentFrame returns the primary track frame index.
func (c *Controller) CurrentFrame() int {
	return c.frame
}

// OverlayFrame returns the head overlay's frame index.
func (c *Controller) OverlayFrame() int {
	return c.overlayFrame
}

// OverlayCount returns the number of queued overlay animations.
func (c *Controller) OverlayCount() int {
	return len(c.overlays)
}

// Pose returns the pose resolved by the most recent Play or Update, or nil
// while stopped. Callers must treat it as read-only.
func (c *Controller) Pose() *Keyframe {
	return c.pose
}

// Play makes a the primary track, clears the overlay queue, rewinds to
// time zero and snaps the skeleton to a's first keyframe. Playing an empty
// or nil animation stops the controller instead.
func (c *Controller) Play(a *Animation) {
	if a == nil || a.FrameCount() == 0 {
		c.Stop()
		return
	}
	c.motion = a
	c.elapsed = 0
	c.frame = 0
	c.overlays = nil
	c.overlayElapsed = 0
	c.overlayFrame = 0

	first := a.Frame(0)
	c.lastRootPos = first.RootPosition
	c.apply(first)
}

// Stop clears the primary track and all overlay state. Update becomes a
// no-op until the next Play.
func (c *Controller) Stop() {
	c.motion = nil
	c.elapsed = 0
	c.frame = 0
	c.overlays = nil
	c.overlayElapsed = 0
	c.overlayFrame = 0
	c.pose = nil
}

// Overlay queues a transient animation on top of the primary track.
// transitionFrames is the width of the crossfade window at both ends of
// the overlay. Valid in either state; nothing is visible until a primary
// track is playing.
func (c *Controller) Overlay(a *Animation, transitionFrames int) {
	if a == nil || a.FrameCount() == 0 {
		return
	}
	if len(c.overlays) == 0 {
		c.overlayLastRootPos = a.Frame(0).RootPosition
	}
	c.overlays = append(c.overlays, overlayEntry{motion: a, transitionFrames: transitionFrames})
}

// Update advances playback by dt seconds, resolves the blended pose and
// applies it to the skeleton. No-op while stopped.
func (c *Controller) Update(dt float64) {
	if c.motion == nil {
		return
	}

	c.elapsed += dt
	c.frame = int(c.elapsed * c.fps)
	if c.frame >= c.motion.FrameCount() {
		// Wrap without any crossfade; seam smoothing is the clip's job
		// (Animation.MakeLoop) before playback.
		c.elapsed = 0
		c.frame = 0
		c.lastRootPos = c.motion.Frame(0).RootPosition
	}

	if len(c.overlays) > 0 {
		c.overlayElapsed += dt
		c.overlayFrame = int(c.overlayElapsed * c.fps)
		if c.overlayFrame >= c.overlays[0].motion.FrameCount() {
			c.overlays = c.overlays[1:]
			c.overlayElapsed = 0
			c.overlayFrame = 0
			if len(c.overlays) > 0 {
				c.overlayLastRootPos = c.overlays[0].motion.Frame(0).RootPosition
			}
		}
	}

	c.apply(c.resolvePose())
}

// resolvePose selects or blends the keyframe for the current instant.
func (c *Controller) resolvePose() *Keyframe {
	primary := c.motion.Frame(c.frame)
	if len(c.overlays) == 0 {
		return primary
	}

	ov := c.overlays[0]
	alpha := overlayAlpha(c.overlayFrame, ov.motion.FrameCount(), ov.transitionFrames)
	pose := ov.motion.Frame(c.overlayFrame).Clone()
	pose.Blend(primary, alpha)
	return pose
}

// overlayAlpha is the weight pulling the overlay pose back toward the
// primary track: 1 fully primary, 0 fully overlay. It ramps 1→0 across the
// first t frames and 0→1 across the last t frames of an overlay that is l
// frames long. The fade-out is evaluated second, so when the two windows
// overlap its value wins.
func overlayAlpha(f, l, t int) float64 {
	if t <= 0 {
		return 0
	}
	alpha := 0.0
	if f < t {
		alpha = 1 - float64(f)/float64(t)
	}
	if f > l-1-t {
		alpha = 1 - float64(l-1-f)/float64(t)
	}
	return alpha
}

// apply writes the resolved pose into the skeleton and any bound nodes.
func (c *Controller) apply(pose *Keyframe) {
	c.pose = pose
	skel := c.skeleton

	if c.absoluteRoot {
		skel.CurrentPosition = skel.RootPosition.Add(pose.RootPosition)
	} else {
		// Incremental policy: advance by the raw track delta, tracked per
		// source track so overlay root motion does not fight the primary's.
		var delta mathutil.Vec3
		primaryPos := c.motion.Frame(c.frame).RootPosition
		if len(c.overlays) > 0 {
			cur := c.overlays[0].motion.Frame(c.overlayFrame).RootPosition
			delta = cur.Sub(c.overlayLastRootPos)
			c.overlayLastRootPos = cur
			c.lastRootPos = primaryPos
		} else {
			delta = primaryPos.Sub(c.lastRootPos)
			c.lastRootPos = primaryPos
		}
		skel.CurrentPosition = skel.CurrentPosition.Add(delta)
	}
	skel.CurrentRotation = skel.RootRotation.Mul(pose.RootRotation)

	if c.rootNode != nil {
		c.rootNode.SetLocalPosition(skel.CurrentPosition)
		c.rootNode.SetLocalRotation(skel.CurrentRotation)
	}

	for i := range skel.Bones {
		b := &skel.Bones[i]
		q := pose.Joint(i)
		b.LocalRotation = q
		b.LocalPosition = q.RotateVec3(b.RestPosition)
		if n := c.boneNodes[i]; n != nil {
			n.SetLocalPosition(b.LocalPosition)
			n.SetLocalRotation(b.LocalRotation)
		}
	}
}
