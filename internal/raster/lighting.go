package raster

import (
	"math"

	"mocap-renderer/internal/mathutil"
)

// LightConfig holds the shading parameters for stick-figure rendering.
// Segments have no surface normal, so shading combines a directional term
// on the segment axis with an ambient floor and a depth cue.
type LightConfig struct {
	LightDir mathutil.Vec3
	Ambient  float64
	Direct   float64
	DepthCue float64 // how much relative depth brightens/darkens a segment
}

// DefaultLightConfig returns the standard clip-render lighting.
func DefaultLightConfig() LightConfig {
	return LightConfig{
		LightDir: mathutil.Vec3{180, 260, 140}.Normalize(),
		Ambient:  0.55,
		Direct:   0.45,
		DepthCue: 0.25,
	}
}

// ShadeSegment returns the brightness for a bone segment. dir is the
// segment's world direction; depth is the segment's midpoint depth
// normalized to [-1,1] across the figure.
func (lc *LightConfig) ShadeSegment(dir mathutil.Vec3, depth float64) float64 {
	// A segment lit broadside is brighter than one pointing at the light.
	ndl := 1 - math.Abs(dir.Normalize().Dot(lc.LightDir))
	shade := lc.Ambient + ndl*lc.Direct + depth*lc.DepthCue
	if shade < 0.1 {
		shade = 0.1
	}
	if shade > 1 {
		shade = 1
	}
	return shade
}
