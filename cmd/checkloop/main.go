package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"

	"mocap-renderer/internal/amc"
	"mocap-renderer/internal/anim"
	"mocap-renderer/internal/asf"
)

// checkloop reports the per-bone orientation gap between the last and
// first frame of a motion, before and after loop-seam smoothing, so a clip
// author can pick a blend window before adding Loop="N" to the clip list.
func main() {
	asfFile := flag.String("asf", "", "Skeleton file")
	amcFile := flag.String("amc", "", "Motion file")
	blend := flag.Int("blend", 60, "Loop blend window in frames")
	top := flag.Int("top", 10, "How many of the worst bones to list")
	flag.Parse()

	if *asfFile == "" || *amcFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: checkloop -asf skeleton.asf -amc motion.amc [-blend N]")
		os.Exit(1)
	}

	skelText, err := os.ReadFile(*asfFile)
	if err != nil {
		fatal(err)
	}
	skel, err := asf.Parse(string(skelText))
	if err != nil {
		fatal(err)
	}

	motionText, err := os.ReadFile(*amcFile)
	if err != nil {
		fatal(err)
	}
	motion := &anim.Animation{}
	if err := amc.Parse(string(motionText), skel, motion); err != nil {
		fatal(err)
	}
	if motion.FrameCount() < 2 {
		fatal(fmt.Errorf("motion has %d frames, nothing to check", motion.FrameCount()))
	}

	fmt.Printf("%s: %d frames, blend window %d\n", *amcFile, motion.FrameCount(), *blend)

	before := seamGaps(skel, motion)
	motion.MakeLoop(*blend)
	after := seamGaps(skel, motion)

	type gap struct {
		name          string
		before, after float64
	}
	gaps := make([]gap, 0, len(before))
	for i := range before {
		gaps = append(gaps, gap{skel.Bones[i].Name, before[i], after[i]})
	}
	sort.Slice(gaps, func(i, j int) bool { return gaps[i].before > gaps[j].before })

	if *top > len(gaps) {
		*top = len(gaps)
	}
	fmt.Println("worst seam gaps (degrees, last frame vs frame 0):")
	for _, g := range gaps[:*top] {
		fmt.Printf("  %-14s before=%7.2f  after=%7.2f\n",
			g.name, g.before*180/math.Pi, g.after*180/math.Pi)
	}
}

// seamGaps returns the angular distance per bone between the final and
// first keyframes.
func seamGaps(skel *asf.Skeleton, motion *anim.Animation) []float64 {
	first := motion.Frame(0)
	last := motion.Frame(motion.FrameCount() - 1)
	gaps := make([]float64, skel.BoneCount())
	for i := range gaps {
		gaps[i] = last.Joint(i).AngleTo(first.Joint(i))
	}
	return gaps
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
