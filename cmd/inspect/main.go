package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"mocap-renderer/internal/amc"
	"mocap-renderer/internal/anim"
	"mocap-renderer/internal/asf"
	"mocap-renderer/internal/mathutil"
)

func main() {
	motionFile := flag.String("motion", "", "Optional AMC file to load against each skeleton")
	fps := flag.Float64("fps", 120, "Frame rate for duration reporting")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: inspect [-motion file.amc] skeleton.asf [more.asf ...]")
		os.Exit(1)
	}

	for _, arg := range flag.Args() {
		text, err := os.ReadFile(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Read error %s: %v\n", arg, err)
			continue
		}
		skel, err := asf.Parse(string(text))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			continue
		}

		fmt.Printf("\n=== %s (bones=%d) ===\n", arg, skel.BoneCount())
		fmt.Printf("root position: [%.4f %.4f %.4f] m\n",
			skel.RootPosition[0], skel.RootPosition[1], skel.RootPosition[2])

		fmt.Println("--- BONES ---")
		for i := range skel.Bones {
			b := &skel.Bones[i]
			parent := "root"
			if b.Parent >= 0 {
				parent = skel.Bones[b.Parent].Name
			}
			// Residual of the conversion round trip; should be ~0 for every
			// bone with an axis declaration.
			residual := b.BoneToRotation.Mul(b.RotationToBone).AngleTo(mathutil.QuatIdentity())
			fmt.Printf("  [%2d] %-14s len=%.4fm dof=%s parent=%-12s axis-residual=%.2e\n",
				i, b.Name, b.Length, dofString(b), parent, residual)
		}

		fmt.Println("--- HIERARCHY ---")
		for _, r := range skel.Roots {
			printTree(skel, r, 1)
		}

		if *motionFile != "" {
			mtext, err := os.ReadFile(*motionFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Read error %s: %v\n", *motionFile, err)
				continue
			}
			motion := &anim.Animation{}
			if err := amc.Parse(string(mtext), skel, motion); err != nil {
				fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", *motionFile, err)
				continue
			}
			n := motion.FrameCount()
			fmt.Printf("--- MOTION %s ---\n", *motionFile)
			fmt.Printf("  frames=%d duration=%.2fs at %g fps\n", n, float64(n)/(*fps), *fps)
			if n > 0 {
				first := motion.Frame(0)
				last := motion.Frame(n - 1)
				drift := last.RootPosition.Sub(first.RootPosition)
				fmt.Printf("  root drift over clip: [%.3f %.3f %.3f] m\n", drift[0], drift[1], drift[2])
			}
		}
	}
}

func printTree(skel *asf.Skeleton, bone, depth int) {
	b := &skel.Bones[bone]
	fmt.Printf("%s%s\n", strings.Repeat("  ", depth), b.Name)
	for _, c := range b.Children {
		printTree(skel, c, depth+1)
	}
}

func dofString(b *asf.Bone) string {
	s := ""
	for i, name := range []string{"rx", "ry", "rz"} {
		if b.DOF[i] {
			if s != "" {
				s += ","
			}
			s += name
		}
	}
	if s == "" {
		return "-"
	}
	return s
}
