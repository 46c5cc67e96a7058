package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"mocap-renderer/internal/amc"
	"mocap-renderer/internal/anim"
	"mocap-renderer/internal/asf"
	"mocap-renderer/internal/cliplist"
	"mocap-renderer/internal/mathutil"
	"mocap-renderer/internal/postprocess"
	"mocap-renderer/internal/raster"
	"mocap-renderer/internal/viewmatrix"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Config holds all shared resources for a batch run.
type Config struct {
	ClipDir     string
	OutputDir   string
	RenderSize  int
	Supersample int
	WebPQuality int
	Format      string // "webp" or "tga"
	Camera      viewmatrix.Camera
	MaxFrames   int
	Workers     int
}

// Result holds the outcome of processing one clip.
type Result struct {
	Name    string
	Frames  int
	Success bool
	Error   string
}

// Run processes all clips using a worker pool.
func Run(cfg Config, clips []cliplist.ClipDef) []Result {
	total := len(clips)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f clips/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	clipChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range clipChan {
				results[idx] = processClip(cfg, clips[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range clips {
		clipChan <- i
	}
	close(clipChan)

	wg.Wait()
	close(done)

	return results
}

func processClip(cfg Config, clip cliplist.ClipDef) Result {
	fail := func(err error) Result {
		return Result{Name: clip.Name, Error: err.Error()}
	}

	skelText, err := os.ReadFile(filepath.Join(cfg.ClipDir, clip.SkeletonFile))
	if err != nil {
		return fail(err)
	}
	skel, err := asf.Parse(string(skelText))
	if err != nil {
		return fail(err)
	}

	motionText, err := os.ReadFile(filepath.Join(cfg.ClipDir, clip.MotionFile))
	if err != nil {
		return fail(err)
	}
	motion := &anim.Animation{}
	if err := amc.Parse(string(motionText), skel, motion); err != nil {
		return fail(err)
	}

	motion.TrimFront(clip.TrimFront)
	motion.TrimBack(clip.TrimBack)
	if clip.LoopFrames > 0 {
		motion.MakeLoop(clip.LoopFrames)
	}
	if motion.FrameCount() == 0 {
		return fail(fmt.Errorf("motion %s has no frames left after trimming", clip.MotionFile))
	}

	overlays := make([]*anim.Animation, len(clip.Overlays))
	for i, ov := range clip.Overlays {
		text, err := os.ReadFile(filepath.Join(cfg.ClipDir, ov.MotionFile))
		if err != nil {
			return fail(err)
		}
		a := &anim.Animation{}
		if err := amc.Parse(string(text), skel, a); err != nil {
			return fail(err)
		}
		overlays[i] = a
	}

	total := motion.FrameCount()
	for _, a := range overlays {
		total += a.FrameCount()
	}
	if cfg.MaxFrames > 0 && total > cfg.MaxFrames {
		total = cfg.MaxFrames
	}

	ctrl := anim.NewController(skel, clip.Fps, clip.AbsoluteRoot)
	dt := 1 / clip.Fps
	view := cfg.Camera.Matrix()

	// First pass: collect every joint position the clip will visit, so one
	// fixed framing covers all frames.
	var points []mathutil.Vec3
	runPlayback(ctrl, skel, motion, overlays, clip, total, dt, func(int) {
		for _, seg := range skel.JointPositions() {
			points = append(points, seg[0], seg[1])
		}
	})

	renderSize := cfg.RenderSize * cfg.Supersample
	framing := viewmatrix.ComputeFraming(points, view, renderSize, 16*cfg.Supersample)

	outDir := filepath.Join(cfg.OutputDir, clip.Name)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fail(err)
	}

	// Second pass: render every frame.
	var renderErr error
	runPlayback(ctrl, skel, motion, overlays, clip, total, dt, func(frame int) {
		if renderErr != nil {
			return
		}
		img := raster.RenderPose(skel, view, framing, renderSize)
		if cfg.Supersample > 1 {
			img = postprocess.Downsample(img, cfg.RenderSize)
		}
		name := fmt.Sprintf("%05d.%s", frame, cfg.Format)
		renderErr = writeFrame(filepath.Join(outDir, name), img, cfg.Format)
	})
	if renderErr != nil {
		return fail(renderErr)
	}

	return Result{Name: clip.Name, Frames: total, Success: true}
}

// runPlayback resets the skeleton to rest, starts playback with the clip's
// overlay queue, and invokes fn once per rendered frame.
func runPlayback(
	ctrl *anim.Controller,
	skel *asf.Skeleton,
	motion *anim.Animation,
	overlays []*anim.Animation,
	clip cliplist.ClipDef,
	total int,
	dt float64,
	fn func(frame int),
) {
	skel.CurrentPosition = skel.RootPosition
	skel.CurrentRotation = skel.RootRotation

	ctrl.Play(motion)
	for i, a := range overlays {
		ctrl.Overlay(a, clip.Overlays[i].TransitionFrames)
	}

	fn(0)
	for f := 1; f < total; f++ {
		ctrl.Update(dt)
		fn(f)
	}
}

func writeFrame(path string, img *image.NRGBA, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "tga":
		err = tga.Encode(f, img)
	default:
		err = nativewebp.Encode(f, img, nil)
	}
	if err != nil {
		return fmt.Errorf("%s encode: %w", format, err)
	}
	return nil
}
