package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mocap-renderer/internal/batch"
	"mocap-renderer/internal/cliplist"
	"mocap-renderer/internal/config"
	"mocap-renderer/internal/viewmatrix"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	clipName := flag.String("clip", "", "Render only the clip with this name")
	testN := flag.Int("test", 0, "Render only first N clips for testing")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	dataDir := flag.String("data", "", "Path to base directory (default: cwd)")
	outputDir := flag.String("output", "", "Output directory (default: renders/)")
	format := flag.String("format", "", "Output format: webp or tga (default: webp)")
	quality := flag.Int("quality", 0, "WebP quality 1-100 (default: 90)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataDir:   *dataDir,
		OutputDir: *outputDir,
		Format:    *format,
		Quality:   *quality,
		Workers:   *workers,
	})

	// Load clip list
	clips, err := cliplist.Parse(cfg.ClipListXML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ClipList.xml: %v\n", err)
		os.Exit(1)
	}

	// Filter by name
	if *clipName != "" {
		var filtered []cliplist.ClipDef
		for _, c := range clips {
			if c.Name == *clipName {
				filtered = append(filtered, c)
			}
		}
		clips = filtered
	}

	// Limit for testing
	if *testN > 0 && *testN < len(clips) {
		clips = clips[:*testN]
	}

	if len(clips) == 0 {
		fmt.Println("No clips to render.")
		os.Exit(0)
	}

	// Print summary
	mode := ""
	if *clipName != "" {
		mode = fmt.Sprintf(" (clip %s)", *clipName)
	} else if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Motion Capture Clip Renderer → %s%s\n", cfg.Format, mode)
	fmt.Printf("Clips: %d, Workers: %d\n", len(clips), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		ClipDir:     cfg.ClipDir,
		OutputDir:   cfg.OutputDir,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		WebPQuality: cfg.WebPQuality,
		Format:      cfg.Format,
		Camera:      viewmatrix.Camera{Yaw: cfg.CameraYaw, Pitch: cfg.CameraPitch},
		MaxFrames:   cfg.MaxFrames,
		Workers:     cfg.Workers,
	}

	results := batch.Run(batchCfg, clips)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	frames := 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			frames += r.Frames
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d clips, %d frames\n", success, len(clips), frames)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, clips, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
