package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir     string `json:"base_dir"`
	ClipDir     string `json:"clip_dir"`
	ClipListXML string `json:"clip_list_xml"`
	OutputDir   string `json:"output_dir"`

	// Render settings
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	WebPQuality int     `json:"webp_quality"`
	Format      string  `json:"format"` // "webp" or "tga"
	Workers     int     `json:"workers"`
	CameraYaw   float64 `json:"camera_yaw"`
	CameraPitch float64 `json:"camera_pitch"`
	MaxFrames   int     `json:"max_frames"` // per clip, 0 = all
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir   string
	OutputDir string
	Format    string
	Quality   int
	Workers   int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.DataDir != "" {
		c.BaseDir = flags.DataDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Quality > 0 {
		c.WebPQuality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		cwd, _ := os.Getwd()
		c.BaseDir = cwd
	}

	// Resolve relative paths against base dir
	if c.ClipDir == "" {
		c.ClipDir = c.BaseDir
	} else if !filepath.IsAbs(c.ClipDir) {
		c.ClipDir = filepath.Join(c.BaseDir, c.ClipDir)
	}

	if c.ClipListXML == "" {
		c.ClipListXML = filepath.Join(c.BaseDir, "ClipList.xml")
	} else if !filepath.IsAbs(c.ClipListXML) {
		c.ClipListXML = filepath.Join(c.BaseDir, c.ClipListXML)
	}

	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "renders")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	}
	if c.Format != "tga" {
		c.Format = "webp"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.CameraYaw == 0 && c.CameraPitch == 0 {
		c.CameraYaw = 30
		c.CameraPitch = -15
	}
}
