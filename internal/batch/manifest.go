package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"mocap-renderer/internal/cliplist"
)

// ManifestEntry represents one clip in the output manifest.
type ManifestEntry struct {
	Name       string  `json:"name"`
	Skeleton   string  `json:"skeleton"`
	Motion     string  `json:"motion"`
	Fps        float64 `json:"fps"`
	Frames     int     `json:"frames"`
	FramesPath string  `json:"frames_path"`
}

// WriteManifest writes manifest.json to the output directory.
func WriteManifest(path string, clips []cliplist.ClipDef, results []Result) error {
	var entries []ManifestEntry
	for i, c := range clips {
		if i >= len(results) || !results[i].Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:       c.Name,
			Skeleton:   c.SkeletonFile,
			Motion:     c.MotionFile,
			Fps:        c.Fps,
			Frames:     results[i].Frames,
			FramesPath: fmt.Sprintf("%s/", c.Name),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
