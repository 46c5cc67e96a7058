package cliplist

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// xmlClipList matches the ClipList.xml schema.
type xmlClipList struct {
	Clips []xmlClip `xml:"Clip"`
}

type xmlClip struct {
	Name       string       `xml:"Name,attr"`
	Skeleton   string       `xml:"Skeleton,attr"`
	Motion     string       `xml:"Motion,attr"`
	Fps        string       `xml:"Fps,attr"`
	TrimFront  string       `xml:"TrimFront,attr"`
	TrimBack   string       `xml:"TrimBack,attr"`
	Loop       string       `xml:"Loop,attr"`
	RootMotion string       `xml:"RootMotion,attr"`
	Overlays   []xmlOverlay `xml:"Overlay"`
}

type xmlOverlay struct {
	Motion     string `xml:"Motion,attr"`
	Transition string `xml:"Transition,attr"`
}

// Parse reads ClipList.xml and returns every clip that names both a
// skeleton and a motion file. Missing or unparsable numeric attributes
// fall back to defaults rather than failing the list.
func Parse(xmlPath string) ([]ClipDef, error) {
	raw, err := os.ReadFile(xmlPath)
	if err != nil {
		return nil, fmt.Errorf("cliplist: read %s: %w", xmlPath, err)
	}

	var list xmlClipList
	if err := xml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("cliplist: parse %s: %w", xmlPath, err)
	}

	var clips []ClipDef
	for _, c := range list.Clips {
		if c.Skeleton == "" || c.Motion == "" {
			continue
		}
		def := ClipDef{
			Name:         c.Name,
			SkeletonFile: c.Skeleton,
			MotionFile:   c.Motion,
			Fps:          atofDefault(c.Fps, 120),
			TrimFront:    atoiDefault(c.TrimFront, 0),
			TrimBack:     atoiDefault(c.TrimBack, 0),
			LoopFrames:   atoiDefault(c.Loop, 0),
			AbsoluteRoot: strings.EqualFold(c.RootMotion, "absolute"),
		}
		if def.Name == "" {
			def.Name = strings.TrimSuffix(c.Motion, ".amc")
		}
		for _, ov := range c.Overlays {
			if ov.Motion == "" {
				continue
			}
			def.Overlays = append(def.Overlays, OverlayDef{
				MotionFile:       ov.Motion,
				TransitionFrames: atoiDefault(ov.Transition, 0),
			})
		}
		clips = append(clips, def)
	}

	return clips, nil
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func atofDefault(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
