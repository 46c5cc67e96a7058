package cliplist

// OverlayDef is one queued overlay motion within a clip.
type OverlayDef struct {
	MotionFile       string
	TransitionFrames int
}

// ClipDef holds one render job parsed from ClipList.xml.
type ClipDef struct {
	Name         string
	SkeletonFile string // e.g. "07.asf"
	MotionFile   string // e.g. "07_01.amc"
	Fps          float64
	TrimFront    int
	TrimBack     int
	LoopFrames   int  // MakeLoop window, 0 disables seam smoothing
	AbsoluteRoot bool // root-motion policy for this clip
	Overlays     []OverlayDef
}
