package cliplist

import (
	"os"
	"path/filepath"
	"testing"
)

const testXML = `<?xml version="1.0" encoding="utf-8"?>
<ClipList>
  <Clip Name="walk" Skeleton="07.asf" Motion="07_01.amc" Fps="120"
        TrimFront="100" TrimBack="150" Loop="60" RootMotion="relative">
    <Overlay Motion="07_04.amc" Transition="30"/>
    <Overlay Motion="07_05.amc"/>
  </Clip>
  <Clip Skeleton="14.asf" Motion="14_06.amc" RootMotion="Absolute"/>
  <Clip Name="broken" Motion="orphan.amc"/>
  <Clip Name="badnums" Skeleton="05.asf" Motion="05_02.amc" Fps="zero" Loop="-x"/>
</ClipList>
`

func writeTestList(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ClipList.xml")
	if err := os.WriteFile(path, []byte(testXML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseClipList(t *testing.T) {
	clips, err := Parse(writeTestList(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// the clip with no skeleton is dropped
	if len(clips) != 3 {
		t.Fatalf("clips: got %d, want 3", len(clips))
	}

	walk := clips[0]
	if walk.Name != "walk" || walk.SkeletonFile != "07.asf" || walk.MotionFile != "07_01.amc" {
		t.Fatalf("walk clip: %+v", walk)
	}
	if walk.Fps != 120 || walk.TrimFront != 100 || walk.TrimBack != 150 || walk.LoopFrames != 60 {
		t.Fatalf("walk numbers: %+v", walk)
	}
	if walk.AbsoluteRoot {
		t.Fatal("walk should use relative root motion")
	}
	if len(walk.Overlays) != 2 {
		t.Fatalf("walk overlays: got %d, want 2", len(walk.Overlays))
	}
	if walk.Overlays[0].MotionFile != "07_04.amc" || walk.Overlays[0].TransitionFrames != 30 {
		t.Fatalf("overlay 0: %+v", walk.Overlays[0])
	}
	if walk.Overlays[1].TransitionFrames != 0 {
		t.Fatalf("overlay 1 transition should default to 0, got %d",
			walk.Overlays[1].TransitionFrames)
	}
}

func TestDefaultsAndCaseInsensitiveRootMotion(t *testing.T) {
	clips, err := Parse(writeTestList(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	run := clips[1]
	if run.Name != "14_06" {
		t.Fatalf("name should default to motion basename, got %q", run.Name)
	}
	if run.Fps != 120 || run.TrimFront != 0 || run.LoopFrames != 0 {
		t.Fatalf("defaults: %+v", run)
	}
	if !run.AbsoluteRoot {
		t.Fatal("RootMotion=\"Absolute\" should match case-insensitively")
	}
}

func TestBadNumbersFallBack(t *testing.T) {
	clips, err := Parse(writeTestList(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	bad := clips[2]
	if bad.Fps != 120 || bad.LoopFrames != 0 {
		t.Fatalf("unparsable numbers should fall back: %+v", bad)
	}
}

func TestMissingFileFails(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "nope.xml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMalformedXMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ClipList.xml")
	if err := os.WriteFile(path, []byte("<ClipList><Clip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(path); err == nil {
		t.Fatal("expected error for malformed xml")
	}
}
