package asf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mocap-renderer/internal/mathutil"
)

// ErrFormat reports a fatal violation of the skeleton file grammar: a
// missing section keyword, a wrong root channel order, or a hierarchy edge
// that references an undefined or already-attached bone. No partial
// skeleton is usable after this error.
var ErrFormat = errors.New("invalid skeleton format")

// line is one tokenized input line.
type line struct {
	num    int
	fields []string
}

// Parse builds a Skeleton from ASF skeleton-definition text.
//
// Recognized sections are :units, :root, :bonedata and :hierarchy. Any
// other section (:version, :name, :documentation, ...) is skipped
// line-by-line so newer files with extra sections still load.
func Parse(text string) (*Skeleton, error) {
	p := &parser{degrees: true}
	p.tokenize(text)

	for p.pos < len(p.lines) {
		ln := p.lines[p.pos]
		key := ln.fields[0]
		if !strings.HasPrefix(key, ":") {
			return nil, fmt.Errorf("asf: line %d: expected section keyword, got %q: %w", ln.num, key, ErrFormat)
		}
		p.pos++

		var err error
		switch key {
		case ":units":
			err = p.parseUnits()
		case ":root":
			err = p.parseRoot()
		case ":bonedata":
			err = p.parseBoneData()
		case ":hierarchy":
			err = p.parseHierarchy()
		default:
			p.skipSection()
		}
		if err != nil {
			return nil, err
		}
	}

	skel := NewSkeleton(p.bones)
	skel.RootPosition = p.rootPosition
	skel.RootRotation = p.rootRotation
	skel.CurrentPosition = p.rootPosition
	skel.CurrentRotation = p.rootRotation

	// Re-derive root attachment from the hierarchy section: only bones the
	// hierarchy placed directly under "root" belong there.
	if p.sawHierarchy {
		skel.Roots = skel.Roots[:0]
		for i := range skel.Bones {
			if p.attached[i] && skel.Bones[i].Parent < 0 {
				skel.Roots = append(skel.Roots, i)
			}
		}
	}

	return skel, nil
}

type parser struct {
	lines []line
	pos   int

	degrees      bool
	rootPosition mathutil.Vec3
	rootRotation mathutil.Quat

	bones        []Bone
	boneIndex    map[string]int
	attached     []bool
	sawHierarchy bool
}

// tokenize splits the input into whitespace-separated field lines,
// dropping blanks and # comments.
func (p *parser) tokenize(text string) {
	for i, raw := range strings.Split(text, "\n") {
		s := strings.TrimSpace(raw)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		p.lines = append(p.lines, line{num: i + 1, fields: strings.Fields(s)})
	}
	p.boneIndex = make(map[string]int)
	p.rootRotation = mathutil.QuatIdentity()
}

// next returns the next line without consuming it, or false at a section
// boundary or end of input.
func (p *parser) next() (line, bool) {
	if p.pos >= len(p.lines) {
		return line{}, false
	}
	ln := p.lines[p.pos]
	if strings.HasPrefix(ln.fields[0], ":") {
		return line{}, false
	}
	return ln, true
}

func (p *parser) skipSection() {
	for {
		if _, ok := p.next(); !ok {
			return
		}
		p.pos++
	}
}

func (p *parser) parseFloats(ln line, start, count int) ([]float64, error) {
	if len(ln.fields) < start+count {
		return nil, fmt.Errorf("asf: line %d: expected %d numbers: %w", ln.num, count, ErrFormat)
	}
	vals := make([]float64, count)
	for i := 0; i < count; i++ {
		v, err := strconv.ParseFloat(ln.fields[start+i], 64)
		if err != nil {
			return nil, fmt.Errorf("asf: line %d: %w", ln.num, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// toRadians converts a file angle according to the :units declaration.
func (p *parser) toRadians(a float64) float64 {
	if p.degrees {
		return mathutil.Deg2Rad(a)
	}
	return a
}

func (p *parser) parseUnits() error {
	for {
		ln, ok := p.next()
		if !ok {
			return nil
		}
		p.pos++
		if ln.fields[0] == "angle" && len(ln.fields) > 1 {
			p.degrees = strings.EqualFold(ln.fields[1], "deg")
		}
		// mass and length factors are informational only
	}
}

var rootChannelOrder = []string{"TX", "TY", "TZ", "RX", "RY", "RZ"}

func (p *parser) parseRoot() error {
	for {
		ln, ok := p.next()
		if !ok {
			return nil
		}
		p.pos++

		switch ln.fields[0] {
		case "order":
			if len(ln.fields) != 7 {
				return fmt.Errorf("asf: line %d: root order must list 6 channels: %w", ln.num, ErrFormat)
			}
			for i, want := range rootChannelOrder {
				if !strings.EqualFold(ln.fields[1+i], want) {
					return fmt.Errorf("asf: line %d: unsupported root channel order (want TX TY TZ RX RY RZ): %w", ln.num, ErrFormat)
				}
			}
		case "position":
			v, err := p.parseFloats(ln, 1, 3)
			if err != nil {
				return err
			}
			p.rootPosition = mathutil.Vec3{v[0], v[1], v[2]}.Scale(ScaleToMeters)
		case "orientation":
			v, err := p.parseFloats(ln, 1, 3)
			if err != nil {
				return err
			}
			p.rootRotation = mathutil.QuatFromEulerZYX(
				p.toRadians(v[0]), p.toRadians(v[1]), p.toRadians(v[2]))
		default:
			// axis and anything newer: not needed for playback
		}
	}
}

func (p *parser) parseBoneData() error {
	for {
		ln, ok := p.next()
		if !ok {
			return nil
		}
		if ln.fields[0] != "begin" {
			return fmt.Errorf("asf: line %d: expected begin, got %q: %w", ln.num, ln.fields[0], ErrFormat)
		}
		p.pos++
		if err := p.parseBone(); err != nil {
			return err
		}
	}
}

func (p *parser) parseBone() error {
	b := Bone{
		Parent:         -1,
		BoneToRotation: mathutil.QuatIdentity(),
		RotationToBone: mathutil.QuatIdentity(),
		LocalRotation:  mathutil.QuatIdentity(),
	}
	ndof := 0

	for {
		ln, ok := p.next()
		if !ok {
			return fmt.Errorf("asf: unterminated bone block: %w", ErrFormat)
		}
		p.pos++

		switch ln.fields[0] {
		case "end":
			b.RestPosition = b.Direction.Scale(b.Length)
			p.boneIndex[b.Name] = len(p.bones)
			p.bones = append(p.bones, b)
			p.attached = append(p.attached, false)
			return nil
		case "id":
			// ids are sequential and redundant with arena order
		case "name":
			if len(ln.fields) < 2 {
				return fmt.Errorf("asf: line %d: bone name missing: %w", ln.num, ErrFormat)
			}
			b.Name = ln.fields[1]
		case "direction":
			v, err := p.parseFloats(ln, 1, 3)
			if err != nil {
				return err
			}
			b.Direction = mathutil.Vec3{v[0], v[1], v[2]}.Normalize()
		case "length":
			v, err := p.parseFloats(ln, 1, 1)
			if err != nil {
				return err
			}
			b.Length = v[0] * ScaleToMeters
		case "axis":
			v, err := p.parseFloats(ln, 1, 3)
			if err != nil {
				return err
			}
			b.BoneToRotation = mathutil.QuatFromEulerZYX(
				p.toRadians(v[0]), p.toRadians(v[1]), p.toRadians(v[2]))
			b.RotationToBone = b.BoneToRotation.Inverse()
		case "dof":
			for _, ch := range ln.fields[1:] {
				switch strings.ToLower(ch) {
				case "rx":
					b.DOF[0] = true
				case "ry":
					b.DOF[1] = true
				case "rz":
					b.DOF[2] = true
				}
			}
			ndof = len(ln.fields) - 1
		case "limits":
			// One limits line per dof; the first carries the keyword,
			// continuation lines are bare ranges. Values never constrain
			// playback, so they are consumed and discarded.
			for i := 1; i < ndof; i++ {
				if _, ok := p.next(); !ok {
					return fmt.Errorf("asf: line %d: truncated limits: %w", ln.num, ErrFormat)
				}
				p.pos++
			}
		}
	}
}

func (p *parser) parseHierarchy() error {
	p.sawHierarchy = true
	began := false
	for {
		ln, ok := p.next()
		if !ok {
			return nil
		}
		p.pos++

		switch ln.fields[0] {
		case "begin":
			began = true
			continue
		case "end":
			return nil
		}
		if !began {
			return fmt.Errorf("asf: line %d: hierarchy must open with begin: %w", ln.num, ErrFormat)
		}

		parentName := ln.fields[0]
		parent := -1
		if parentName != "root" {
			idx, ok := p.boneIndex[parentName]
			if !ok {
				return fmt.Errorf("asf: line %d: undefined parent bone %q: %w", ln.num, parentName, ErrFormat)
			}
			parent = idx
		}

		for _, childName := range ln.fields[1:] {
			idx, ok := p.boneIndex[childName]
			if !ok {
				return fmt.Errorf("asf: line %d: undefined bone %q: %w", ln.num, childName, ErrFormat)
			}
			if p.attached[idx] {
				return fmt.Errorf("asf: line %d: bone %q attached twice: %w", ln.num, childName, ErrFormat)
			}
			p.attached[idx] = true
			p.bones[idx].Parent = parent
		}
	}
}
