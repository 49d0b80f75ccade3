package geom

import (
	"errors"
	"fmt"
	"strings"
)

// Alignment errors.
var (
	ErrEmptyAlign   = errors.New("geom: empty alignment spec")
	ErrInvalidAlign = errors.New("geom: invalid alignment spec")
)

// Corner names an anchor point of a box.
type Corner string

// Corner constants.
const (
	TopLeft     Corner = "tl"
	Top         Corner = "t"
	TopRight    Corner = "tr"
	Left        Corner = "l"
	Center      Corner = "c"
	Right       Corner = "r"
	BottomLeft  Corner = "bl"
	Bottom      Corner = "b"
	BottomRight Corner = "br"
)

// Valid reports whether c is one of the nine named corners.
func (c Corner) Valid() bool {
	switch c {
	case TopLeft, Top, TopRight, Left, Center, Right, BottomLeft, Bottom, BottomRight:
		return true
	}
	return false
}

// offset returns the position of c inside a box of size s, relative to the
// box's top-left corner.
func (c Corner) offset(s Size) Point {
	switch c {
	case Top:
		return Point{X: s.W / 2}
	case TopRight:
		return Point{X: s.W}
	case Left:
		return Point{Y: s.H / 2}
	case Center:
		return Point{X: s.W / 2, Y: s.H / 2}
	case Right:
		return Point{X: s.W, Y: s.H / 2}
	case BottomLeft:
		return Point{Y: s.H}
	case Bottom:
		return Point{X: s.W / 2, Y: s.H}
	case BottomRight:
		return Point{X: s.W, Y: s.H}
	default:
		return Point{}
	}
}

// Align is a parsed alignment spec such as "tl-bl?": the Self corner of the
// floating box is placed on the Ref corner of the reference box, and when
// Constrain is set the result is kept inside the viewport.
type Align struct {
	Self      Corner
	Ref       Corner
	Constrain bool
}

// ParseAlign parses an alignment spec. A single corner ("bl") is shorthand
// for "tl-bl". A trailing "?" requests viewport constraint.
func ParseAlign(spec string) (Align, error) {
	spec = strings.TrimSpace(strings.ToLower(spec))
	if spec == "" {
		return Align{}, ErrEmptyAlign
	}

	var a Align
	if strings.HasSuffix(spec, "?") {
		a.Constrain = true
		spec = strings.TrimSuffix(spec, "?")
	}

	self, ref, found := strings.Cut(spec, "-")
	if !found {
		self, ref = string(TopLeft), self
	}
	a.Self, a.Ref = Corner(self), Corner(ref)
	if !a.Self.Valid() || !a.Ref.Valid() {
		return Align{}, fmt.Errorf("%w: %q", ErrInvalidAlign, spec)
	}
	return a, nil
}

// MustParseAlign is like ParseAlign but panics on error.
func MustParseAlign(spec string) Align {
	a, err := ParseAlign(spec)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the spec form of a.
func (a Align) String() string {
	s := string(a.Self) + "-" + string(a.Ref)
	if a.Constrain {
		s += "?"
	}
	return s
}

// AlignToXY returns the top-left position for a box of size self aligned to
// ref per a, nudged by offset. When a.Constrain is set the box is kept
// inside viewport.
func AlignToXY(ref Rect, self Size, a Align, offset Point, viewport Rect) Point {
	p := ref.Corner(a.Ref).Sub(a.Self.offset(self)).Add(offset)
	if a.Constrain {
		return Constrain(RectAt(p, self), viewport).Min()
	}
	return p
}

// Side is the edge of a hint panel that carries its directional pointer.
type Side string

// Side constants.
const (
	SideNone   Side = ""
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// ParseSide parses an anchor side. Unknown values report false.
func ParseSide(s string) (Side, bool) {
	switch side := Side(strings.TrimSpace(strings.ToLower(s))); side {
	case SideNone, SideTop, SideBottom, SideLeft, SideRight:
		return side, true
	}
	return SideNone, false
}

// Align returns the alignment that puts the pointer edge against the
// reference box: a top pointer places the panel below the target, and so on.
func (s Side) Align() Align {
	switch s {
	case SideBottom:
		return Align{Self: BottomLeft, Ref: TopLeft}
	case SideLeft:
		return Align{Self: TopLeft, Ref: TopRight}
	case SideRight:
		return Align{Self: TopRight, Ref: TopLeft}
	default:
		return Align{Self: TopLeft, Ref: BottomLeft}
	}
}

// Nudge returns the offset that leaves gap pixels between the reference box
// and the panel for the pointer element.
func (s Side) Nudge(gap int) Point {
	switch s {
	case SideTop:
		return Point{Y: gap}
	case SideBottom:
		return Point{Y: -gap}
	case SideLeft:
		return Point{X: gap}
	case SideRight:
		return Point{X: -gap}
	default:
		return Point{}
	}
}
