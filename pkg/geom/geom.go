package geom

import "fmt"

// Point is a position in page coordinates (CSS pixels, origin top-left).
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// String returns the point formatted as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a width/height pair.
type Size struct {
	W int
	H int
}

// Rect is an axis-aligned box given by its top-left corner and size.
// Negative sizes are treated as empty.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAt returns a rect of the given size whose top-left corner is p.
func RectAt(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, W: s.W, H: s.H}
}

// Left returns the left edge.
func (r Rect) Left() int { return r.X }

// Top returns the top edge.
func (r Rect) Top() int { return r.Y }

// Right returns the right edge (exclusive).
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the bottom edge (exclusive).
func (r Rect) Bottom() int { return r.Y + r.H }

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rect's size.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// In reports whether r lies entirely inside outer.
func (r Rect) In(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.Right() <= outer.Right() && r.Bottom() <= outer.Bottom()
}

// MoveTo returns r translated so its top-left corner is p.
func (r Rect) MoveTo(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// Corner returns the point of r named by c.
func (r Rect) Corner(c Corner) Point {
	return r.Min().Add(c.offset(r.Size()))
}

// String returns the rect formatted as "[x,y wxh]".
func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.W, r.H)
}

// Constrain shifts box so that it lies inside viewport. A box larger than
// the viewport along an axis is pinned to the viewport's leading edge.
func Constrain(box, viewport Rect) Rect {
	if viewport.Empty() {
		return box
	}
	box.X = clamp(box.X, viewport.X, viewport.Right()-box.W)
	box.Y = clamp(box.Y, viewport.Y, viewport.Bottom()-box.H)
	return box
}

// clamp returns v limited to [lo, hi]; lo wins when hi < lo.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Clamp limits v to [lo, hi]. A zero hi means no upper bound.
func Clamp(v, lo, hi int) int {
	if hi > 0 && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
