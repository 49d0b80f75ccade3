package panel

import (
	"github.com/vango-dev/quicktip/pkg/dom"
	"github.com/vango-dev/quicktip/pkg/geom"
)

// Floater is the floating-panel capability a hint panel is drawn on: a
// non-modal box that can be rendered into a container, shown (subject to
// veto), hidden, placed at a page position, aligned, kept inside the
// viewport and raised above other floating content.
type Floater interface {
	Render(container dom.Node)
	Rendered() bool

	// Show makes the floater visible. It returns false when a before-show
	// hook vetoed it, in which case nothing changed.
	Show() bool
	Hide()
	Visible() bool

	SetPagePosition(p geom.Point)
	Position() geom.Point
	SetSize(s geom.Size)
	Size() geom.Size

	// GetAlignToXY returns the position that aligns the floater to ref.
	GetAlignToXY(ref geom.Rect, a geom.Align, offset geom.Point) geom.Point

	// DoConstrain moves the floater so it lies inside the viewport.
	DoConstrain()

	ToFront()
	ZIndex() int
}

// ZSeq hands out increasing z-indexes. Layers that share a ZSeq stack in
// the order they were brought to front.
type ZSeq struct {
	next int
}

// NewZSeq returns a sequence whose first value is base+1.
func NewZSeq(base int) *ZSeq {
	return &ZSeq{next: base}
}

// Next returns the next z-index.
func (z *ZSeq) Next() int {
	z.next++
	return z.next
}

// DefaultZBase is the z-index floor for layers created without a ZSeq.
const DefaultZBase = 11000

// Layer is the in-memory Floater used by sessions. It only tracks state;
// the client draws it.
type Layer struct {
	layout     dom.Layout
	container  dom.Handle
	rendered   bool
	visible    bool
	pos        geom.Point
	size       geom.Size
	z          int
	zseq       *ZSeq
	beforeShow []func() bool
}

var _ Floater = (*Layer)(nil)

// LayerOption configures a Layer.
type LayerOption func(*Layer)

// WithZSeq makes the layer draw z-indexes from seq.
func WithZSeq(seq *ZSeq) LayerOption {
	return func(l *Layer) {
		l.zseq = seq
	}
}

// NewLayer creates a hidden layer. layout supplies the viewport used for
// alignment constraint.
func NewLayer(layout dom.Layout, opts ...LayerOption) *Layer {
	l := &Layer{layout: layout}
	for _, opt := range opts {
		opt(l)
	}
	if l.zseq == nil {
		l.zseq = NewZSeq(DefaultZBase)
	}
	return l
}

// OnBeforeShow registers a hook that can veto showing by returning false.
func (l *Layer) OnBeforeShow(fn func() bool) {
	l.beforeShow = append(l.beforeShow, fn)
}

// Render implements Floater.
func (l *Layer) Render(container dom.Node) {
	if container != nil {
		l.container = container.Handle()
	}
	l.rendered = true
}

// Rendered implements Floater.
func (l *Layer) Rendered() bool { return l.rendered }

// Container returns the handle of the node the layer was rendered into.
func (l *Layer) Container() dom.Handle { return l.container }

// Show implements Floater. Hooks only run on a hidden-to-visible change.
func (l *Layer) Show() bool {
	if l.visible {
		return true
	}
	for _, fn := range l.beforeShow {
		if !fn() {
			return false
		}
	}
	l.visible = true
	return true
}

// Hide implements Floater.
func (l *Layer) Hide() { l.visible = false }

// Visible implements Floater.
func (l *Layer) Visible() bool { return l.visible }

// SetPagePosition implements Floater.
func (l *Layer) SetPagePosition(p geom.Point) { l.pos = p }

// Position implements Floater.
func (l *Layer) Position() geom.Point { return l.pos }

// SetSize implements Floater.
func (l *Layer) SetSize(s geom.Size) { l.size = s }

// Size implements Floater.
func (l *Layer) Size() geom.Size { return l.size }

// Bounds returns the layer's box in page coordinates.
func (l *Layer) Bounds() geom.Rect { return geom.RectAt(l.pos, l.size) }

// GetAlignToXY implements Floater.
func (l *Layer) GetAlignToXY(ref geom.Rect, a geom.Align, offset geom.Point) geom.Point {
	return geom.AlignToXY(ref, l.size, a, offset, l.viewport())
}

// DoConstrain implements Floater.
func (l *Layer) DoConstrain() {
	l.pos = geom.Constrain(l.Bounds(), l.viewport()).Min()
}

// ToFront implements Floater.
func (l *Layer) ToFront() { l.z = l.zseq.Next() }

// ZIndex implements Floater.
func (l *Layer) ZIndex() int { return l.z }

func (l *Layer) viewport() geom.Rect {
	if l.layout == nil {
		return geom.Rect{}
	}
	return l.layout.Viewport()
}
