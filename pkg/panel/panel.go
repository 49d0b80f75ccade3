package panel

import (
	"fmt"

	"github.com/vango-dev/quicktip/pkg/dom"
	"github.com/vango-dev/quicktip/pkg/geom"
	"github.com/vango-dev/quicktip/pkg/vdom"
)

// Default panel settings.
const (
	DefaultMinWidth  = 40
	DefaultMaxWidth  = 300
	DefaultAnchorGap = 6
	DefaultBaseClass = "qtip"
)

// Config configures a Panel.
type Config struct {
	// MinWidth and MaxWidth bound the automatic width.
	MinWidth int
	MaxWidth int

	// Constrain keeps point-positioned panels inside the viewport.
	Constrain bool

	// AnchorGap is the space left for the pointer element in anchor mode.
	AnchorGap int

	// BaseClass is always present on the panel's root element.
	BaseClass string

	// Container is the node the panel renders into on first show.
	// Nil means the document body.
	Container dom.Node

	// Measurer estimates content size. Defaults to DefaultMetrics.
	Measurer Measurer
}

// DefaultConfig returns the settings of a standard hint panel.
func DefaultConfig() Config {
	return Config{
		MinWidth:  DefaultMinWidth,
		MaxWidth:  DefaultMaxWidth,
		Constrain: true,
		AnchorGap: DefaultAnchorGap,
		BaseClass: DefaultBaseClass,
		Measurer:  DefaultMetrics,
	}
}

// State is a comparable snapshot of everything a client needs to draw the
// panel.
type State struct {
	Visible  bool
	Position geom.Point
	Size     geom.Size
	Z        int
	Text     string
	Title    string
	Class    string
	Anchor   geom.Side
}

// Panel is a floating hint panel: text with an optional title, shown at a
// page point or aligned to a reference node, optionally carrying a
// directional pointer and one extra presentation class.
//
// A Panel knows nothing about what triggers it. It is not safe for
// concurrent use.
type Panel struct {
	floater Floater
	layout  dom.Layout
	config  Config

	text     string
	title    string
	width    int
	cls      string
	anchor   geom.Side
	anchorTo dom.Handle
}

// New creates a panel drawn on f. layout supplies reference node bounds for
// aligned showing.
func New(f Floater, layout dom.Layout, config Config) *Panel {
	if config.Measurer == nil {
		config.Measurer = DefaultMetrics
	}
	if config.BaseClass == "" {
		config.BaseClass = DefaultBaseClass
	}
	p := &Panel{floater: f, layout: layout, config: config}
	p.measure()
	return p
}

// Floater returns the underlying floater.
func (p *Panel) Floater() Floater {
	return p.floater
}

// Visible reports whether the panel is showing.
func (p *Panel) Visible() bool {
	return p.floater.Visible()
}

// ShowAtPoint shows the panel with its top-left corner at pt, keeps it in
// the viewport when Constrain is set, and raises it. It returns false only
// when the show was vetoed.
func (p *Panel) ShowAtPoint(pt geom.Point) bool {
	p.anchor, p.anchorTo = geom.SideNone, ""
	return p.showAt(pt, p.config.Constrain)
}

// ShowAlignedTo shows the panel aligned to ref. With an anchor side the
// panel renders a pointer on that edge, uses the side's default alignment
// when a is zero, and tracks ref instead of being clamped to the viewport.
// Unknown ref bounds align against the viewport origin.
func (p *Panel) ShowAlignedTo(ref dom.Node, a geom.Align, anchor geom.Side) bool {
	var r geom.Rect
	if p.layout != nil {
		r, _ = p.layout.Bounds(ref)
	}

	constrain := p.config.Constrain
	var offset geom.Point
	if anchor != geom.SideNone {
		if a == (geom.Align{}) {
			a = anchor.Align()
		}
		a.Constrain = false
		offset = anchor.Nudge(p.config.AnchorGap)
		constrain = false
	}

	xy := p.floater.GetAlignToXY(r, a, offset)
	p.anchor = anchor
	if ref != nil {
		p.anchorTo = ref.Handle()
	}
	return p.showAt(xy, constrain)
}

func (p *Panel) showAt(pt geom.Point, constrain bool) bool {
	if !p.floater.Rendered() {
		p.floater.Render(p.config.Container)
	}
	if !p.floater.Show() {
		p.anchor, p.anchorTo = geom.SideNone, ""
		return false
	}
	p.floater.SetPagePosition(pt)
	if constrain {
		p.floater.DoConstrain()
	}
	p.floater.ToFront()
	return true
}

// Hide hides the panel and forgets what it was showing, including its
// presentation class.
func (p *Panel) Hide() {
	p.floater.Hide()
	p.anchor, p.anchorTo = geom.SideNone, ""
	p.cls = ""
}

// SetContent replaces the text and title. The header is only rendered when
// title is non-empty.
func (p *Panel) SetContent(text, title string) {
	p.text, p.title = text, title
	p.measure()
}

// SetWidth fixes the panel width. Zero restores automatic width.
func (p *Panel) SetWidth(w int) {
	p.width = max(0, w)
	p.measure()
}

// SetPresentationClass replaces the extra class. The empty string removes
// it.
func (p *Panel) SetPresentationClass(cls string) {
	p.cls = cls
}

// PresentationClass returns the extra class currently applied.
func (p *Panel) PresentationClass() string {
	return p.cls
}

// AnchoredTo returns the handle of the node the panel tracks in anchor
// mode, or "".
func (p *Panel) AnchoredTo() dom.Handle {
	return p.anchorTo
}

// Classes returns the classes on the panel's root element.
func (p *Panel) Classes() []string {
	classes := []string{p.config.BaseClass}
	if p.cls != "" {
		classes = append(classes, p.cls)
	}
	if p.anchor != geom.SideNone {
		classes = append(classes, p.config.BaseClass+"-anchored")
	}
	return classes
}

// State returns a snapshot of the panel.
func (p *Panel) State() State {
	return State{
		Visible:  p.floater.Visible(),
		Position: p.floater.Position(),
		Size:     p.floater.Size(),
		Z:        p.floater.ZIndex(),
		Text:     p.text,
		Title:    p.title,
		Class:    p.cls,
		Anchor:   p.anchor,
	}
}

// Node returns the panel's markup.
func (p *Panel) Node() *vdom.VNode {
	base := p.config.BaseClass
	pos, size := p.floater.Position(), p.floater.Size()
	style := fmt.Sprintf("position:absolute;left:%dpx;top:%dpx;width:%dpx;z-index:%d",
		pos.X, pos.Y, size.W, p.floater.ZIndex())
	if !p.floater.Visible() {
		style += ";visibility:hidden"
	}

	return vdom.Div(
		vdom.Class(p.Classes()...),
		vdom.Role("tooltip"),
		vdom.StyleAttr(style),
		vdom.If(p.title != "", vdom.Div(vdom.Class(base+"-header"), vdom.Text(p.title))),
		vdom.Div(vdom.Class(base+"-body"), vdom.Text(p.text)),
		vdom.If(p.anchor != geom.SideNone,
			vdom.Div(vdom.Class(base+"-anchor", base+"-anchor-"+string(p.anchor)), vdom.AriaHidden(true))),
	)
}

func (p *Panel) measure() {
	p.floater.SetSize(p.config.Measurer.Measure(p.text, p.title, p.width, p.config.MinWidth, p.config.MaxWidth))
}
