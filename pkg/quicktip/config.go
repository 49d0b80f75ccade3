package quicktip

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/quicktip/pkg/dom"
	"github.com/vango-dev/quicktip/pkg/geom"
)

// HideMode controls whether a visible tip dismisses itself.
type HideMode string

const (
	// HideAuto tips are hidden after DismissDelay even when the pointer
	// stays over the target.
	HideAuto HideMode = ""

	// HideUser tips stay visible until the pointer leaves the target.
	HideUser HideMode = "user"
)

// ParseHideMode maps a markup value to a HideMode. Only "user" is sticky.
func ParseHideMode(s string) HideMode {
	if strings.EqualFold(strings.TrimSpace(s), string(HideUser)) {
		return HideUser
	}
	return HideAuto
}

// TipConfig describes one tooltip.
type TipConfig struct {
	// Targets are the elements the tip is registered against. Only used by
	// Register; configs synthesized from markup leave it empty.
	Targets []dom.Handle

	// Text is the tip body. An empty text means no tip.
	Text  string
	Title string

	// Width fixes the panel width. Zero sizes the panel to its content.
	Width int

	AutoHide HideMode

	// Cls is an extra class applied to the panel while this tip shows.
	Cls string

	// Align is an alignment spec such as "tl-bl?". Anchor is the side of
	// the panel that carries a pointer towards the target. Either one
	// positions the panel relative to the target instead of the pointer.
	Align  string
	Anchor string

	// Per-tip overrides. Nil uses the dispatcher default.
	ShowDelay    *time.Duration
	HideDelay    *time.Duration
	DismissDelay *time.Duration
	MouseOffset  *geom.Point
}

// Positioned reports whether the tip is placed relative to its target.
func (c *TipConfig) Positioned() bool {
	return c.Anchor != "" || c.Align != ""
}

// clone returns a copy of c that shares no memory with it.
func (c TipConfig) clone() TipConfig {
	c.Targets = slices.Clone(c.Targets)
	c.ShowDelay = clonePtr(c.ShowDelay)
	c.HideDelay = clonePtr(c.HideDelay)
	c.DismissDelay = clonePtr(c.DismissDelay)
	c.MouseOffset = clonePtr(c.MouseOffset)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func durationOr(d *time.Duration, def time.Duration) time.Duration {
	if d == nil {
		return def
	}
	return *d
}

// Duration returns a pointer to d, for the optional TipConfig fields.
func Duration(d time.Duration) *time.Duration {
	return &d
}

// Convention names the attributes that declare a tip in markup.
type Convention struct {
	Text   string
	Width  string
	Title  string
	Hide   string
	Class  string
	Align  string
	Anchor string

	// NativeTitle is the attribute intercepted when title interception is
	// enabled.
	NativeTitle string
}

// DefaultConvention returns the attribute names under prefix:
// prefix+"qtip", prefix+"qwidth", prefix+"qtitle", prefix+"hide",
// prefix+"qclass", prefix+"qalign" and prefix+"anchor".
func DefaultConvention(prefix string) Convention {
	return Convention{
		Text:        prefix + "qtip",
		Width:       prefix + "qwidth",
		Title:       prefix + "qtitle",
		Hide:        prefix + "hide",
		Class:       prefix + "qclass",
		Align:       prefix + "qalign",
		Anchor:      prefix + "anchor",
		NativeTitle: "title",
	}
}

// Read synthesizes a TipConfig from the convention attributes on n. A
// malformed width is treated as automatic.
func (c Convention) Read(n dom.Node) TipConfig {
	attr := func(name string) string {
		v, _ := n.Attr(name)
		return v
	}

	cfg := TipConfig{
		Text:     attr(c.Text),
		Title:    attr(c.Title),
		AutoHide: ParseHideMode(attr(c.Hide)),
		Cls:      attr(c.Class),
		Align:    attr(c.Align),
		Anchor:   attr(c.Anchor),
	}
	if w, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(attr(c.Width)), "px")); err == nil && w > 0 {
		cfg.Width = w
	}
	return cfg
}
