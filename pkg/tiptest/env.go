package tiptest

import (
	"time"

	"github.com/vango-dev/quicktip/pkg/dom"
	"github.com/vango-dev/quicktip/pkg/geom"
	"github.com/vango-dev/quicktip/pkg/panel"
	"github.com/vango-dev/quicktip/pkg/quicktip"
	"github.com/vango-dev/quicktip/pkg/vdom"
)

// DefaultViewport is the viewport of documents built by NewEnv.
var DefaultViewport = geom.R(0, 0, 1024, 768)

// Env wires a dispatcher to an in-memory document, a counting panel, a fake
// clock and a recorder.
type Env struct {
	Doc        *vdom.Document
	Layer      *panel.Layer
	Floater    *CountingFloater
	Panel      *panel.Panel
	Clock      *FakeClock
	Recorder   *Recorder
	Dispatcher *quicktip.Dispatcher

	// Pointer is the position reported with the next event.
	Pointer geom.Point
}

// NewEnv builds an Env over tree. opts are applied after the Env's own
// clock and observer.
func NewEnv(tree *vdom.VNode, opts ...quicktip.Option) *Env {
	doc := vdom.NewDocument(tree)
	doc.SetViewport(DefaultViewport)

	e := &Env{
		Doc:      doc,
		Layer:    panel.NewLayer(doc),
		Clock:    NewFakeClock(),
		Recorder: &Recorder{},
	}
	e.Floater = &CountingFloater{Floater: e.Layer}
	e.Panel = panel.New(e.Floater, doc, panel.DefaultConfig())

	all := append([]quicktip.Option{
		quicktip.WithClock(e.Clock),
		quicktip.WithObserver(e.Recorder),
	}, opts...)
	e.Dispatcher = quicktip.New(doc, e.Panel, all...)
	return e
}

// Node returns the element with handle h, or nil.
func (e *Env) Node(h dom.Handle) dom.Node {
	if h == "" {
		return nil
	}
	return e.Doc.Lookup(h)
}

// At sets the pointer position for following events.
func (e *Env) At(x, y int) *Env {
	e.Pointer = geom.Pt(x, y)
	return e
}

// Over sends a pointer-over for to, coming from from.
func (e *Env) Over(to, from dom.Handle) {
	e.Dispatcher.PointerOver(quicktip.PointerEvent{Target: e.Node(to), Related: e.Node(from), Point: e.Pointer})
}

// Out sends a pointer-out for from, going to to.
func (e *Env) Out(from, to dom.Handle) {
	e.Dispatcher.PointerOut(quicktip.PointerEvent{Target: e.Node(from), Related: e.Node(to), Point: e.Pointer})
}

// Move sends the out/over pair a browser fires when the pointer crosses
// from one element to another. Either side may be "" for outside the
// document.
func (e *Env) Move(from, to dom.Handle) {
	if from != "" {
		e.Out(from, to)
	}
	if to != "" {
		e.Over(to, from)
	}
}

// Wiggle sends a pointer-move over h at the current pointer position.
func (e *Env) Wiggle(h dom.Handle) {
	e.Dispatcher.PointerMove(quicktip.PointerEvent{Target: e.Node(h), Point: e.Pointer})
}

// Advance moves the fake clock forward.
func (e *Env) Advance(d time.Duration) {
	e.Clock.Advance(d)
}

// Visible reports whether the panel is showing.
func (e *Env) Visible() bool {
	return e.Panel.Visible()
}
