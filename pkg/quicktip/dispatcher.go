package quicktip

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/quicktip/pkg/dom"
	"github.com/vango-dev/quicktip/pkg/geom"
	"github.com/vango-dev/quicktip/pkg/panel"
)

// State is the dispatcher's lifecycle state.
type State uint8

const (
	// StateIdle: no active target, panel hidden.
	StateIdle State = iota
	// StatePendingShow: a target is resolved and the show timer runs.
	StatePendingShow
	// StateVisible: the panel shows the active target's tip.
	StateVisible
	// StatePendingHide: the hide timer runs.
	StatePendingHide
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePendingShow:
		return "pending-show"
	case StateVisible:
		return "visible"
	case StatePendingHide:
		return "pending-hide"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// PointerEvent is a pointer transition reported by the host.
type PointerEvent struct {
	// Target is the element the pointer entered (over), left (out) or is
	// moving over (move).
	Target dom.Node

	// Related is the element on the other side of an over/out transition,
	// or nil when the pointer came from or went outside the document.
	Related dom.Node

	// Point is the pointer position in page coordinates.
	Point geom.Point
}

// ActiveTarget is the element whose tip is pending or showing.
type ActiveTarget struct {
	Node   dom.Node
	Config TipConfig
	Point  geom.Point
	Source Source
}

// Dispatcher drives a single hint panel from pointer movement over a
// document. It resolves the tip for whatever the pointer rests on and
// sequences show and hide with cancellable timers.
//
// A Dispatcher is not safe for concurrent use. All methods, and every timer
// callback delivered through the Clock, must run on one goroutine.
type Dispatcher struct {
	doc      dom.Document
	panel    *panel.Panel
	opts     options
	logger   *slog.Logger
	observer Observer
	registry *registry

	state  State
	active *ActiveTarget

	// timer holds the show or hide timer; the two never coexist.
	timer   timerSlot
	dismiss timerSlot

	hideReason HideReason
	hiddenAt   time.Time
	enabled    bool
	destroyed  bool
}

// New creates an enabled dispatcher over doc that drives p.
func New(doc dom.Document, p *panel.Panel, opts ...Option) *Dispatcher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Dispatcher{
		doc:      doc,
		panel:    p,
		opts:     o,
		logger:   o.logger.With("component", "quicktip"),
		observer: o.observer,
		registry: newRegistry(),
		timer:    timerSlot{clock: o.clock},
		dismiss:  timerSlot{clock: o.clock},
		enabled:  true,
	}
}

// Register adds tips to the registry, one entry per target. Registering a
// target again replaces its config and keeps its position in lookup order.
// Configs without targets are skipped.
func (d *Dispatcher) Register(cfgs ...TipConfig) {
	for _, cfg := range cfgs {
		if len(cfg.Targets) == 0 {
			d.logger.Debug("skipping tip without targets", "text", cfg.Text)
			continue
		}
		stored := cfg.clone()
		stored.Targets = nil
		for _, h := range cfg.Targets {
			if h == "" {
				continue
			}
			d.registry.put(h, &stored)
		}
	}
}

// Unregister removes the tip registered against h. An active tip that came
// from that entry is cancelled. Unknown handles are ignored.
func (d *Dispatcher) Unregister(h dom.Handle) {
	if !d.registry.remove(h) {
		return
	}
	if a := d.active; a != nil && a.Source == SourceRegistry && a.Node.Handle() == h {
		d.reset(HideCancelled)
	}
}

// Registered returns the config registered against h.
func (d *Dispatcher) Registered(h dom.Handle) (TipConfig, bool) {
	cfg, ok := d.registry.get(h)
	if !ok {
		return TipConfig{}, false
	}
	return cfg.clone(), true
}

// Len returns the number of registered targets.
func (d *Dispatcher) Len() int {
	return d.registry.len()
}

// Enable resumes handling pointer events.
func (d *Dispatcher) Enable() {
	if d.destroyed {
		return
	}
	d.enabled = true
}

// Disable hides any tip, cancels all timers and ignores pointer events until
// Enable is called.
func (d *Dispatcher) Disable() {
	d.enabled = false
	d.reset(HideDisabled)
}

// Enabled reports whether pointer events are handled.
func (d *Dispatcher) Enabled() bool {
	return d.enabled
}

// CancelShow hides or abandons the tip for n if n is the active target.
func (d *Dispatcher) CancelShow(n dom.Node) {
	if d.active != nil && n != nil && dom.Same(d.active.Node, n) {
		d.reset(HideCancelled)
	}
}

// Destroy detaches the dispatcher: the tip is hidden, timers are cancelled,
// the registry is cleared and all later events are ignored.
func (d *Dispatcher) Destroy() {
	if d.destroyed {
		return
	}
	d.reset(HideDestroyed)
	d.registry.clear()
	d.enabled = false
	d.destroyed = true
}

// State returns the current lifecycle state.
func (d *Dispatcher) State() State {
	return d.state
}

// Active returns a copy of the active target, or nil.
func (d *Dispatcher) Active() *ActiveTarget {
	if d.active == nil {
		return nil
	}
	a := *d.active
	return &a
}

// PointerOver handles the pointer entering ev.Target.
func (d *Dispatcher) PointerOver(ev PointerEvent) {
	if !d.enabled || !d.inScope(ev.Target) {
		return
	}

	res, ok := d.resolve(ev.Target, true)
	if ok && res.config.Text == "" {
		ok = false
	}

	if a := d.active; a != nil && dom.Contains(a.Node, ev.Target) {
		if !ok || dom.Same(res.node, a.Node) {
			// Still on the same logical target.
			if d.timer.pending() == timerHide {
				d.resume()
			}
			return
		}
	}
	if !ok {
		return
	}

	d.observer.TipResolved(res.source)
	d.activate(res, ev.Point)
}

// PointerOut handles the pointer leaving ev.Target for ev.Related.
func (d *Dispatcher) PointerOut(ev PointerEvent) {
	a := d.active
	if !d.enabled || a == nil {
		return
	}
	if ev.Target != nil && !dom.Contains(a.Node, ev.Target) {
		return
	}
	if ev.Related != nil && dom.Contains(a.Node, ev.Related) {
		res, ok := d.resolve(ev.Related, false)
		if !ok || res.config.Text == "" || dom.Same(res.node, a.Node) {
			return
		}
	}
	if d.state == StatePendingHide {
		d.hideReason = HidePointerOut
		return
	}

	d.dismiss.cancel()
	d.scheduleHide(HidePointerOut)
}

// PointerMove handles pointer movement over ev.Target. A pending tip shows
// at the latest position; with track mouse enabled a visible
// point-positioned tip follows the pointer.
func (d *Dispatcher) PointerMove(ev PointerEvent) {
	a := d.active
	if !d.enabled || a == nil || ev.Target == nil || !dom.Contains(a.Node, ev.Target) {
		return
	}
	a.Point = ev.Point

	if d.opts.trackMouse && d.state == StateVisible && !a.Config.Positioned() {
		d.panel.ShowAtPoint(a.Point.Add(d.mouseOffset(&a.Config)))
	}
}

// resume cancels a pending hide for the active target. A tip that never
// made it on screen goes back to waiting for its show delay.
func (d *Dispatcher) resume() {
	d.timer.cancel()
	if d.panel.Visible() {
		d.setState(StateVisible)
		d.armDismiss()
		return
	}
	d.setState(StatePendingShow)
	d.timer.arm(timerShow, durationOr(d.active.Config.ShowDelay, d.opts.showDelay), d.onShowTimer)
}

// activate makes res the active target and starts showing it. While the
// panel is still up, or was hidden a moment ago, the show is immediate.
func (d *Dispatcher) activate(res resolution, pt geom.Point) {
	d.timer.cancel()
	d.dismiss.cancel()
	d.active = &ActiveTarget{Node: res.node, Config: res.config, Point: pt, Source: res.source}

	if d.quickShow() {
		d.show()
		return
	}
	d.setState(StatePendingShow)
	d.timer.arm(timerShow, durationOr(res.config.ShowDelay, d.opts.showDelay), d.onShowTimer)
}

func (d *Dispatcher) quickShow() bool {
	if d.panel.Visible() {
		return true
	}
	if d.hiddenAt.IsZero() || d.opts.quickShowInterval <= 0 {
		return false
	}
	return d.opts.clock.Now().Sub(d.hiddenAt) < d.opts.quickShowInterval
}

func (d *Dispatcher) onShowTimer() {
	a := d.active
	if a == nil || d.state != StatePendingShow {
		return
	}
	// The target may have been removed from the document while pending.
	if h := a.Node.Handle(); h != "" && d.doc.Lookup(h) == nil {
		d.logger.Debug("tip target detached before show", "target", h)
		d.reset(HideCancelled)
		return
	}
	d.show()
}

// show presents the active target's tip.
func (d *Dispatcher) show() {
	a := d.active
	cfg := &a.Config

	var align geom.Align
	var side geom.Side
	if cfg.Positioned() {
		var ok bool
		if side, ok = geom.ParseSide(cfg.Anchor); !ok {
			d.logger.Debug("ignoring tip with unknown anchor", "target", a.Node.Handle(), "anchor", cfg.Anchor)
			d.reset(HideCancelled)
			return
		}
		if cfg.Align != "" {
			var err error
			if align, err = geom.ParseAlign(cfg.Align); err != nil {
				d.logger.Debug("ignoring tip with unknown alignment", "target", a.Node.Handle(), "error", err)
				d.reset(HideCancelled)
				return
			}
		}
	}

	d.panel.SetContent(cfg.Text, cfg.Title)
	d.panel.SetWidth(cfg.Width)
	d.panel.SetPresentationClass(cfg.Cls)

	var shown bool
	if _, known := d.doc.Bounds(a.Node); cfg.Positioned() && known {
		shown = d.panel.ShowAlignedTo(a.Node, align, side)
	} else {
		shown = d.panel.ShowAtPoint(a.Point.Add(d.mouseOffset(cfg)))
	}
	if !shown {
		d.logger.Debug("tip show vetoed", "target", a.Node.Handle())
		d.observer.TipVetoed()
		d.panel.SetPresentationClass("")
		d.active = nil
		d.setState(StateIdle)
		return
	}

	d.setState(StateVisible)
	d.observer.TipShown(a.Source)
	d.armDismiss()
}

// armDismiss starts the auto-hide timeout for the visible tip unless the
// tip is sticky.
func (d *Dispatcher) armDismiss() {
	a := d.active
	if a == nil || a.Config.AutoHide == HideUser {
		return
	}
	if delay := durationOr(a.Config.DismissDelay, d.opts.dismissDelay); delay > 0 {
		d.dismiss.arm(timerDismiss, delay, d.onDismiss)
	}
}

func (d *Dispatcher) onDismiss() {
	if d.state != StateVisible {
		return
	}
	d.scheduleHide(HideDismissed)
}

func (d *Dispatcher) scheduleHide(reason HideReason) {
	d.hideReason = reason
	d.setState(StatePendingHide)
	d.timer.arm(timerHide, durationOr(d.active.Config.HideDelay, d.opts.hideDelay), d.onHideTimer)
}

func (d *Dispatcher) onHideTimer() {
	if d.state != StatePendingHide {
		return
	}
	d.reset(d.hideReason)
}

// reset cancels both timers, hides the panel if it is showing and returns
// to idle.
func (d *Dispatcher) reset(reason HideReason) {
	d.timer.cancel()
	d.dismiss.cancel()

	if d.panel.Visible() {
		d.panel.Hide()
		// A dismissed tip should not reappear the instant the pointer
		// wiggles over its target again.
		if reason != HideDismissed {
			d.hiddenAt = d.opts.clock.Now()
		}
		d.observer.TipHidden(reason)
	} else {
		d.panel.SetPresentationClass("")
	}
	d.active = nil
	d.setState(StateIdle)
}

func (d *Dispatcher) mouseOffset(cfg *TipConfig) geom.Point {
	if cfg.MouseOffset != nil {
		return *cfg.MouseOffset
	}
	return d.opts.mouseOffset
}

func (d *Dispatcher) setState(s State) {
	if d.state == s {
		return
	}
	var target dom.Handle
	if d.active != nil {
		target = d.active.Node.Handle()
	}
	d.logger.Debug("quicktip state", "from", d.state, "to", s, "target", target)
	d.state = s
}
