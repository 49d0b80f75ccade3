// Package quicktip implements a delegated tooltip dispatcher.
//
// One Dispatcher watches pointer movement over a document (or a subtree of
// it), works out which element currently carries a tip and drives a single
// shared panel.Panel through show and hide with configurable delays.
//
// # Resolution
//
// On every pointer-over the dispatcher looks for a tip in this order, taking
// the first match:
//
//  1. With WithInterceptTitles, a non-empty native title attribute on the
//     element itself. The title is moved into the markup attribute so the
//     browser stops drawing its own tooltip.
//  2. The nearest ancestor-or-self carrying the markup attribute
//     (data-qtip by default). Sibling attributes supply width, title, hide
//     mode, class, alignment and anchor side.
//  3. The registry, in registration order: the first registered element
//     that is, or contains, the pointer target.
//
// Moving between descendants of the same tipped element never hides and
// re-shows the panel.
//
// # Timers
//
// Show and hide share one timer slot, so arming one cancels the other. A
// third slot holds the dismiss timeout of auto-hiding tips. Cancelled timers
// never call back, even when their callback was already queued by the
// Clock.
//
// # Usage
//
//	d := quicktip.New(doc, p,
//	    quicktip.WithShowDelay(300*time.Millisecond),
//	    quicktip.WithClock(loopClock),
//	)
//	d.Register(quicktip.TipConfig{Targets: []dom.Handle{"save"}, Text: "Save the file"})
//	d.PointerOver(quicktip.PointerEvent{Target: doc.Lookup("save"), Point: geom.Pt(40, 12)})
package quicktip
