package tiptest

import (
	"strings"
	"sync"

	"github.com/vango-dev/quicktip/pkg/panel"
	"github.com/vango-dev/quicktip/pkg/quicktip"
)

// Recorder is a quicktip.Observer that keeps every notification as a short
// string such as "shown:markup" or "hidden:pointer-out".
type Recorder struct {
	mu     sync.Mutex
	events []string
}

var _ quicktip.Observer = (*Recorder)(nil)

func (r *Recorder) add(ev string) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *Recorder) TipResolved(src quicktip.Source)      { r.add("resolved:" + string(src)) }
func (r *Recorder) TipShown(src quicktip.Source)         { r.add("shown:" + string(src)) }
func (r *Recorder) TipHidden(reason quicktip.HideReason) { r.add("hidden:" + string(reason)) }
func (r *Recorder) TipVetoed()                           { r.add("vetoed") }

// Events returns the recorded notifications.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// Count returns how many notifications start with prefix.
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, ev := range r.Events() {
		if strings.HasPrefix(ev, prefix) {
			n++
		}
	}
	return n
}

// Reset forgets recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// CountingFloater wraps a panel.Floater and counts show and hide calls.
type CountingFloater struct {
	panel.Floater
	Shows int
	Hides int
}

// Show implements panel.Floater.
func (f *CountingFloater) Show() bool {
	f.Shows++
	return f.Floater.Show()
}

// Hide implements panel.Floater.
func (f *CountingFloater) Hide() {
	f.Hides++
	f.Floater.Hide()
}

// Calls returns the total number of show and hide calls.
func (f *CountingFloater) Calls() int {
	return f.Shows + f.Hides
}
