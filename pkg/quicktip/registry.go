package quicktip

import (
	"slices"

	"github.com/vango-dev/quicktip/pkg/dom"
)

// registry maps target handles to configs, remembering insertion order.
// Replacing a config keeps the handle's original position.
type registry struct {
	order   []dom.Handle
	entries map[dom.Handle]*TipConfig
}

func newRegistry() *registry {
	return &registry{entries: make(map[dom.Handle]*TipConfig)}
}

func (r *registry) put(h dom.Handle, cfg *TipConfig) {
	if _, ok := r.entries[h]; !ok {
		r.order = append(r.order, h)
	}
	r.entries[h] = cfg
}

func (r *registry) get(h dom.Handle) (*TipConfig, bool) {
	cfg, ok := r.entries[h]
	return cfg, ok
}

// remove deletes h and reports whether it was present.
func (r *registry) remove(h dom.Handle) bool {
	if _, ok := r.entries[h]; !ok {
		return false
	}
	delete(r.entries, h)
	r.order = slices.DeleteFunc(r.order, func(o dom.Handle) bool { return o == h })
	return true
}

func (r *registry) len() int {
	return len(r.entries)
}

func (r *registry) clear() {
	r.order = nil
	clear(r.entries)
}

// each calls fn for every entry in insertion order until fn returns false.
func (r *registry) each(fn func(h dom.Handle, cfg *TipConfig) bool) {
	for _, h := range r.order {
		if !fn(h, r.entries[h]) {
			return
		}
	}
}
