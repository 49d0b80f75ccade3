package quicktip

import (
	"github.com/vango-dev/quicktip/pkg/dom"
)

// resolution is a tip found for a pointer target.
type resolution struct {
	node   dom.Node
	config TipConfig
	source Source
}

// scopeRoot returns the node bounding the dispatcher, or nil when the
// configured scope is not in the document.
func (d *Dispatcher) scopeRoot() dom.Node {
	if d.opts.scope == "" {
		return d.doc.Root()
	}
	return d.doc.Lookup(d.opts.scope)
}

// inScope reports whether target may carry a tip: an element strictly
// inside the scope root.
func (d *Dispatcher) inScope(target dom.Node) bool {
	if !dom.IsElement(target) {
		return false
	}
	root := d.scopeRoot()
	if root == nil || dom.Same(root, target) {
		return false
	}
	return dom.Contains(root, target)
}

// resolve finds the tip for target. The native title rule comes first, then
// the nearest ancestor carrying markup, then the registry in insertion order.
// With mutate set, an intercepted title is moved into the markup attribute
// so the browser stops showing its own tooltip and later hovers resolve
// through markup.
func (d *Dispatcher) resolve(target dom.Node, mutate bool) (resolution, bool) {
	if !d.inScope(target) {
		return resolution{}, false
	}
	conv := d.opts.convention

	if d.opts.interceptTitles && conv.NativeTitle != "" {
		if title, ok := target.Attr(conv.NativeTitle); ok && title != "" {
			if !mutate {
				return resolution{node: target, config: TipConfig{Text: title}, source: SourceTitle}, true
			}
			target.SetAttr(conv.Text, title)
			target.RemoveAttr(conv.NativeTitle)
			return resolution{node: target, config: conv.Read(target), source: SourceTitle}, true
		}
	}

	if n := dom.Closest(target, d.scopeRoot(), dom.HasAttr(conv.Text)); n != nil {
		return resolution{node: n, config: conv.Read(n), source: SourceMarkup}, true
	}

	var found resolution
	d.registry.each(func(h dom.Handle, cfg *TipConfig) bool {
		n := d.doc.Lookup(h)
		if n == nil || !dom.Contains(n, target) {
			return true
		}
		found = resolution{node: n, config: *cfg, source: SourceRegistry}
		return false
	})
	if found.node == nil {
		return resolution{}, false
	}
	return found, true
}
