package dom

import "github.com/vango-dev/quicktip/pkg/geom"

// Handle is the stable, opaque identity of an element within a Document.
// Handles survive re-layout and are what clients send back in events.
type Handle string

// Node is the read/write view of a single node that the tooltip engine
// needs. It mirrors the handful of browser DOM members the engine touches
// (parentElement, getAttribute, setAttribute, removeAttribute).
type Node interface {
	// Handle returns the node's identity. Non-element nodes may return "".
	Handle() Handle

	// IsElement reports whether this is an element node.
	IsElement() bool

	// Parent returns the parent element, or nil at the document root.
	Parent() Node

	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)

	// SetAttr sets an attribute, adding it if absent.
	SetAttr(name, value string)

	// RemoveAttr removes an attribute. Removing an absent attribute is a no-op.
	RemoveAttr(name string)
}

// Layout reports page geometry. The values come from the client, which is
// the only party that actually lays the page out.
type Layout interface {
	// Bounds returns the node's border box in page coordinates.
	Bounds(n Node) (geom.Rect, bool)

	// Viewport returns the visible part of the page in page coordinates.
	Viewport() geom.Rect
}

// Document is a DOM tree addressable by handle.
type Document interface {
	Layout

	// Root returns the document's root element.
	Root() Node

	// Lookup returns the node with the given handle, or nil.
	Lookup(h Handle) Node
}

// IsElement reports whether n is a non-nil element node.
func IsElement(n Node) bool {
	return n != nil && n.IsElement()
}

// Same reports whether a and b are the same node.
func Same(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Handle() != "" || b.Handle() != "" {
		return a.Handle() == b.Handle()
	}
	return a == b
}

// Contains reports whether n is ancestor or one of its descendants.
func Contains(ancestor, n Node) bool {
	if ancestor == nil {
		return false
	}
	for ; n != nil; n = n.Parent() {
		if Same(ancestor, n) {
			return true
		}
	}
	return false
}

// Closest walks from n towards the root and returns the first node for which
// match reports true. The walk stops after visiting stop (inclusive of n,
// exclusive of stop), or at the document root when stop is nil.
func Closest(n, stop Node, match func(Node) bool) Node {
	for ; n != nil; n = n.Parent() {
		if stop != nil && Same(n, stop) {
			return nil
		}
		if n.IsElement() && match(n) {
			return n
		}
	}
	return nil
}

// HasAttr returns a matcher for Closest that accepts nodes carrying a
// non-empty value for name.
func HasAttr(name string) func(Node) bool {
	return func(n Node) bool {
		v, ok := n.Attr(name)
		return ok && v != ""
	}
}
