package vdom

import (
	"github.com/vango-dev/quicktip/pkg/dom"
	"github.com/vango-dev/quicktip/pkg/geom"
)

// AttrChange records an attribute mutation made through a Document so that
// it can be mirrored to the client.
type AttrChange struct {
	Handle  dom.Handle
	Name    string
	Value   string
	Removed bool
}

// Document is an in-memory dom.Document over a VNode tree. Geometry is not
// computed here: the client reports the viewport and element boxes, which
// are stored with SetViewport and SetBounds.
//
// A Document is not safe for concurrent use. Sessions confine each Document
// to their event loop.
type Document struct {
	tree     *VNode
	root     *Element
	byHandle map[dom.Handle]*Element
	bounds   map[dom.Handle]geom.Rect
	viewport geom.Rect
	changes  []AttrChange
}

// Element wraps a VNode as a dom.Node. Text and raw nodes are wrapped too so
// that callers can observe non-element event targets; they have no handle.
type Element struct {
	doc      *Document
	node     *VNode
	parent   *Element
	children []*Element
}

var _ dom.Document = (*Document)(nil)
var _ dom.Node = (*Element)(nil)

// NewDocument builds a Document over tree, assigning handles to every
// element. A tree whose root is not an element is wrapped in a <div>.
func NewDocument(tree *VNode) *Document {
	if tree == nil || tree.Kind != KindElement {
		tree = Div(tree)
	}
	AssignHIDs(tree, NewHIDGenerator())

	d := &Document{
		tree:     tree,
		byHandle: make(map[dom.Handle]*Element),
		bounds:   make(map[dom.Handle]geom.Rect),
	}
	d.root = d.wrap(tree, nil)
	return d
}

func (d *Document) wrap(node *VNode, parent *Element) *Element {
	e := &Element{doc: d, node: node, parent: parent}
	if node.Kind == KindElement {
		d.byHandle[dom.Handle(node.HID)] = e
	}
	d.wrapChildren(e, node.Children)
	return e
}

// wrapChildren attaches children to e, flattening fragments.
func (d *Document) wrapChildren(e *Element, children []*VNode) {
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.Kind == KindFragment {
			d.wrapChildren(e, child.Children)
			continue
		}
		e.children = append(e.children, d.wrap(child, e))
	}
}

// Tree returns the underlying VNode tree, including any attribute changes.
func (d *Document) Tree() *VNode {
	return d.tree
}

// Root implements dom.Document.
func (d *Document) Root() dom.Node {
	return d.root
}

// Lookup implements dom.Document.
func (d *Document) Lookup(h dom.Handle) dom.Node {
	if e := d.Element(h); e != nil {
		return e
	}
	return nil
}

// Element returns the element with the given handle, or nil.
func (d *Document) Element(h dom.Handle) *Element {
	return d.byHandle[h]
}

// Len returns the number of elements in the document.
func (d *Document) Len() int {
	return len(d.byHandle)
}

// Bounds implements dom.Layout.
func (d *Document) Bounds(n dom.Node) (geom.Rect, bool) {
	if n == nil {
		return geom.Rect{}, false
	}
	r, ok := d.bounds[n.Handle()]
	return r, ok
}

// Viewport implements dom.Layout.
func (d *Document) Viewport() geom.Rect {
	return d.viewport
}

// SetViewport records the client's visible page area.
func (d *Document) SetViewport(r geom.Rect) {
	d.viewport = r
}

// SetBounds records an element's border box. Unknown handles are ignored.
func (d *Document) SetBounds(h dom.Handle, r geom.Rect) {
	if _, ok := d.byHandle[h]; ok {
		d.bounds[h] = r
	}
}

// DrainChanges returns and clears the attribute changes made since the last
// call.
func (d *Document) DrainChanges() []AttrChange {
	changes := d.changes
	d.changes = nil
	return changes
}

// Handle implements dom.Node.
func (e *Element) Handle() dom.Handle {
	if e.node.Kind != KindElement {
		return ""
	}
	return dom.Handle(e.node.HID)
}

// IsElement implements dom.Node.
func (e *Element) IsElement() bool {
	return e.node.Kind == KindElement
}

// Parent implements dom.Node.
func (e *Element) Parent() dom.Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Attr implements dom.Node.
func (e *Element) Attr(name string) (string, bool) {
	if !e.IsElement() {
		return "", false
	}
	return e.node.Attr(name)
}

// SetAttr implements dom.Node.
func (e *Element) SetAttr(name, value string) {
	if !e.IsElement() {
		return
	}
	if prev, ok := e.node.Attr(name); ok && prev == value {
		return
	}
	if e.node.Props == nil {
		e.node.Props = make(Props)
	}
	e.node.Props[name] = value
	e.doc.changes = append(e.doc.changes, AttrChange{Handle: e.Handle(), Name: name, Value: value})
}

// RemoveAttr implements dom.Node.
func (e *Element) RemoveAttr(name string) {
	if _, ok := e.Attr(name); !ok {
		return
	}
	delete(e.node.Props, name)
	e.doc.changes = append(e.doc.changes, AttrChange{Handle: e.Handle(), Name: name, Removed: true})
}

// Tag returns the element's tag name, or "" for text nodes.
func (e *Element) Tag() string {
	return e.node.Tag
}

// VNode returns the wrapped node.
func (e *Element) VNode() *VNode {
	return e.node
}

// Children returns the wrapped children, fragments flattened.
func (e *Element) Children() []*Element {
	return e.children
}
