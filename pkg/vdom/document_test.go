package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/quicktip/pkg/dom"
	"github.com/vango-dev/quicktip/pkg/geom"
)

func testTree() *VNode {
	return Body(ID("body"),
		Div(ID("toolbar"), Data("qtip", "Toolbar"),
			Button(ID("save"), Text("Save")),
			Fragment(Button(ID("open"), Text("Open"))),
		),
		P(ID("para"), TitleAttr("Native"), Text("Hello")),
	)
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(testTree())

	assert.Equal(t, 5, doc.Len())
	assert.Equal(t, dom.Handle("body"), doc.Root().Handle())

	open := doc.Element("open")
	require.NotNil(t, open)
	assert.Equal(t, "button", open.Tag())
	assert.Equal(t, dom.Handle("toolbar"), open.Parent().Handle(), "fragment children attach to the element parent")

	assert.Nil(t, doc.Lookup("missing"))
	assert.Nil(t, doc.Root().Parent())
}

func TestNewDocumentWrapsNonElementRoot(t *testing.T) {
	doc := NewDocument(Fragment(Span(ID("a")), Span(ID("b"))))

	require.True(t, doc.Root().IsElement())
	assert.Equal(t, "div", doc.Tree().Tag)
	assert.NotNil(t, doc.Lookup("a"))
	assert.NotNil(t, doc.Lookup("b"))
}

func TestElementAttrs(t *testing.T) {
	doc := NewDocument(testTree())
	para := doc.Element("para")

	v, ok := para.Attr("title")
	assert.True(t, ok)
	assert.Equal(t, "Native", v)

	para.SetAttr("data-qtip", "Native")
	para.SetAttr("data-qtip", "Native") // unchanged, not journaled
	para.RemoveAttr("title")
	para.RemoveAttr("title") // absent, not journaled

	_, ok = para.Attr("title")
	assert.False(t, ok)

	changes := doc.DrainChanges()
	assert.Equal(t, []AttrChange{
		{Handle: "para", Name: "data-qtip", Value: "Native"},
		{Handle: "para", Name: "title", Removed: true},
	}, changes)
	assert.Empty(t, doc.DrainChanges())

	// The change is visible in the tree the page is rendered from.
	got, _ := findByID(doc.Tree(), "para").Attr("data-qtip")
	assert.Equal(t, "Native", got)
}

func TestTextNodes(t *testing.T) {
	doc := NewDocument(testTree())
	text := doc.Element("save").Children()[0]

	assert.False(t, text.IsElement())
	assert.Equal(t, dom.Handle(""), text.Handle())
	assert.Equal(t, dom.Handle("save"), text.Parent().Handle())

	_, ok := text.Attr("anything")
	assert.False(t, ok)
	text.SetAttr("x", "y")
	assert.Empty(t, doc.DrainChanges())
}

func TestLayout(t *testing.T) {
	doc := NewDocument(testTree())

	doc.SetViewport(geom.R(0, 0, 1024, 768))
	doc.SetBounds("save", geom.R(10, 10, 60, 24))
	doc.SetBounds("ghost", geom.R(1, 1, 1, 1))

	assert.Equal(t, geom.R(0, 0, 1024, 768), doc.Viewport())

	r, ok := doc.Bounds(doc.Lookup("save"))
	assert.True(t, ok)
	assert.Equal(t, geom.R(10, 10, 60, 24), r)

	_, ok = doc.Bounds(doc.Lookup("open"))
	assert.False(t, ok)
	_, ok = doc.Bounds(nil)
	assert.False(t, ok)
}

func TestDomHelpersOnDocument(t *testing.T) {
	doc := NewDocument(testTree())
	save := doc.Lookup("save")
	toolbar := doc.Lookup("toolbar")

	assert.True(t, dom.Contains(toolbar, save))
	assert.True(t, dom.Contains(save, save))
	assert.False(t, dom.Contains(save, toolbar))

	found := dom.Closest(save, doc.Root(), dom.HasAttr("data-qtip"))
	require.NotNil(t, found)
	assert.Equal(t, dom.Handle("toolbar"), found.Handle())

	// The stop node bounds the walk.
	assert.Nil(t, dom.Closest(save, toolbar, dom.HasAttr("data-qtip")))
}

func findByID(node *VNode, hid string) *VNode {
	if node == nil {
		return nil
	}
	if node.HID == hid {
		return node
	}
	for _, child := range node.Children {
		if found := findByID(child, hid); found != nil {
			return found
		}
	}
	return nil
}
