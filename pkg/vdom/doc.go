// Package vdom provides the server-side virtual DOM the tooltip engine runs
// against.
//
// Pages are built on the server as VNode trees, rendered to HTML once, and
// then kept in memory as a Document. The browser reports pointer movement in
// terms of element handles, so the server can resolve tooltips without ever
// asking the client what an element's attributes are.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("toolbar"),
//	    Button(ID("save"), Tip("Save the document"), TipAnchor("bottom"), Text("Save")),
//	    Span(TitleAttr("Native title"), Text("Help")),
//	)
//
// Tip, TipTitle, TipWidth, TipClass, TipAlign, TipAnchor and StickyTip write
// the attributes of the default "data-" markup convention.
//
// # Documents
//
// NewDocument assigns a handle to every element (the id attribute when it
// is unique, otherwise a generated "h<n>") and exposes the tree through the
// dom.Node and dom.Document interfaces. Attribute changes made through a
// Document are journaled so they can be mirrored to the client.
package vdom
