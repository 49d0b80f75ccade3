// Package render converts VNode trees into HTML.
//
// Every element that carries a handle is rendered with a data-hid attribute,
// which is how the thin client names elements in the pointer events it sends
// back. Attributes are written in name order so the same tree always renders
// to the same bytes.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(doc.Tree())
//
// RenderPage wraps a body in a full document and injects the client script.
// Text and attribute values are escaped; KindRaw nodes are written verbatim
// and must only hold trusted markup.
package render
