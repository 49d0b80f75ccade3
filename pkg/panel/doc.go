// Package panel implements the floating hint panel a tooltip is drawn in.
//
// Panel holds the content (text, optional title, one presentation class)
// and the positioning logic: showing at a page point with optional viewport
// constraint, or aligned to a reference node with an optional directional
// pointer. The floating behaviour itself (visibility, page position,
// z-order, veto hooks) sits behind the Floater interface; Layer is the
// in-memory implementation sessions use, with the browser doing the drawing.
//
//	layer := panel.NewLayer(doc)
//	p := panel.New(layer, doc, panel.DefaultConfig())
//	p.SetContent("Saves the document", "Save")
//	p.ShowAtPoint(geom.Pt(120, 48))
package panel
