package main

import (
	"github.com/vango-dev/quicktip/pkg/vdom"
)

// demoPage is the page served by "quicktip serve". It exercises every way
// a tip can be attached.
func demoPage() *vdom.VNode {
	return vdom.Body(
		vdom.Header(
			vdom.H1(vdom.Text("quicktip")),
			vdom.P(vdom.Text("Hover the controls below. Every tooltip is decided on the server.")),
		),
		vdom.Main(vdom.ID("demo"),
			vdom.Section(vdom.ID("markup"),
				vdom.H2(vdom.Text("Markup")),
				vdom.Button(vdom.ID("save"), vdom.Tip("Save the document"), vdom.Text("Save")),
				vdom.Button(vdom.ID("export"),
					vdom.Tip("Writes a PDF next to the document."),
					vdom.TipTitle("Export"),
					vdom.TipWidth(220),
					vdom.Text("Export"),
				),
				vdom.Button(vdom.ID("delete"),
					vdom.Tip("This cannot be undone."),
					vdom.TipClass("qtip-warning"),
					vdom.TipAnchor("top"),
					vdom.Text("Delete"),
				),
				vdom.Button(vdom.ID("pin"),
					vdom.Tip("Stays until the pointer leaves."),
					vdom.StickyTip(),
					vdom.Text("Pinned"),
				),
			),
			vdom.Section(vdom.ID("titles"),
				vdom.H2(vdom.Text("Native titles")),
				vdom.Button(vdom.ID("print"), vdom.TitleAttr("Print the document"), vdom.Text("Print")),
				vdom.A(vdom.ID("help"), vdom.Href("#"), vdom.TitleAttr("Open the manual"), vdom.Text("Help")),
			),
			vdom.Section(vdom.ID("nested"), vdom.Tip("Anything in this toolbar"),
				vdom.H2(vdom.Text("Inherited")),
				vdom.Span(vdom.ID("bold"), vdom.Strong(vdom.Text("B"))),
				vdom.Span(vdom.ID("italic"), vdom.Em(vdom.Text("I"))),
			),
			vdom.Section(vdom.ID("catalog"),
				vdom.H2(vdom.Text("Catalog")),
				vdom.P(vdom.Text("These elements get their tips from --catalog.")),
				vdom.Button(vdom.ID("share"), vdom.Text("Share")),
				vdom.Button(vdom.ID("archive"), vdom.Text("Archive")),
			),
		),
	)
}
