package render

import "github.com/vango-dev/quicktip/pkg/vdom"

func isVoidElement(tag string) bool {
	return vdom.IsVoidElement(tag)
}

// inlineElements keep their children on one line in pretty output.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "br": true, "cite": true,
	"code": true, "em": true, "i": true, "kbd": true, "mark": true,
	"q": true, "s": true, "small": true, "span": true, "strong": true,
	"sub": true, "sup": true, "time": true, "u": true, "button": true,
	"label": true, "title": true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs render as a bare name when true and are omitted when false.
var booleanAttrs = map[string]bool{
	"async":     true,
	"autofocus": true,
	"checked":   true,
	"defer":     true,
	"disabled":  true,
	"hidden":    true,
	"multiple":  true,
	"open":      true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
