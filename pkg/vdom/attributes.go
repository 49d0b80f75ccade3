package vdom

import (
	"strconv"
	"strings"
)

func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Prop creates an arbitrary attribute.
func Prop(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute. Documents use it as the element's handle.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// TitleAttr sets the title attribute (the browser's native tooltip).
func TitleAttr(title string) Attr { return attr("title", title) }

// Data creates a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Key creates a key attribute. It is never rendered.
func Key(key string) Attr { return attr("key", key) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", true) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaHidden sets aria-hidden.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }

// Tip markup under the default "data-" convention.

// Tip sets data-qtip, the tip text.
func Tip(text string) Attr { return Data("qtip", text) }

// TipTitle sets data-qtitle, the tip header.
func TipTitle(title string) Attr { return Data("qtitle", title) }

// TipWidth sets data-qwidth in pixels.
func TipWidth(px int) Attr { return Data("qwidth", strconv.Itoa(px)) }

// TipClass sets data-qclass, an extra class on the panel while this tip
// is shown.
func TipClass(class string) Attr { return Data("qclass", class) }

// TipAlign sets data-qalign, e.g. "tl-bl?".
func TipAlign(spec string) Attr { return Data("qalign", spec) }

// TipAnchor sets data-anchor to "top", "bottom", "left" or "right".
func TipAnchor(side string) Attr { return Data("anchor", side) }

// StickyTip sets data-hide="user": the tip is not dismissed on a timer.
func StickyTip() Attr { return Data("hide", "user") }
