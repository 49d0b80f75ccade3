package vdom

import (
	"fmt"
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <span>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindRaw                   // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes
	Children []*VNode // Child nodes
	Key      string   // Reconciliation key
	Text     string   // For KindText and KindRaw
	HID      string   // Handle (assigned when a Document is built)
}

// Props holds attributes.
type Props map[string]any

// Attr returns the attribute as a string and whether it is present.
func (v *VNode) Attr(name string) (string, bool) {
	if v == nil || v.Props == nil {
		return "", false
	}
	value, ok := v.Props[name]
	if !ok || value == nil {
		return "", false
	}
	return AttrString(value), true
}

// HasClass reports whether the class attribute contains class.
func (v *VNode) HasClass(class string) bool {
	classes, _ := v.Attr("class")
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// AttrString converts an attribute value to its string form.
func AttrString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
