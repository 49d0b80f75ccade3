package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/vango-dev/quicktip/pkg/vdom"
)

// HIDAttr is the attribute carrying an element's handle in rendered HTML.
const HIDAttr = "data-hid"

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Development only.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// OmitHIDs drops data-hid attributes, for markup the client never
	// reports events from.
	OmitHIDs bool
}

// Renderer renders VNode trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if node.HID != "" && !r.config.OmitHIDs {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, HIDAttr, escapeAttr(node.HID)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if isVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := len(node.Children) > 0 && !isInlineElement(tag) && !textOnly(node)
	if r.config.Pretty && block {
		io.WriteString(w, "\n")
	}
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}
	if r.config.Pretty && block {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes writes attributes in name order so output is stable.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		if key == "key" || key == HIDAttr {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		if isBooleanAttr(key) {
			if b, ok := value.(bool); ok {
				if b {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return err
					}
				}
				continue
			}
		}

		// Empty values are kept: an empty data-qtip is meaningful markup.
		if value == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(vdom.AttrString(value))); err != nil {
			return err
		}
	}
	return nil
}

func textOnly(node *vdom.VNode) bool {
	for _, child := range node.Children {
		if child != nil && child.Kind != vdom.KindText {
			return false
		}
	}
	return true
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
