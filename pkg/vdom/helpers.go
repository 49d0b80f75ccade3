package vdom

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Raw creates a node rendered without escaping. The content must be
// trusted markup.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0),
	}
	node.Children = appendChildren(node.Children, children)
	return node
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// appendChildren appends the child-like values in args to children:
// nodes, node slices and strings (as text). Anything else is dropped.
func appendChildren(children []*VNode, args []any) []*VNode {
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				children = append(children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					children = append(children, c)
				}
			}
		case string:
			children = append(children, Text(v))
		}
	}
	return children
}
