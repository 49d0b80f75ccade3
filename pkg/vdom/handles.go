package vdom

import "strconv"

// HIDGenerator hands out handles for elements without a usable id. It is
// not safe for concurrent use; each document builds its own.
type HIDGenerator struct {
	counter uint32
}

// NewHIDGenerator creates a generator starting at "h1".
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next handle: "h1", "h2", ...
func (g *HIDGenerator) Next() string {
	g.counter++
	return "h" + strconv.FormatUint(uint64(g.counter), 10)
}

// AssignHIDs walks the tree and gives every element a handle. Elements with
// a unique id attribute use it as their handle so that registrations keyed
// by id survive re-renders; the rest get generated handles.
// Existing handles are kept.
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	seen := make(map[string]bool)
	assignHIDs(node, gen, seen)
}

func assignHIDs(node *VNode, gen *HIDGenerator, seen map[string]bool) {
	if node == nil {
		return
	}

	if node.Kind == KindElement {
		if node.HID == "" {
			if id, ok := node.Attr("id"); ok && id != "" && !seen[id] {
				node.HID = id
			}
		}
		for node.HID == "" || seen[node.HID] {
			node.HID = gen.Next()
		}
		seen[node.HID] = true
	}

	for _, child := range node.Children {
		assignHIDs(child, gen, seen)
	}
}
