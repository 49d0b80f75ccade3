package vdom

import "testing"

func TestCreateElement(t *testing.T) {
	node := Div(
		ID("main"),
		Class("card", "active"),
		Data("qtip", "Hello"),
		nil,
		"text",
		[]*VNode{Span(), nil, Em()},
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("got %v <%s>, want element <div>", node.Kind, node.Tag)
	}
	if got, _ := node.Attr("class"); got != "card active" {
		t.Errorf("class = %q, want %q", got, "card active")
	}
	if got, _ := node.Attr("data-qtip"); got != "Hello" {
		t.Errorf("data-qtip = %q", got)
	}
	if len(node.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(node.Children))
	}
	if node.Children[0].Kind != KindText || node.Children[0].Text != "text" {
		t.Error("string argument should become a text child")
	}
	if !node.HasClass("active") || node.HasClass("hidden") {
		t.Error("HasClass returned wrong result")
	}
}

func TestKeyAttr(t *testing.T) {
	node := Li(Key("item-1"))
	if node.Key != "item-1" {
		t.Errorf("Key = %q, want item-1", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key should not be stored as a prop")
	}
}

func TestAttrString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"x", "x"},
		{true, "true"},
		{false, "false"},
		{42, "42"},
		{int64(7), "7"},
		{1.5, "1.5"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := AttrString(tt.in); got != tt.want {
			t.Errorf("AttrString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("img") || IsVoidElement("div") {
		t.Error("IsVoidElement returned wrong result")
	}
}

func TestFragment(t *testing.T) {
	nodes := []*VNode{Li(Text("a")), nil, Li(Text("b"))}
	frag := Fragment(nodes, If(false, P()), "tail", 42)
	if frag.Kind != KindFragment || len(frag.Children) != 3 {
		t.Errorf("fragment = %v with %d children, want 3", frag.Kind, len(frag.Children))
	}
}

func TestTipAttrs(t *testing.T) {
	node := Button(
		Tip("Delete the row"),
		TipTitle("Delete"),
		TipWidth(180),
		TipClass("qtip-warning"),
		TipAlign("b-t?"),
		TipAnchor("top"),
		StickyTip(),
		AriaHidden(false),
	)

	want := map[string]string{
		"data-qtip":   "Delete the row",
		"data-qtitle": "Delete",
		"data-qwidth": "180",
		"data-qclass": "qtip-warning",
		"data-qalign": "b-t?",
		"data-anchor": "top",
		"data-hide":   "user",
		"aria-hidden": "false",
	}
	for k, v := range want {
		if got, ok := node.Attr(k); !ok || got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}
