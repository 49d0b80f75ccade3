package vdom

import "testing"

func TestHIDGenerator(t *testing.T) {
	gen := NewHIDGenerator()
	for i, want := range []string{"h1", "h2", "h3"} {
		if got := gen.Next(); got != want {
			t.Errorf("Next() #%d = %v, want %v", i+1, got, want)
		}
	}
}

func TestAssignHIDs(t *testing.T) {
	t.Run("every element gets a handle", func(t *testing.T) {
		tree := Div(
			H1(Text("Title")),
			P(Span(Text("nested"))),
		)
		AssignHIDs(tree, NewHIDGenerator())

		if tree.HID != "h1" {
			t.Errorf("Div HID = %v, want h1", tree.HID)
		}
		if tree.Children[0].HID != "h2" {
			t.Errorf("H1 HID = %v, want h2", tree.Children[0].HID)
		}
		if tree.Children[1].Children[0].HID != "h4" {
			t.Errorf("Span HID = %v, want h4", tree.Children[1].Children[0].HID)
		}
		if text := tree.Children[0].Children[0]; text.HID != "" {
			t.Errorf("text node got HID %v", text.HID)
		}
	})

	t.Run("ids become handles", func(t *testing.T) {
		tree := Div(Button(ID("save")), Button(ID("save")))
		AssignHIDs(tree, NewHIDGenerator())

		if tree.Children[0].HID != "save" {
			t.Errorf("first button HID = %v, want save", tree.Children[0].HID)
		}
		if tree.Children[1].HID == "save" {
			t.Error("duplicate id reused as handle")
		}
	})

	t.Run("generated handles skip taken ids", func(t *testing.T) {
		tree := Div(ID("h2"), Span(), Span())
		AssignHIDs(tree, NewHIDGenerator())

		seen := map[string]bool{tree.HID: true}
		for _, c := range tree.Children {
			if seen[c.HID] {
				t.Fatalf("handle %v assigned twice", c.HID)
			}
			seen[c.HID] = true
		}
	})
}
