package geom

import (
	"errors"
	"testing"
)

func TestParseAlign(t *testing.T) {
	tests := []struct {
		spec string
		want Align
	}{
		{"tl-bl", Align{Self: TopLeft, Ref: BottomLeft}},
		{"tl-bl?", Align{Self: TopLeft, Ref: BottomLeft, Constrain: true}},
		{"br", Align{Self: TopLeft, Ref: BottomRight}},
		{" C-T ", Align{Self: Center, Ref: Top}},
		{"r-l?", Align{Self: Right, Ref: Left, Constrain: true}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseAlign(tt.spec)
			if err != nil {
				t.Fatalf("ParseAlign(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseAlign(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseAlignErrors(t *testing.T) {
	if _, err := ParseAlign(""); !errors.Is(err, ErrEmptyAlign) {
		t.Errorf("empty spec error = %v, want ErrEmptyAlign", err)
	}
	for _, spec := range []string{"xx-bl", "tl-zz", "tl-bl-br", "?"} {
		if _, err := ParseAlign(spec); err == nil {
			t.Errorf("ParseAlign(%q) succeeded, want error", spec)
		}
	}
}

func TestAlignString(t *testing.T) {
	a := MustParseAlign("tr-tl?")
	if a.String() != "tr-tl?" {
		t.Errorf("String() = %q, want tr-tl?", a.String())
	}
}

func TestAlignToXY(t *testing.T) {
	ref := R(100, 100, 50, 20)
	self := Size{W: 80, H: 30}
	viewport := R(0, 0, 800, 600)

	t.Run("below target", func(t *testing.T) {
		got := AlignToXY(ref, self, MustParseAlign("tl-bl"), Point{}, viewport)
		if got != Pt(100, 120) {
			t.Errorf("got %v, want (100,120)", got)
		}
	})

	t.Run("left of target", func(t *testing.T) {
		got := AlignToXY(ref, self, MustParseAlign("tr-tl"), Point{}, viewport)
		if got != Pt(20, 100) {
			t.Errorf("got %v, want (20,100)", got)
		}
	})

	t.Run("centered above with offset", func(t *testing.T) {
		got := AlignToXY(ref, self, MustParseAlign("b-t"), Pt(0, -5), viewport)
		if got != Pt(85, 65) {
			t.Errorf("got %v, want (85,65)", got)
		}
	})

	t.Run("constrained", func(t *testing.T) {
		edge := R(780, 590, 10, 10)
		got := AlignToXY(edge, self, MustParseAlign("tl-br?"), Point{}, viewport)
		if got != Pt(720, 570) {
			t.Errorf("got %v, want (720,570)", got)
		}
	})
}

func TestConstrain(t *testing.T) {
	viewport := R(0, 0, 800, 600)

	tests := []struct {
		name string
		box  Rect
		want Rect
	}{
		{"inside", R(10, 10, 100, 50), R(10, 10, 100, 50)},
		{"past right", R(750, 10, 100, 50), R(700, 10, 100, 50)},
		{"past bottom", R(10, 590, 100, 50), R(10, 550, 100, 50)},
		{"negative", R(-20, -5, 100, 50), R(0, 0, 100, 50)},
		{"wider than viewport", R(50, 0, 900, 50), R(0, 0, 900, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Constrain(tt.box, viewport)
			if got != tt.want {
				t.Errorf("Constrain(%v) = %v, want %v", tt.box, got, tt.want)
			}
		})
	}

	t.Run("empty viewport is ignored", func(t *testing.T) {
		box := R(5000, 5000, 10, 10)
		if got := Constrain(box, Rect{}); got != box {
			t.Errorf("Constrain with empty viewport = %v, want %v", got, box)
		}
	})
}

func TestRect(t *testing.T) {
	r := R(10, 20, 30, 40)
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("Right/Bottom = %d/%d, want 40/60", r.Right(), r.Bottom())
	}
	if !r.Contains(Pt(10, 20)) || r.Contains(Pt(40, 20)) {
		t.Error("Contains should include min edge and exclude max edge")
	}
	if !R(15, 25, 5, 5).In(r) || R(35, 25, 10, 5).In(r) {
		t.Error("In returned wrong result")
	}
	if r.Corner(Center) != Pt(25, 40) {
		t.Errorf("Corner(c) = %v, want (25,40)", r.Corner(Center))
	}
}

func TestSide(t *testing.T) {
	tests := []struct {
		in    string
		side  Side
		align string
		nudge Point
	}{
		{"top", SideTop, "tl-bl", Pt(0, 6)},
		{"BOTTOM", SideBottom, "bl-tl", Pt(0, -6)},
		{"left", SideLeft, "tl-tr", Pt(6, 0)},
		{"right", SideRight, "tr-tl", Pt(-6, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			side, ok := ParseSide(tt.in)
			if !ok || side != tt.side {
				t.Fatalf("ParseSide(%q) = %q, %v", tt.in, side, ok)
			}
			if side.Align().String() != tt.align {
				t.Errorf("Align() = %s, want %s", side.Align(), tt.align)
			}
			if side.Nudge(6) != tt.nudge {
				t.Errorf("Nudge(6) = %v, want %v", side.Nudge(6), tt.nudge)
			}
		})
	}

	if _, ok := ParseSide("diagonal"); ok {
		t.Error("ParseSide accepted an unknown side")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(10, 40, 300) != 40 {
		t.Error("Clamp below min")
	}
	if Clamp(500, 40, 300) != 300 {
		t.Error("Clamp above max")
	}
	if Clamp(500, 40, 0) != 500 {
		t.Error("Clamp with no max")
	}
}
