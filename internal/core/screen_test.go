package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorCoral)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorCoral {
		t.Errorf("GetCell(5, 5) = %+v, expected X in coral", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawTextMultiByte(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawText(0, 0, "7 × 3")

	if got := strings.TrimRight(s.Row(0), " "); got != "7 × 3" {
		t.Errorf("Row(0) = %q, expected %q", got, "7 × 3")
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 1, "Hello")
	if s.Get(18, 1) != 'H' || s.Get(19, 1) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorGreen)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered: text not at expected position")
	}
	if s.GetCell(x, 2).Color != ColorGreen {
		t.Errorf("DrawTextCentered: expected green text")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorDefault)

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'X')
	s.Resize(8, 3)

	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("Resize: got %dx%d, expected 8x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear content")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "de")

	if got := s.String(); got != "abc\nde " {
		t.Errorf("String() = %q", got)
	}
}

func TestRectCentered(t *testing.T) {
	r := NewRect(0, 0, 20, 10).Centered(6, 4)
	if r.X != 7 || r.Y != 3 || r.W != 6 || r.H != 4 {
		t.Errorf("Centered = %+v", r)
	}
	if r.Right() != 13 || r.Bottom() != 7 {
		t.Errorf("Right, Bottom = %d, %d", r.Right(), r.Bottom())
	}
}

func TestActionChoiceIndex(t *testing.T) {
	if i, ok := ActionChoice3.ChoiceIndex(); !ok || i != 2 {
		t.Errorf("ActionChoice3.ChoiceIndex() = %d, %v", i, ok)
	}
	if _, ok := ActionConfirm.ChoiceIndex(); ok {
		t.Error("ActionConfirm should not be a choice")
	}

	f := FrameOf(ActionAdd, ActionConfirm)
	if !f.Has(ActionAdd) || !f.Has(ActionConfirm) || f.Has(ActionReset) {
		t.Errorf("FrameOf: unexpected actions %v", f.Actions)
	}
	f.Clear()
	if f.Has(ActionAdd) {
		t.Error("Clear should drop actions")
	}
}
