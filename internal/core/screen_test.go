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

	s.SetCell(5, 5, Cell{Rune: 'X', Fg: ColorShip, Bg: ColorObstacle})
	got := s.GetCell(5, 5)
	if got.Rune != 'X' || got.Fg != ColorShip || got.Bg != ColorObstacle {
		t.Errorf("GetCell(5, 5) = %+v", got)
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

func TestScreenDrawTextColor(t *testing.T) {
	s := NewScreen(8, 1)
	s.DrawTextColor(2, 0, "héllo world", ColorHUD)

	if s.Row(0) != "  héllo " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
	if s.GetCell(3, 0).Rune != 'é' || s.GetCell(3, 0).Fg != ColorHUD {
		t.Errorf("multi-byte rune not placed at one cell: %+v", s.GetCell(3, 0))
	}
}

func TestScreenClearAndResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "ABCD")
	s.Clear()
	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("Clear() left %q", s.String())
	}

	s.DrawText(0, 0, "AB")
	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("Resize() gave %dx%d", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("Resize() should clear the buffer")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorDim)

	expected := "┌──┐\n│  │\n└──┘"
	if s.String() != expected {
		t.Errorf("DrawBox() =\n%s\nexpected\n%s", s.String(), expected)
	}
	if s.GetCell(0, 0).Fg != ColorDim {
		t.Error("box should use the given color")
	}
}
