package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{2, 3, true},
		{5, 7, true},
		{6, 3, false},
		{2, 8, false},
		{1, 3, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
	if r.Right() != 6 || r.Bottom() != 8 {
		t.Errorf("Right/Bottom = %d/%d", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 10) != 0 || Clamp(11, 0, 10) != 10 || Clamp(5, 0, 10) != 5 {
		t.Error("Clamp() out of range")
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct{ a, b, expected int }{
		{160, 80, 2},
		{161, 80, 3},
		{0, 4, 0},
		{1, 4, 1},
	}
	for _, tc := range tests {
		if got := CeilDiv(tc.a, tc.b); got != tc.expected {
			t.Errorf("CeilDiv(%d, %d) = %d, expected %d", tc.a, tc.b, got, tc.expected)
		}
	}
}
