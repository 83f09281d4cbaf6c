package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent horizontal (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
		{"single pixel overlap", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
		{"empty rect never overlaps", NewRect(0, 0, 10, 10), NewRect(5, 5, 0, 0), false},
		// player (inset 2) and bullet (inset 10) on the same 36px tile
		{"player and bullet on same tile", NewRect(36, 36, 34, 34), NewRect(36, 36, 26, 26), true},
		{"player and bullet on neighbouring tiles", NewRect(36, 36, 34, 34), NewRect(72, 36, 26, 26), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectTranslateAndMoveTo(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	moved := r.Translate(3, -4)
	if moved != NewRect(8, 6, 20, 15) {
		t.Errorf("Translate() = %+v", moved)
	}
	if r.X != 5 || r.Y != 10 {
		t.Error("Translate must not mutate the receiver")
	}
	if got := r.MoveTo(0, 0); got != NewRect(0, 0, 20, 15) {
		t.Errorf("MoveTo() = %+v", got)
	}
	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("edges = (%d, %d), expected (25, 25)", r.Right(), r.Bottom())
	}
}

func TestClampAndAbs(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs is wrong")
	}
}

func TestInputFrameKeepsOrderPerPlayer(t *testing.T) {
	f := NewInputFrame(4)
	f.Add(Player1, ActionUp)
	f.Add(Player2, ActionLeft)
	f.Add(Player1, ActionUp)

	p1 := f.For(Player1)
	if len(p1) != 2 || p1[0] != ActionUp || p1[1] != ActionUp {
		t.Errorf("For(Player1) = %v, expected [Up Up]", p1)
	}
	if p2 := f.For(Player2); len(p2) != 1 || p2[0] != ActionLeft {
		t.Errorf("For(Player2) = %v, expected [Left]", p2)
	}

	f.Clear()
	if f.Len() != 0 {
		t.Errorf("Len() after Clear = %d", f.Len())
	}
	if ActionHelp.IsDirectional() || !ActionRight.IsDirectional() {
		t.Error("IsDirectional misclassifies actions")
	}
}
