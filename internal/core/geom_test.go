package core

import "testing"

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
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectCentered(t *testing.T) {
	tests := []struct {
		name     string
		outer    Rect
		w, h     int
		expected Rect
	}{
		{"even", NewRect(0, 0, 80, 24), 20, 10, NewRect(30, 7, 20, 10)},
		{"odd leftover", NewRect(0, 0, 11, 5), 4, 2, NewRect(3, 1, 4, 2)},
		{"offset outer", NewRect(0, 2, 40, 20), 20, 10, NewRect(10, 7, 20, 10)},
		{"exact", NewRect(3, 4, 10, 6), 10, 6, NewRect(3, 4, 10, 6)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.outer.Centered(tc.w, tc.h); got != tc.expected {
				t.Errorf("Centered(%d, %d) = %+v, expected %+v", tc.w, tc.h, got, tc.expected)
			}
		})
	}
}

func TestRectFitsAndBelow(t *testing.T) {
	r := NewRect(0, 0, 42, 24)

	if !r.Fits(42, 24) {
		t.Error("rect should fit its own size")
	}
	if r.Fits(43, 1) || r.Fits(1, 25) {
		t.Error("larger rect should not fit")
	}

	play := r.Below(2)
	if play != NewRect(0, 2, 42, 22) {
		t.Errorf("Below(2) = %+v", play)
	}
	if got := r.Below(30); got.H != 0 || got.Y != 24 {
		t.Errorf("Below(30) = %+v, expected empty rect at the bottom", got)
	}
	if got := r.Below(-1); got != r {
		t.Errorf("Below(-1) = %+v, expected unchanged", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name  string
		want  Color
		found bool
	}{
		{"cyan", ColorCyan, true},
		{"Bright_Magenta", ColorBrightMagenta, true},
		{" orange ", ColorOrange, true},
		{"gray", ColorGray, true},
		{"chartreuse", ColorDefault, false},
	}

	for _, tc := range tests {
		got, ok := ParseColor(tc.name)
		if ok != tc.found {
			t.Errorf("ParseColor(%q) found = %v, expected %v", tc.name, ok, tc.found)
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %d, expected %d", tc.name, got, tc.want)
		}
	}
}
