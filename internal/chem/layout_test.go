package chem

import "testing"

func TestPosition(t *testing.T) {
	tests := []struct {
		number   int
		row, col int
	}{
		{1, 1, 1},
		{2, 1, 18},
		{3, 2, 1},
		{5, 2, 13},
		{10, 2, 18},
		{13, 3, 13},
		{26, 4, 8},
		{54, 5, 18},
		{55, 6, 1},
		{57, 9, 3},
		{71, 9, 17},
		{72, 6, 4},
		{86, 6, 18},
		{89, 10, 3},
		{104, 7, 4},
		{118, 7, 18},
	}

	for _, tt := range tests {
		row, col := Position(tt.number)
		if row != tt.row || col != tt.col {
			t.Errorf("Position(%d) = (%d,%d), want (%d,%d)", tt.number, row, col, tt.row, tt.col)
		}
	}
}

func TestGrid_Unique(t *testing.T) {
	cat := MustLoad()
	seen := make(map[int]bool)
	for _, row := range cat.Grid() {
		for _, n := range row {
			if n == 0 {
				continue
			}
			if seen[n] {
				t.Errorf("element %d placed twice", n)
			}
			seen[n] = true
		}
	}
	if len(seen) != MaxNumber {
		t.Errorf("expected %d placed elements, got %d", MaxNumber, len(seen))
	}
}
