package chem

const (
	GridColumns = 18
	// GridRows includes a spacer row between the main table and the f-block.
	GridRows       = 10
	lanthanideRow  = 9
	actinideRow    = 10
	fBlockFirstCol = 3
)

// Position returns the 1-based grid row and column of an element on the
// standard 18-column table. Lanthanides and actinides sit on rows 9 and 10.
func Position(number int) (row, col int) {
	switch {
	case number == 1:
		return 1, 1
	case number == 2:
		return 1, 18
	case number <= 18:
		start := 3
		row = 2
		if number >= 11 {
			start, row = 11, 3
		}
		off := number - start
		if off < 2 {
			return row, off + 1
		}
		return row, off + 11
	case number <= 54:
		start, row := 19, 4
		if number >= 37 {
			start, row = 37, 5
		}
		return row, number - start + 1
	case number <= 86:
		return heavyPosition(number, 55, 6, lanthanideRow)
	case number <= MaxNumber:
		return heavyPosition(number, 87, 7, actinideRow)
	}
	return 0, 0
}

func heavyPosition(number, start, row, fRow int) (int, int) {
	switch off := number - start; {
	case off < 2:
		return row, off + 1
	case off < 17:
		return fRow, fBlockFirstCol + off - 2
	default:
		return row, off - 13
	}
}

// Grid lays the catalog out as rows of atomic numbers; empty cells are 0.
func (c *Catalog) Grid() [][]int {
	grid := make([][]int, GridRows)
	for i := range grid {
		grid[i] = make([]int, GridColumns)
	}
	for _, e := range c.elements {
		r, col := Position(e.Number)
		if r == 0 {
			continue
		}
		grid[r-1][col-1] = e.Number
	}
	return grid
}
