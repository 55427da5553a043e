package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot grid with one colour and one optional text rune
// per cell. Text overrides dots when the canvas is printed.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	colors        [][]string
	text          [][]rune
	pen           string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.Grid = make([][]rune, h)
	c.colors = make([][]string, h)
	c.text = make([][]rune, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.colors[i] = make([]string, w)
		c.text[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// SetPen selects the colour recorded for cells touched by later draws.
func (c *Canvas) SetPen(color string) { c.pen = color }

// Set lights the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if c.pen != "" {
		c.colors[row][col] = c.pen
	}
}

// Unset clears the dot at (x, y).
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.colors[i][j] = ""
			c.text[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm. With dash > 0 the line
// alternates dash dots on and dash dots off.
func (c *Canvas) DrawLine(x0, y0, x1, y1, dash int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for i := 0; ; i++ {
		if dash <= 0 || (i/dash)%2 == 0 {
			c.Set(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle lights every dot within r of (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.Set(cx+x, cy+y)
			}
		}
	}
}

// Circle draws the outline of a circle.
func (c *Canvas) Circle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y, d := r, 0, 1-r
	for x >= y {
		for _, p := range [][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// Text writes s starting at cell (col, row).
func (c *Canvas) Text(col, row int, s string) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		if col >= 0 && col < c.Width {
			c.text[row][col] = r
			if c.pen != "" {
				c.colors[row][col] = c.pen
			}
		}
		col++
	}
}

func (c *Canvas) cell(row, col int) rune {
	if t := c.text[row][col]; t != 0 {
		return t
	}
	return c.Grid[row][col]
}

// String returns the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.Grid {
		for col := range c.Grid[row] {
			b.WriteRune(c.cell(row, col))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Styled returns the canvas with cell colours applied, batching runs of
// equal colour into one style.
func (c *Canvas) Styled() string {
	var b strings.Builder
	for row := range c.Grid {
		var run strings.Builder
		color := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if color == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(run.String()))
			}
			run.Reset()
		}
		for col := range c.Grid[row] {
			if cc := c.colors[row][col]; cc != color {
				flush()
				color = cc
			}
			run.WriteRune(c.cell(row, col))
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
