package tui

import "strings"

// Braille cells hold a 2x4 grid of dots, which gives the chart four times the
// vertical resolution of plain characters.
const (
	dotsPerCellX = 2
	dotsPerCellY = 4
	brailleBlank = 0x2800
)

var brailleDots = [dotsPerCellY][dotsPerCellX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type brailleCanvas struct {
	cols, rows int
	cells      []rune
}

func newBrailleCanvas(cols, rows int) *brailleCanvas {
	return &brailleCanvas{
		cols:  cols,
		rows:  rows,
		cells: make([]rune, cols*rows),
	}
}

// dotSize is the canvas size in dots.
func (c *brailleCanvas) dotSize() (int, int) {
	return c.cols * dotsPerCellX, c.rows * dotsPerCellY
}

// set lights the dot at (x, y); out of range dots are ignored.
func (c *brailleCanvas) set(x, y int) {
	w, h := c.dotSize()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	cell := (y/dotsPerCellY)*c.cols + x/dotsPerCellX
	c.cells[cell] |= brailleDots[y%dotsPerCellY][x%dotsPerCellX]
}

// line draws from (x0, y0) to (x1, y1) with Bresenham's algorithm.
func (c *brailleCanvas) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *brailleCanvas) lines() []string {
	out := make([]string, c.rows)
	var b strings.Builder
	for r := 0; r < c.rows; r++ {
		b.Reset()
		for _, bits := range c.cells[r*c.cols : (r+1)*c.cols] {
			if bits == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(brailleBlank + bits)
		}
		out[r] = b.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
