// Package viz renders running simulations in the terminal: a braille
// canvas for orbits and trails, driven by a bubbletea program.
package viz

import "strings"

// brailleBase is the empty braille cell; each of the 8 dots in a cell is
// one bit above it.
const brailleBase = 0x2800

// dotBits maps a sub-pixel inside one cell, indexed (y%4)*2 + x%2, to its
// braille dot bit. The dot numbering of the block is column-major with the
// bottom row appended, hence the irregular order.
var dotBits = [8]rune{
	0x01, 0x08,
	0x02, 0x10,
	0x04, 0x20,
	0x40, 0x80,
}

// Canvas is a Width x Height cell grid of braille characters, giving a
// (Width*2) x (Height*4) sub-pixel resolution.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set turns on the sub-pixel at (x, y). Out-of-range coordinates are
// silently dropped, so callers can draw bodies that wander off-window.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return
	}
	c.Grid[y/4][x/2] |= dotBits[(y%4)*2+x%2]
}

// Clear resets every cell to the empty braille character.
func (c *Canvas) Clear() {
	for _, row := range c.Grid {
		for j := range row {
			row[j] = brailleBase
		}
	}
}

// Project maps a world coordinate inside the [-window, window] square onto
// sub-pixel coordinates. World y grows upward, canvas y downward.
func (c *Canvas) Project(wx, wy, window float64) (int, int) {
	px := (wx + window) / (2 * window) * float64(c.Width*2-1)
	py := (window - wy) / (2 * window) * float64(c.Height*4-1)
	return int(px + 0.5), int(py + 0.5)
}

// DrawLine rasterizes the segment with Bresenham's algorithm in its
// signed-error form, stepping whichever axis halves the error.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	e := dx + dy
	for {
		c.Set(x0, y0)
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

// DrawMarker draws a 2x2 blob, used for body positions so they read
// heavier than trail points.
func (c *Canvas) DrawMarker(x, y int) {
	c.Set(x, y)
	c.Set(x+1, y)
	c.Set(x, y+1)
	c.Set(x+1, y+1)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		for _, cell := range row {
			b.WriteRune(cell)
		}
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
