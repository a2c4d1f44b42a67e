package viz

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

// Canvas is a monochrome Braille bitmap. Highlight marks cells that should be
// drawn in the accent color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Highlight     [][]bool
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:     w,
		Height:    h,
		Grid:      make([][]rune, h),
		Highlight: make([][]bool, h),
	}
	for i := range c.Grid {
		c.Highlight[i] = make([]bool, w)
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// SubWidth and SubHeight are the canvas size in sub-pixels.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	mask := ^rune(pixelMap[subY][subX])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < 0x2800 {
		c.Grid[row][col] = 0x2800
	}
}

// Mark flags the cell holding sub-pixel (x, y) for highlighting.
func (c *Canvas) Mark(x, y int) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Highlight[y/4][x/2] = true
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.Highlight[i][j] = false
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
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

// DrawEllipse outlines an axis-aligned ellipse with the midpoint algorithm.
// Equal radii draw a circle.
func (c *Canvas) DrawEllipse(cx, cy, rx, ry int) {
	if rx < 0 || ry < 0 {
		return
	}
	if rx == 0 || ry == 0 {
		c.DrawLine(cx-rx, cy-ry, cx+rx, cy+ry)
		return
	}

	plot := func(x, y int) {
		c.Set(cx+x, cy+y)
		c.Set(cx-x, cy+y)
		c.Set(cx+x, cy-y)
		c.Set(cx-x, cy-y)
	}

	rx2, ry2 := rx*rx, ry*ry
	x, y := 0, ry
	px, py := 0, 2*rx2*y

	// region 1: slope shallower than -1
	p := ry2 - rx2*ry + rx2/4
	for px < py {
		plot(x, y)
		x++
		px += 2 * ry2
		if p < 0 {
			p += ry2 + px
		} else {
			y--
			py -= 2 * rx2
			p += ry2 + px - py
		}
	}

	// region 2
	p = ry2*(x*x+x) + rx2*(y-1)*(y-1) - rx2*ry2
	for y >= 0 {
		plot(x, y)
		y--
		py -= 2 * rx2
		if p > 0 {
			p += rx2 - py
		} else {
			x++
			px += 2 * ry2
			p += rx2 - py + px
		}
	}
}

// StyledString renders the canvas with highlighted cells in accent and the
// rest in base.
func (c *Canvas) StyledString(base, accent lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Highlight[i][j] == c.Highlight[i][start] {
				continue
			}
			style := base
			if c.Highlight[i][start] {
				style = accent
			}
			b.WriteString(style.Render(string(row[start:j])))
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
