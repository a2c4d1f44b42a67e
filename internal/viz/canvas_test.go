package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/clothsim/internal/sim"
)

var _ sim.Renderer = (*TermRenderer)(nil)

func lit(c *Canvas, x, y int) bool {
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	c.Set(3, 3)
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}
	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("expected empty cell, got %U", c.Grid[0][0])
	}

	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(5, 2)
	c.DrawLine(0, 0, 9, 0)
	for x := 0; x < 10; x++ {
		if !lit(c, x, 0) {
			t.Errorf("pixel %d not set", x)
		}
	}
}

func TestCanvasDrawEllipse(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawEllipse(20, 20, 6, 6)

	for _, p := range [][2]int{{26, 20}, {14, 20}, {20, 26}, {20, 14}} {
		if !lit(c, p[0], p[1]) {
			t.Errorf("expected (%d,%d) on the circle", p[0], p[1])
		}
	}
	if lit(c, 20, 20) {
		t.Error("circle center should stay empty")
	}
}

func TestCanvasHighlight(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Set(2, 0)
	c.Mark(2, 0)

	if !c.Highlight[0][1] || c.Highlight[0][0] {
		t.Errorf("unexpected highlight row %v", c.Highlight[0])
	}

	out := c.StyledString(lipgloss.NewStyle(), lipgloss.NewStyle())
	if out != c.String() {
		t.Errorf("plain styles should match String(): %q vs %q", out, c.String())
	}

	c.Clear()
	if c.Highlight[0][1] {
		t.Error("clear should drop highlights")
	}
}

func TestTermRendererScales(t *testing.T) {
	c := NewCanvas(10, 5) // 20 x 20 sub-pixels
	r := NewTermRenderer(c, 40, 10)

	r.DrawNode(20, 5, false)
	if !lit(c, 10, 10) {
		t.Error("node not scaled to canvas center")
	}

	r.DrawNode(0, 0, true)
	if !c.Highlight[0][0] {
		t.Error("locked node should be highlighted")
	}

	x, y := r.CellToWorld(5, 2)
	if x != 22 || y != 5 {
		t.Errorf("unexpected world point (%f, %f)", x, y)
	}

	r.Clear()
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r > 0x2800 }) {
		t.Error("clear left pixels behind")
	}
}
