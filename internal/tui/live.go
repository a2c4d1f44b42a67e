package tui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/clothsim/internal/physics"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// glyphs in increasing priority; a cell keeps the highest one drawn into it
const (
	glyphEmpty   = ' '
	glyphPointer = '*'
	glyphSpring  = '.'
	glyphNode    = 'o'
	glyphAnchor  = '#'
)

var priority = map[rune]int{
	glyphEmpty:   0,
	glyphPointer: 1,
	glyphSpring:  2,
	glyphNode:    3,
	glyphAnchor:  4,
}

// LiveRenderer draws the cloth with plain ASCII characters and repaints the
// whole terminal on every Flush. It needs no terminal features beyond ANSI
// clear, so it also works when output is piped to a file.
type LiveRenderer struct {
	out            io.Writer
	title          string
	width, height  int
	scaleX, scaleY float64
	canvas         [][]rune
}

// NewLiveRenderer maps a surfaceW x surfaceH world onto width x height
// character cells.
func NewLiveRenderer(out io.Writer, title string, width, height int, surfaceW, surfaceH float64) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	r := &LiveRenderer{
		out:    out,
		title:  title,
		width:  width,
		height: height,
		scaleX: float64(width) / surfaceW,
		scaleY: float64(height) / surfaceH,
		canvas: canvas,
	}
	r.Clear()
	return r
}

func (r *LiveRenderer) Clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = glyphEmpty
		}
	}
}

func (r *LiveRenderer) cell(x, y float64) (int, int) {
	return int(math.Floor(x * r.scaleX)), int(math.Floor(y * r.scaleY))
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	if priority[c] >= priority[r.canvas[y][x]] {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) DrawNode(x, y float64, locked bool) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	cx, cy := r.cell(x, y)
	if locked {
		r.set(cx, cy, glyphAnchor)
	} else {
		r.set(cx, cy, glyphNode)
	}
}

func (r *LiveRenderer) DrawSegment(ax, ay, bx, by float64) {
	for _, v := range [4]float64{ax, ay, bx, by} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}
	x1, y1 := r.cell(ax, ay)
	x2, y2 := r.cell(bx, by)
	r.line(x1, y1, x2, y2, glyphSpring)
}

// DrawCircle marks the drag radius with a ring of points.
func (r *LiveRenderer) DrawCircle(cx, cy, radius float64) {
	const points = 32
	for i := 0; i < points; i++ {
		a := 2 * math.Pi * float64(i) / points
		x, y := r.cell(cx+radius*math.Cos(a), cy+radius*math.Sin(a))
		r.set(x, y, glyphPointer)
	}
}

func (r *LiveRenderer) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Frame returns the current canvas with a header and a status line.
func (r *LiveRenderer) Frame(s *sim.Simulator) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs  tick=%d  %s\n", r.title, s.Time(), s.Ticks(), s.Scheme()))
	b.WriteString("  " + strings.Repeat("-", r.width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", r.width) + "\n")

	l := s.Lattice()
	cx, cy := l.Centroid()
	b.WriteString(fmt.Sprintf("  ke=%.2f vmax=%.2f centroid=(%.1f, %.1f)\n",
		physics.KineticEnergy(l), physics.MaxSpeed(l), cx, cy))
	return b.String()
}

// Flush repaints the terminal. It fits sim.Driver's OnFrame hook.
func (r *LiveRenderer) Flush(s *sim.Simulator) {
	fmt.Fprint(r.out, clearScreen+r.Frame(s))
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
