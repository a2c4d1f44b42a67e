package viz

import "math"

// TermRenderer draws simulator output onto a Braille canvas. World
// coordinates are scaled so that the configured surface fills the canvas.
type TermRenderer struct {
	canvas         *Canvas
	scaleX, scaleY float64
}

// NewTermRenderer maps a surfaceW x surfaceH world onto c.
func NewTermRenderer(c *Canvas, surfaceW, surfaceH float64) *TermRenderer {
	r := &TermRenderer{canvas: c, scaleX: 1, scaleY: 1}
	if surfaceW > 0 {
		r.scaleX = float64(c.SubWidth()) / surfaceW
	}
	if surfaceH > 0 {
		r.scaleY = float64(c.SubHeight()) / surfaceH
	}
	return r
}

func (r *TermRenderer) Canvas() *Canvas { return r.canvas }

func (r *TermRenderer) toSub(x, y float64) (int, int) {
	return int(math.Round(x * r.scaleX)), int(math.Round(y * r.scaleY))
}

// ToWorld maps a sub-pixel position back to world coordinates.
func (r *TermRenderer) ToWorld(sx, sy float64) (float64, float64) {
	return sx / r.scaleX, sy / r.scaleY
}

// CellToWorld maps the center of a terminal cell to world coordinates.
func (r *TermRenderer) CellToWorld(col, row int) (float64, float64) {
	return r.ToWorld(float64(col*2)+1, float64(row*4)+2)
}

func (r *TermRenderer) Clear() { r.canvas.Clear() }

func (r *TermRenderer) DrawNode(x, y float64, locked bool) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	sx, sy := r.toSub(x, y)
	r.canvas.Set(sx, sy)
	if locked {
		r.canvas.Set(sx+1, sy)
		r.canvas.Set(sx, sy+1)
		r.canvas.Set(sx+1, sy+1)
		r.canvas.Mark(sx, sy)
	}
}

func (r *TermRenderer) DrawSegment(ax, ay, bx, by float64) {
	for _, v := range [4]float64{ax, ay, bx, by} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}
	x0, y0 := r.toSub(ax, ay)
	x1, y1 := r.toSub(bx, by)
	r.canvas.DrawLine(x0, y0, x1, y1)
}

func (r *TermRenderer) DrawCircle(cx, cy, radius float64) {
	x, y := r.toSub(cx, cy)
	rx := int(math.Round(radius * r.scaleX))
	ry := int(math.Round(radius * r.scaleY))
	r.canvas.DrawEllipse(x, y, rx, ry)
}
