// Package scene records renderer calls so a frame can be drawn later, on
// whatever goroutine and surface the window toolkit hands out.
package scene

// Kind tags a recorded primitive.
type Kind uint8

const (
	Node Kind = iota
	Anchor
	Segment
	Circle
)

// Shape is one recorded draw call. Segments use all four coordinates,
// nodes and anchors use X1, Y1, circles use X1, Y1 and R.
type Shape struct {
	Kind           Kind
	X1, Y1, X2, Y2 float64
	R              float64
}

// List is a display list. It implements sim.Renderer.
type List struct {
	Shapes []Shape
}

func (l *List) Clear() { l.Shapes = l.Shapes[:0] }

func (l *List) DrawNode(x, y float64, locked bool) {
	kind := Node
	if locked {
		kind = Anchor
	}
	l.Shapes = append(l.Shapes, Shape{Kind: kind, X1: x, Y1: y})
}

func (l *List) DrawSegment(ax, ay, bx, by float64) {
	l.Shapes = append(l.Shapes, Shape{Kind: Segment, X1: ax, Y1: ay, X2: bx, Y2: by})
}

func (l *List) DrawCircle(cx, cy, r float64) {
	l.Shapes = append(l.Shapes, Shape{Kind: Circle, X1: cx, Y1: cy, R: r})
}

// Count returns how many shapes of kind were recorded.
func (l *List) Count(kind Kind) int {
	n := 0
	for _, s := range l.Shapes {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// Swap exchanges the recorded shapes with other's and clears l, so a caller
// can record the next frame while drawing the previous one.
func (l *List) Swap(other *List) {
	l.Shapes, other.Shapes = other.Shapes, l.Shapes
	l.Clear()
}
