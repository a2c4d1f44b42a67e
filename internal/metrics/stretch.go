package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/lattice"
)

// MaxStretch is the largest relative spring extension seen in a run,
// (length - rest) / rest.
type MaxStretch struct {
	name string
	max  float64
}

func NewMaxStretch() *MaxStretch {
	return &MaxStretch{name: "max_stretch"}
}

func (m *MaxStretch) Name() string { return m.name }

func (m *MaxStretch) Observe(l *lattice.Lattice, _ int) {
	rest := l.RestLength()
	l.Each(func(row, col int, n *lattice.Node) {
		for _, other := range [2]*lattice.Node{l.At(row, col+1), l.At(row+1, col)} {
			if other == nil {
				continue
			}
			stretch := (math.Hypot(other.X-n.X, other.Y-n.Y) - rest) / rest
			m.max = math.Max(m.max, stretch)
		}
	})
}

func (m *MaxStretch) Value() float64 { return m.max }

func (m *MaxStretch) Reset() { m.max = 0 }

// AnchorDrift is the largest distance any locked node has moved from where it
// was first observed. It stays zero unless something writes to anchors.
type AnchorDrift struct {
	name    string
	origins map[int][2]float64
	drift   float64
}

func NewAnchorDrift() *AnchorDrift {
	return &AnchorDrift{name: "anchor_drift", origins: make(map[int][2]float64)}
}

func (a *AnchorDrift) Name() string { return a.name }

func (a *AnchorDrift) Observe(l *lattice.Lattice, _ int) {
	cols := l.Cols()
	l.Each(func(row, col int, n *lattice.Node) {
		if !n.Locked {
			return
		}
		key := row*cols + col
		origin, ok := a.origins[key]
		if !ok {
			a.origins[key] = [2]float64{n.X, n.Y}
			return
		}
		a.drift = math.Max(a.drift, math.Hypot(n.X-origin[0], n.Y-origin[1]))
	})
}

func (a *AnchorDrift) Value() float64 { return a.drift }

func (a *AnchorDrift) Reset() {
	a.origins = make(map[int][2]float64)
	a.drift = 0
}
