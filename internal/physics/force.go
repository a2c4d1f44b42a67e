package physics

import (
	"math"

	"github.com/san-kum/clothsim/internal/lattice"
)

// Params are the force-law tunables shared by every node.
type Params struct {
	RestLength float64
	Stiffness  float64
	Gravity    float64
	NodeMass   float64
}

// SpringForce returns the Hookean force that the spring between a and b
// exerts on a. The force points toward b when stretched past RestLength and
// away from b when compressed. ok is false when the nodes coincide and the
// direction is undefined.
func SpringForce(a, b *lattice.Node, p Params) (fx, fy float64, ok bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 0, 0, false
	}

	magnitude := (dist - p.RestLength) * p.Stiffness
	return dx / dist * magnitude, dy / dist * magnitude, true
}

// NetForce sums gravity and the springs to every existing neighbour of
// (row, col). Coincident neighbours contribute nothing for this call.
func NetForce(l *lattice.Lattice, row, col int, p Params) (fx, fy float64) {
	var buf [4]*lattice.Node
	return netForce(l, row, col, p, buf[:0])
}

func netForce(l *lattice.Lattice, row, col int, p Params, buf []*lattice.Node) (fx, fy float64) {
	node := l.At(row, col)
	if node == nil {
		return 0, 0
	}

	fy = p.Gravity * p.NodeMass
	for _, other := range l.AppendNeighbors(buf, row, col) {
		sx, sy, ok := SpringForce(node, other, p)
		if !ok {
			continue
		}
		fx += sx
		fy += sy
	}
	return fx, fy
}

// Model evaluates forces against a source lattice that may differ from the
// one being integrated. With source == target the reads see nodes already
// updated this tick.
type Model struct {
	Params Params
	buf    [4]*lattice.Node
}

func NewModel(p Params) *Model {
	return &Model{Params: p}
}

func (m *Model) NetForce(source *lattice.Lattice, row, col int) (fx, fy float64) {
	return netForce(source, row, col, m.Params, m.buf[:0])
}
