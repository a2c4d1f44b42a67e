package export

import (
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/sim"
)

// Draw replays a stored row-major lattice into r in the same order a tick
// draws it, without the drag overlay.
func Draw(r sim.Renderer, nodes []lattice.Node, rows, cols int) {
	r.Clear()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(nodes) {
				return
			}
			n := nodes[i]
			r.DrawNode(n.X, n.Y, n.Locked)
			if col+1 < cols && i+1 < len(nodes) {
				r.DrawSegment(n.X, n.Y, nodes[i+1].X, nodes[i+1].Y)
			}
			if row+1 < rows && i+cols < len(nodes) {
				r.DrawSegment(n.X, n.Y, nodes[i+cols].X, nodes[i+cols].Y)
			}
		}
	}
}
