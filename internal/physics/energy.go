package physics

import (
	"math"

	"github.com/san-kum/clothsim/internal/lattice"
)

// KineticEnergy returns sum(vx^2 + vy^2) over unlocked nodes. Mass is left
// out since every node shares it.
func KineticEnergy(l *lattice.Lattice) float64 {
	energy := 0.0
	l.Each(func(_, _ int, n *lattice.Node) {
		if n.Locked {
			return
		}
		energy += n.VX*n.VX + n.VY*n.VY
	})
	return energy
}

// SpringEnergy returns the elastic potential stored in every spring, counting
// each edge once through its right and down neighbours.
func SpringEnergy(l *lattice.Lattice, p Params) float64 {
	energy := 0.0
	l.Each(func(row, col int, n *lattice.Node) {
		for _, other := range [2]*lattice.Node{l.At(row, col+1), l.At(row+1, col)} {
			if other == nil {
				continue
			}
			stretch := math.Hypot(other.X-n.X, other.Y-n.Y) - p.RestLength
			energy += 0.5 * p.Stiffness * stretch * stretch
		}
	})
	return energy
}

// MaxSpeed returns the largest velocity magnitude among unlocked nodes.
func MaxSpeed(l *lattice.Lattice) float64 {
	maxSpeed := 0.0
	l.Each(func(_, _ int, n *lattice.Node) {
		if !n.Locked {
			maxSpeed = math.Max(maxSpeed, n.Speed())
		}
	})
	return maxSpeed
}
