package control

import (
	"math"

	"github.com/san-kum/clothsim/internal/lattice"
)

// PointerState is the current and previous pointer sample in surface
// coordinates.
type PointerState struct {
	X, Y         float64
	PrevX, PrevY float64
	Primed       bool
}

// Drag turns pointer motion into velocity impulses on nearby nodes.
// Used for user interaction with the cloth (mouse drag).
type Drag struct {
	Radius  float64
	Pointer PointerState
	// AffectLocked keeps writing impulses into anchor velocities. They never
	// reach positions since locked nodes are not integrated.
	AffectLocked bool
}

func NewDrag(radius float64, affectLocked bool) *Drag {
	return &Drag{Radius: radius, AffectLocked: affectLocked}
}

// Prime sets the baseline sample without imparting an impulse.
func (d *Drag) Prime(x, y float64) {
	d.Pointer = PointerState{X: x, Y: y, PrevX: x, PrevY: y, Primed: true}
}

// Move records a pointer sample at (x, y). The delta from the previous sample
// is added directly to the velocity of every node strictly closer than Radius
// to (x, y). The first sample only establishes a baseline. Returns the number
// of nodes that received the impulse.
func (d *Drag) Move(l *lattice.Lattice, x, y float64) int {
	if !d.Pointer.Primed {
		d.Prime(x, y)
		return 0
	}

	dx := x - d.Pointer.X
	dy := y - d.Pointer.Y
	d.Pointer = PointerState{X: x, Y: y, PrevX: d.Pointer.X, PrevY: d.Pointer.Y, Primed: true}

	if dx == 0 && dy == 0 {
		return 0
	}

	affected := 0
	l.Each(func(_, _ int, n *lattice.Node) {
		if n.Locked && !d.AffectLocked {
			return
		}
		if math.Hypot(n.X-x, n.Y-y) < d.Radius {
			n.VX += dx
			n.VY += dy
			affected++
		}
	})
	return affected
}

// Position returns the latest pointer sample.
func (d *Drag) Position() (x, y float64) {
	return d.Pointer.X, d.Pointer.Y
}
