package integrators

import (
	"math"

	"github.com/san-kum/clothsim/internal/lattice"
)

// Damped is a fixed-step semi-implicit Euler integrator with exponential
// velocity decay. Velocity is updated from force first, position from the new
// velocity, then velocity decays by exp(-dt*damping). The decay runs every
// step, with or without force.
type Damped struct {
	DeltaTime   float64
	NodeMass    float64
	DampingRate float64
	// MaxSpeed clamps the velocity magnitude after decay. Zero disables it.
	MaxSpeed float64

	decay float64
}

func NewDamped(dt, mass, damping, maxSpeed float64) *Damped {
	return &Damped{
		DeltaTime:   dt,
		NodeMass:    mass,
		DampingRate: damping,
		MaxSpeed:    maxSpeed,
		decay:       math.Exp(-dt * damping),
	}
}

// Decay returns the per-step velocity multiplier.
func (d *Damped) Decay() float64 {
	return d.decay
}

// Step advances one node by DeltaTime under force (fx, fy). Locked nodes are
// left untouched.
func (d *Damped) Step(n *lattice.Node, fx, fy float64) {
	if n.Locked {
		return
	}

	dt := d.DeltaTime
	n.VX += fx * dt / d.NodeMass
	n.VY += fy * dt / d.NodeMass

	n.X += n.VX * dt
	n.Y += n.VY * dt

	n.VX *= d.decay
	n.VY *= d.decay

	if d.MaxSpeed > 0 {
		if speed := math.Hypot(n.VX, n.VY); speed > d.MaxSpeed {
			scale := d.MaxSpeed / speed
			n.VX *= scale
			n.VY *= scale
		}
	}
}
