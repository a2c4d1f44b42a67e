package metrics

import (
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/physics"
)

// Energy is the mean mechanical energy per tick: kinetic plus the potential
// stored in the springs.
type Energy struct {
	name        string
	params      physics.Params
	samples     int
	totalEnergy float64
}

func NewEnergy(p physics.Params) *Energy {
	return &Energy{
		name:   "energy",
		params: p,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(l *lattice.Lattice, _ int) {
	ke := 0.5 * e.params.NodeMass * physics.KineticEnergy(l)
	e.totalEnergy += ke + physics.SpringEnergy(l, e.params)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// PeakKinetic tracks the largest kinetic energy seen in a run.
type PeakKinetic struct {
	name string
	peak float64
}

func NewPeakKinetic() *PeakKinetic {
	return &PeakKinetic{name: "peak_kinetic"}
}

func (p *PeakKinetic) Name() string { return p.name }

func (p *PeakKinetic) Observe(l *lattice.Lattice, _ int) {
	if ke := physics.KineticEnergy(l); ke > p.peak {
		p.peak = ke
	}
}

func (p *PeakKinetic) Value() float64 { return p.peak }

func (p *PeakKinetic) Reset() { p.peak = 0 }

// Settling reports the last tick at which kinetic energy was above threshold.
// A value of zero means the cloth never moved that fast.
type Settling struct {
	name      string
	threshold float64
	last      int
}

func NewSettling(threshold float64) *Settling {
	return &Settling{
		name:      "settle_tick",
		threshold: threshold,
	}
}

func (s *Settling) Name() string { return s.name }

func (s *Settling) Observe(l *lattice.Lattice, tick int) {
	if physics.KineticEnergy(l) > s.threshold {
		s.last = tick
	}
}

func (s *Settling) Value() float64 { return float64(s.last) }

func (s *Settling) Reset() { s.last = 0 }
