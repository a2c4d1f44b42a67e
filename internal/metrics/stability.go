package metrics

import (
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/physics"
)

// Stability is the fraction of ticks in which no node moved faster than
// threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(l *lattice.Lattice, _ int) {
	s.samples++
	if physics.MaxSpeed(l) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
