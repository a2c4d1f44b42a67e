package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/physics"
	"github.com/san-kum/clothsim/internal/sim"
)

var params = physics.Params{RestLength: 10, Stiffness: 40, Gravity: 9.81, NodeMass: 2}

func pair(t *testing.T) *lattice.Lattice {
	t.Helper()
	l, err := lattice.New(1, 2, 10, lattice.Layout{}, lattice.Corners(2))
	if err != nil {
		t.Fatal(err)
	}
	return l
}

var _ []sim.Metric = []sim.Metric{
	NewEnergy(params), NewPeakKinetic(), NewSettling(1), NewStability(1), NewMaxStretch(), NewAnchorDrift(),
}

func TestEnergy(t *testing.T) {
	l, err := lattice.New(1, 2, 10, lattice.Layout{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	l.At(0, 1).X = 12
	l.At(0, 1).VX = 3

	m := NewEnergy(params)
	m.Observe(l, 1)

	// 0.5*2*9 kinetic plus 0.5*40*2^2 in the spring
	expected := 9.0 + 80.0
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Observe(l, 2)
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("mean changed for identical samples: %f", m.Value())
	}
}

func TestEnergyReset(t *testing.T) {
	l, _ := lattice.New(1, 1, 10, lattice.Layout{}, nil)
	l.At(0, 0).VX = 1

	m := NewEnergy(params)
	m.Observe(l, 1)
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestPeakAndSettling(t *testing.T) {
	l, _ := lattice.New(1, 1, 10, lattice.Layout{}, nil)
	n := l.At(0, 0)

	peak := NewPeakKinetic()
	settle := NewSettling(1)
	for tick, v := range []float64{0, 3, 2, 0.5, 0.1} {
		n.VX = v
		peak.Observe(l, tick+1)
		settle.Observe(l, tick+1)
	}

	if peak.Value() != 9 {
		t.Errorf("expected peak 9, got %f", peak.Value())
	}
	if settle.Value() != 3 {
		t.Errorf("expected last fast tick 3, got %f", settle.Value())
	}
}

func TestStability(t *testing.T) {
	l, _ := lattice.New(1, 1, 10, lattice.Layout{}, nil)
	s := NewStability(5)

	if s.Value() != 1 {
		t.Errorf("expected 1 with no samples, got %f", s.Value())
	}

	l.At(0, 0).VX = 1
	s.Observe(l, 1)
	l.At(0, 0).VX = 10
	s.Observe(l, 2)

	if s.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", s.Value())
	}
}

func TestMaxStretch(t *testing.T) {
	l := pair(t)
	m := NewMaxStretch()

	m.Observe(l, 1)
	if m.Value() != 0 {
		t.Errorf("rest lattice should have no stretch, got %f", m.Value())
	}

	l.At(0, 1).X = 15
	m.Observe(l, 2)
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestAnchorDrift(t *testing.T) {
	l := pair(t)
	m := NewAnchorDrift()

	m.Observe(l, 1)
	m.Observe(l, 2)
	if m.Value() != 0 {
		t.Errorf("untouched anchors drifted %f", m.Value())
	}

	l.At(0, 0).X += 3
	l.At(0, 0).Y += 4
	m.Observe(l, 3)
	if m.Value() != 5 {
		t.Errorf("expected drift 5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}
