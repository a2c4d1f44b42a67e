package physics

import (
	"math"
	"testing"

	"github.com/san-kum/clothsim/internal/lattice"
)

var springOnly = Params{RestLength: 10, Stiffness: 2, Gravity: 0, NodeMass: 1}

func TestSpringForceSign(t *testing.T) {
	tests := []struct {
		name string
		dist float64
		sign float64 // +1 toward the other node, -1 away, 0 none
	}{
		{"stretched", 15, 1},
		{"compressed", 6, -1},
		{"at rest", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &lattice.Node{X: 0, Y: 0}
			b := &lattice.Node{X: tt.dist, Y: 0}

			fx, fy, ok := SpringForce(a, b, springOnly)
			if !ok {
				t.Fatal("unexpected degenerate direction")
			}
			if fy != 0 {
				t.Errorf("expected no vertical force, got %f", fy)
			}

			switch tt.sign {
			case 1:
				if fx <= 0 {
					t.Errorf("expected force toward b, got %f", fx)
				}
			case -1:
				if fx >= 0 {
					t.Errorf("expected force away from b, got %f", fx)
				}
			default:
				if fx != 0 {
					t.Errorf("expected exactly zero at rest length, got %f", fx)
				}
			}

			// Newton's third law: b sees the mirrored force.
			bx, _, _ := SpringForce(b, a, springOnly)
			if bx != -fx {
				t.Errorf("force on b = %f, want %f", bx, -fx)
			}
		})
	}
}

func TestSpringForceMagnitude(t *testing.T) {
	a := &lattice.Node{X: 0, Y: 0}
	b := &lattice.Node{X: 9, Y: 12} // dist 15

	fx, fy, _ := SpringForce(a, b, springOnly)
	// (15 - 10) * 2 = 10 along (0.6, 0.8)
	if math.Abs(fx-6) > 1e-12 || math.Abs(fy-8) > 1e-12 {
		t.Errorf("got (%f, %f), want (6, 8)", fx, fy)
	}
}

func TestSpringForceCoincident(t *testing.T) {
	a := &lattice.Node{X: 3, Y: 3}
	b := &lattice.Node{X: 3, Y: 3}

	fx, fy, ok := SpringForce(a, b, springOnly)
	if ok {
		t.Error("expected degenerate direction for coincident nodes")
	}
	if fx != 0 || fy != 0 || math.IsNaN(fx) || math.IsNaN(fy) {
		t.Errorf("expected zero force, got (%f, %f)", fx, fy)
	}
}

func TestNetForceRestEquilibrium(t *testing.T) {
	l, err := lattice.New(1, 2, 10, lattice.Layout{}, nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	for col := 0; col < 2; col++ {
		fx, fy := NetForce(l, 0, col, springOnly)
		if fx != 0 || fy != 0 {
			t.Errorf("node %d: net force (%f, %f), want (0, 0)", col, fx, fy)
		}
	}
}

func TestNetForceGravity(t *testing.T) {
	p := Params{RestLength: 10, Stiffness: 2, Gravity: 9.81, NodeMass: 2}
	l, _ := lattice.New(3, 3, 10, lattice.Layout{}, nil)

	fx, fy := NetForce(l, 1, 1, p)
	if fx != 0 || math.Abs(fy-19.62) > 1e-12 {
		t.Errorf("got (%f, %f), want (0, 19.62)", fx, fy)
	}
}

func TestNetForceSkipsCoincidentNeighbor(t *testing.T) {
	l, _ := lattice.New(1, 3, 10, lattice.Layout{}, nil)
	mid := l.At(0, 1)
	left := l.At(0, 0)
	left.X, left.Y = mid.X, mid.Y

	fx, fy := NetForce(l, 0, 1, springOnly)
	if math.IsNaN(fx) || math.IsNaN(fy) {
		t.Fatal("net force is NaN")
	}
	// only the right spring, at rest, remains
	if fx != 0 || fy != 0 {
		t.Errorf("got (%f, %f), want (0, 0)", fx, fy)
	}
}

func TestModelMatchesNetForce(t *testing.T) {
	p := Params{RestLength: 10, Stiffness: 3, Gravity: 1, NodeMass: 1}
	l, _ := lattice.New(3, 3, 10, lattice.Layout{}, nil)
	l.At(1, 2).X += 4
	l.At(0, 1).Y -= 2

	m := NewModel(p)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			ax, ay := NetForce(l, row, col, p)
			bx, by := m.NetForce(l, row, col)
			if ax != bx || ay != by {
				t.Errorf("(%d,%d): model (%f,%f) != NetForce (%f,%f)", row, col, bx, by, ax, ay)
			}
		}
	}
}

func TestEnergies(t *testing.T) {
	l, _ := lattice.New(1, 2, 10, lattice.Layout{}, lattice.AlternateTop)
	l.At(0, 0).VX = 100 // locked, ignored
	l.At(0, 1).VX = 3
	l.At(0, 1).VY = 4

	if ke := KineticEnergy(l); ke != 25 {
		t.Errorf("kinetic energy = %f, want 25", ke)
	}
	if ms := MaxSpeed(l); ms != 5 {
		t.Errorf("max speed = %f, want 5", ms)
	}
	if se := SpringEnergy(l, springOnly); se != 0 {
		t.Errorf("spring energy at rest = %f, want 0", se)
	}

	l.At(0, 1).X += 2
	if se := SpringEnergy(l, springOnly); math.Abs(se-4) > 1e-12 {
		t.Errorf("spring energy = %f, want 4", se)
	}
}
