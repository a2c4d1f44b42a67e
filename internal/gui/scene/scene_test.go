package scene

import (
	"testing"

	"github.com/san-kum/clothsim/internal/control"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/physics"
	"github.com/san-kum/clothsim/internal/sim"
)

var _ sim.Renderer = (*List)(nil)

func TestListRecordsTick(t *testing.T) {
	l, err := lattice.New(3, 4, 10, lattice.Layout{}, lattice.AlternateTop)
	if err != nil {
		t.Fatal(err)
	}
	p := physics.Params{RestLength: 10, Stiffness: 40, Gravity: 9.81, NodeMass: 1}
	s, err := sim.New(l, sim.Options{Params: p, Integrator: integrators.NewDamped(1.0/60, 1, 1, 0)}, control.NewDrag(8, false))
	if err != nil {
		t.Fatal(err)
	}

	var list List
	list.DrawNode(0, 0, false) // stale, dropped by Clear
	if err := s.Tick(&list); err != nil {
		t.Fatal(err)
	}

	if got := list.Count(Anchor); got != 2 {
		t.Errorf("expected 2 anchors, got %d", got)
	}
	if got := list.Count(Node); got != 10 {
		t.Errorf("expected 10 nodes, got %d", got)
	}
	// 3 rows of 3 horizontal springs plus 2 rows of 4 vertical ones
	if got := list.Count(Segment); got != 17 {
		t.Errorf("expected 17 segments, got %d", got)
	}
	if got := list.Count(Circle); got != 1 {
		t.Errorf("expected 1 circle, got %d", got)
	}
}

func TestListSwap(t *testing.T) {
	var recording, shown List
	recording.DrawCircle(1, 2, 3)

	recording.Swap(&shown)
	if len(shown.Shapes) != 1 || shown.Shapes[0].R != 3 {
		t.Errorf("unexpected shown list %+v", shown.Shapes)
	}
	if len(recording.Shapes) != 0 {
		t.Error("recording list should be empty after swap")
	}
}
