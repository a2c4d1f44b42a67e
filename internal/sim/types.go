package sim

import (
	"fmt"

	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/physics"
)

// Renderer receives draw calls once per node per tick, up to two segments per
// node, and one circle for the drag overlay.
type Renderer interface {
	Clear()
	DrawNode(x, y float64, locked bool)
	DrawSegment(ax, ay, bx, by float64)
	DrawCircle(cx, cy, r float64)
}

type Metric interface {
	Name() string
	Observe(l *lattice.Lattice, tick int)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(l *lattice.Lattice, tick int, t float64)
}

// Scheme selects how neighbour state is read during a tick.
type Scheme int

const (
	// GaussSeidel updates nodes in place in row-major order, so the up and
	// left neighbours are read after their update this tick and the down and
	// right neighbours before theirs.
	GaussSeidel Scheme = iota
	// Jacobi reads every force from a snapshot taken at the start of the
	// tick, making the result independent of traversal order.
	Jacobi
)

func (s Scheme) String() string {
	switch s {
	case GaussSeidel:
		return "gauss-seidel"
	case Jacobi:
		return "jacobi"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "gauss-seidel", "gauss_seidel", "inplace", "":
		return GaussSeidel, nil
	case "jacobi", "buffered":
		return Jacobi, nil
	default:
		return GaussSeidel, fmt.Errorf("unknown scheme: %s", name)
	}
}

type Options struct {
	Params     physics.Params
	Integrator *integrators.Damped
	Scheme     Scheme
	// ValidateState stops a run when a node position or velocity becomes
	// NaN or Inf.
	ValidateState bool
}

type Point struct {
	X, Y float64
}

// PointerEvent is a pointer sample applied just before the tick with the
// given index. A lifted sample only moves the drag baseline, so the next
// sample measures its delta from here instead of from wherever the pointer
// was before.
type PointerEvent struct {
	Tick int     `yaml:"tick" json:"tick"`
	X    float64 `yaml:"x" json:"x"`
	Y    float64 `yaml:"y" json:"y"`
	Lift bool    `yaml:"lift,omitempty" json:"lift,omitempty"`
}

// Series names recorded for every tick of a headless run.
const (
	SeriesKinetic   = "kinetic_energy"
	SeriesMaxSpeed  = "max_speed"
	SeriesCentroidX = "centroid_x"
	SeriesCentroidY = "centroid_y"
)

var SeriesNames = []string{SeriesKinetic, SeriesMaxSpeed, SeriesCentroidX, SeriesCentroidY}

type Result struct {
	Ticks   int
	Times   []float64
	Series  map[string][]float64
	Metrics map[string]float64
	Final   []lattice.Node
	Errors  []error
}
