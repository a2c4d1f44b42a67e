package sim

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/clothsim/internal/control"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/physics"
)

// Simulator advances a lattice one fixed step per tick.
type Simulator struct {
	lattice    *lattice.Lattice
	forces     *physics.Model
	integrator *integrators.Damped
	drag       *control.Drag
	scheme     Scheme
	validate   bool

	snapshot *lattice.Lattice
	tick     int

	metrics   []Metric
	observers []Observer
}

// New builds a simulator over l. drag may be nil when there is no pointer
// input.
func New(l *lattice.Lattice, opts Options, drag *control.Drag) (*Simulator, error) {
	if l == nil || opts.Integrator == nil {
		return nil, ErrMissingComponent
	}
	return &Simulator{
		lattice:    l,
		forces:     physics.NewModel(opts.Params),
		integrator: opts.Integrator,
		drag:       drag,
		scheme:     opts.Scheme,
		validate:   opts.ValidateState,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Lattice() *lattice.Lattice { return s.lattice }
func (s *Simulator) Drag() *control.Drag       { return s.drag }
func (s *Simulator) Scheme() Scheme            { return s.scheme }
func (s *Simulator) Ticks() int                { return s.tick }

// Time returns the simulated time, ticks times the fixed step.
func (s *Simulator) Time() float64 {
	return float64(s.tick) * s.integrator.DeltaTime
}

func (s *Simulator) SetScheme(scheme Scheme) { s.scheme = scheme }

// Pointer forwards a pointer sample to the drag controller and returns the
// number of nodes it pushed. Callers must not run it concurrently with Tick.
func (s *Simulator) Pointer(x, y float64) int {
	if s.drag == nil {
		return 0
	}
	return s.drag.Move(s.lattice, x, y)
}

// Hover moves the pointer baseline to (x, y) without an impulse, for samples
// taken while the pointer is not dragging (paused view, start of a stroke).
func (s *Simulator) Hover(x, y float64) {
	if s.drag != nil {
		s.drag.Prime(x, y)
	}
}

// Apply feeds one pointer event: Hover when it is lifted, Pointer otherwise.
func (s *Simulator) Apply(e PointerEvent) int {
	if e.Lift {
		s.Hover(e.X, e.Y)
		return 0
	}
	return s.Pointer(e.X, e.Y)
}

// Reset restores a lattice snapshot and rewinds the tick counter.
func (s *Simulator) Reset(nodes []lattice.Node) error {
	if err := s.lattice.Restore(nodes); err != nil {
		return err
	}
	s.tick = 0
	for _, m := range s.metrics {
		m.Reset()
	}
	return nil
}

// Tick runs one pass over the lattice in row-major order: net force,
// integration, then the node and its right and down springs are handed to r.
// The drag overlay is drawn after the pass. r may be nil.
func (s *Simulator) Tick(r Renderer) error {
	if r != nil {
		r.Clear()
	}

	source := s.lattice
	if s.scheme == Jacobi {
		if s.snapshot == nil {
			s.snapshot = s.lattice.Clone()
		} else if err := s.snapshot.CopyFrom(s.lattice); err != nil {
			return err
		}
		source = s.snapshot
	}

	rows, cols := s.lattice.Rows(), s.lattice.Cols()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			n := s.lattice.At(row, col)
			fx, fy := s.forces.NetForce(source, row, col)
			s.integrator.Step(n, fx, fy)

			if s.validate && !n.IsValid() {
				return &TickError{Tick: s.tick, Row: row, Col: col, Wrapped: ErrUnstable}
			}

			if r == nil {
				continue
			}
			r.DrawNode(n.X, n.Y, n.Locked)
			if right := s.lattice.At(row, col+1); right != nil {
				r.DrawSegment(n.X, n.Y, right.X, right.Y)
			}
			if down := s.lattice.At(row+1, col); down != nil {
				r.DrawSegment(n.X, n.Y, down.X, down.Y)
			}
		}
	}

	if r != nil && s.drag != nil {
		px, py := s.drag.Position()
		r.DrawCircle(px, py, s.drag.Radius)
	}

	s.tick++
	t := s.Time()
	for _, m := range s.metrics {
		m.Observe(s.lattice, s.tick)
	}
	for _, obs := range s.observers {
		obs.OnTick(s.lattice, s.tick, t)
	}
	return nil
}

// Run advances ticks steps without rendering. Each event is applied right
// before the tick it names; events are applied in tick order, ties in the
// order given.
//
// The returned error is only for bad arguments and cancellation. A tick that
// fails validation ends the run early: its *TickError is recorded in
// Result.Errors, Result.Ticks counts only completed ticks, and Run still
// returns a nil error. Nodes before the failing one in row-major order have
// already been integrated for that tick, so Result.Final is a partially
// updated lattice.
func (s *Simulator) Run(ctx context.Context, ticks int, events []PointerEvent) (*Result, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidTicks, ticks)
	}

	ordered := make([]PointerEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Tick < ordered[j].Tick })

	result := &Result{
		Times:   make([]float64, 0, ticks),
		Series:  make(map[string][]float64, len(SeriesNames)),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	for _, name := range SeriesNames {
		result.Series[name] = make([]float64, 0, ticks)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	next := 0
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for next < len(ordered) && ordered[next].Tick <= i {
			s.Apply(ordered[next])
			next++
		}

		if err := s.Tick(nil); err != nil {
			result.Errors = append(result.Errors, err)
			break
		}

		result.Ticks++
		result.Times = append(result.Times, s.Time())
		s.record(result)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = s.lattice.Snapshot()

	return result, nil
}

func (s *Simulator) record(result *Result) {
	cx, cy := s.lattice.Centroid()
	result.Series[SeriesKinetic] = append(result.Series[SeriesKinetic], physics.KineticEnergy(s.lattice))
	result.Series[SeriesMaxSpeed] = append(result.Series[SeriesMaxSpeed], physics.MaxSpeed(s.lattice))
	result.Series[SeriesCentroidX] = append(result.Series[SeriesCentroidX], cx)
	result.Series[SeriesCentroidY] = append(result.Series[SeriesCentroidY], cy)
}
