package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/control"
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/sim"
)

// Experiment owns one configured simulator and the lattice it started from.
type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
	initial   []lattice.Node
}

// New validates cfg and builds the lattice, drag controller and simulator it
// describes.
func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lock, err := lattice.AnchorByName(cfg.Anchors, cfg.Cols)
	if err != nil {
		return nil, err
	}
	l, err := lattice.New(cfg.Rows, cfg.Cols, cfg.RestLength, cfg.Layout(), lock)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.SimOptions()
	if err != nil {
		return nil, err
	}
	s, err := sim.New(l, opts, control.NewDrag(cfg.DragRadius, cfg.DragLocked))
	if err != nil {
		return nil, err
	}

	return &Experiment{
		cfg:       cfg,
		simulator: s,
		initial:   l.Snapshot(),
	}, nil
}

func (e *Experiment) Setup(metrics []sim.Metric) {
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
}

func (e *Experiment) Run(ctx context.Context, ticks int, events []sim.PointerEvent) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, ticks, events)
}

// Restart puts the lattice back to its starting state and re-arms the drag
// baseline.
func (e *Experiment) Restart() error {
	if drag := e.simulator.Drag(); drag != nil {
		drag.Pointer = control.PointerState{}
	}
	return e.simulator.Reset(e.initial)
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Initial returns a copy of the starting lattice.
func (e *Experiment) Initial() []lattice.Node {
	nodes := make([]lattice.Node, len(e.initial))
	copy(nodes, e.initial)
	return nodes
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
