package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTicks indicates a non-positive tick count for a run.
	ErrInvalidTicks = errors.New("sim: tick count must be positive")

	// ErrUnstable indicates a node state diverged to NaN or Inf.
	ErrUnstable = errors.New("sim: simulation unstable (state diverged)")

	// ErrMissingComponent indicates a simulator built without a lattice or
	// integrator.
	ErrMissingComponent = errors.New("sim: missing lattice or integrator")
)

// TickError wraps an error with the tick and node it was detected at.
type TickError struct {
	Tick     int
	Row, Col int
	Wrapped  error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d node (%d,%d): %v", e.Tick, e.Row, e.Col, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
