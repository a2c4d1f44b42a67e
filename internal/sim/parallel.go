package sim

import (
	"context"
	"sync"
)

// Ensemble runs independent simulators side by side, one goroutine each.
// Every member owns its own lattice, so no physics state is shared.
type Ensemble struct {
	members []*Simulator
}

func NewEnsemble(members ...*Simulator) *Ensemble {
	return &Ensemble{members: members}
}

func (e *Ensemble) Run(ctx context.Context, ticks int, events []PointerEvent) ([]*Result, error) {
	results := make([]*Result, len(e.members))
	errs := make([]error, len(e.members))

	var wg sync.WaitGroup
	for i, member := range e.members {
		wg.Add(1)
		go func(idx int, s *Simulator) {
			defer wg.Done()
			results[idx], errs[idx] = s.Run(ctx, ticks, events)
		}(i, member)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
