package sim

import (
	"context"
	"time"
)

// Driver ticks a simulator on a fixed wall-clock period and applies pointer
// samples between ticks. Everything runs on the goroutine calling Run, so
// pointer input never overlaps a tick.
//
// The simulated step is always the integrator's DeltaTime. When a tick
// overruns its period the missed ticker fires are dropped, not replayed.
type Driver struct {
	sim      *Simulator
	period   time.Duration
	renderer Renderer

	// OnFrame is called after every tick, e.g. to flush a renderer.
	OnFrame func(s *Simulator)
	// MaxTicks stops the driver after this many ticks. Zero runs until the
	// context is done.
	MaxTicks int
}

func NewDriver(s *Simulator, period time.Duration, r Renderer) *Driver {
	return &Driver{sim: s, period: period, renderer: r}
}

// Run blocks until ctx is done, MaxTicks is reached, or a tick fails. A nil
// or closed pointer channel just disables input.
// The Tick field of pointer events is ignored; they apply on arrival.
func (d *Driver) Run(ctx context.Context, pointer <-chan PointerEvent) error {
	ticker := time.NewTicker(d.period)
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p, ok := <-pointer:
			if !ok {
				pointer = nil
				continue
			}
			d.sim.Apply(p)
		case <-ticker.C:
			if err := d.sim.Tick(d.renderer); err != nil {
				return err
			}
			if d.OnFrame != nil {
				d.OnFrame(d.sim)
			}
			ticks++
			if d.MaxTicks > 0 && ticks >= d.MaxTicks {
				return nil
			}
		}
	}
}
