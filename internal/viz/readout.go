package viz

import "github.com/charmbracelet/harmonica"

// readout eases a displayed number toward its latest value so the side
// panel does not flicker at the tick rate.
type readout struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newReadout(fps int) readout {
	return readout{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

func (r *readout) step(target float64) float64 {
	r.pos, r.vel = r.spring.Update(r.pos, r.vel, target)
	return r.pos
}
