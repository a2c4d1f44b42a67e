package viz

import (
	"strings"
)

var traceBars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// speedTrace draws the last width samples as one bar per column, scaled
// from zero to the largest sample shown. Faster columns shift from the
// calm colour to the error colour.
func (p palette) speedTrace(speeds []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(speeds) > width {
		speeds = speeds[len(speeds)-width:]
	}

	peak := 0.0
	for _, v := range speeds {
		peak = max(peak, v)
	}

	var b strings.Builder
	for _, v := range speeds {
		level := 0.0
		if peak > 0 && v > 0 {
			level = v / peak
		}
		bar := string(traceBars[int(level*float64(len(traceBars)-1))])
		switch {
		case level > 0.7:
			b.WriteString(p.fast.Render(bar))
		case level > 0.3:
			b.WriteString(p.busy.Render(bar))
		default:
			b.WriteString(p.calm.Render(bar))
		}
	}
	return b.String()
}

// rule is a plain horizontal line, empty for non-positive widths.
func (p palette) rule(width int) string {
	return p.hint.Render(strings.Repeat("─", max(width, 0)))
}
