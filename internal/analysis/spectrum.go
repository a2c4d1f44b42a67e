package analysis

import (
	"errors"
	"math"
)

var ErrShortSeries = errors.New("analysis: series too short")

// DominantFrequency returns the strongest non-zero frequency in a series
// sampled every dt, after removing its mean. amplitude is the raw spectral
// magnitude at that bin.
func DominantFrequency(series []float64, dt float64) (freq, amplitude float64, err error) {
	if len(series) < 4 {
		return 0, 0, ErrShortSeries
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	n := 2 * len(ps)

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}

	return float64(best) / (float64(n) * dt), ps[best], nil
}

// Stats summarises a series.
type Stats struct {
	Min, Max, Mean, Final float64
}

func Summarize(series []float64) Stats {
	if len(series) == 0 {
		return Stats{}
	}
	s := Stats{Min: math.Inf(1), Max: math.Inf(-1), Final: series[len(series)-1]}
	for _, v := range series {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		s.Mean += v
	}
	s.Mean /= float64(len(series))
	return s
}

// SettleIndex returns the index after which every value stays at or below
// threshold, or -1 when the series ends above it.
func SettleIndex(series []float64, threshold float64) int {
	if len(series) == 0 || series[len(series)-1] > threshold {
		return -1
	}
	for i := len(series) - 1; i >= 0; i-- {
		if series[i] > threshold {
			return i + 1
		}
	}
	return 0
}
