// Package analysis post-processes the per-tick series of a headless run.
//
//   - [DominantFrequency]: strongest oscillation in a series, via [FFT]
//   - [Summarize]: min, max, mean and final value
//   - [SettleIndex]: first sample after which a series stays below a threshold
//   - [PhasePortraitFromSeries]: value against rate of change
//
// # Sway Frequency
//
// The centroid of a disturbed cloth swings like a damped pendulum:
//
//	freq, _, err := analysis.DominantFrequency(result.Series[sim.SeriesCentroidX], cfg.DeltaTime)
package analysis
