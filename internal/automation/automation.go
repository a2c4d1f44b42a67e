package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/experiment"
	"github.com/san-kum/clothsim/internal/sim"
)

var (
	ErrEmptyScript       = errors.New("automation: script has no ticks")
	ErrOverlappingStroke = errors.New("automation: strokes overlap")
)

// Script is a scripted pointer sequence replayed against a configured cloth.
type Script struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Preset      string             `yaml:"preset"`
	Ticks       int                `yaml:"ticks"`
	Params      map[string]float64 `yaml:"params"`
	Events      []sim.PointerEvent `yaml:"events"`
	Strokes     []Stroke           `yaml:"strokes"`
}

// Stroke moves the pointer in a straight line from From to To, one sample
// per tick over [Start, End].
type Stroke struct {
	Start int       `yaml:"start"`
	End   int       `yaml:"end"`
	From  sim.Point `yaml:"from"`
	To    sim.Point `yaml:"to"`
}

// Samples expands the stroke into per-tick pointer events. The first sample
// is lifted at From so the stroke never inherits motion from wherever the
// pointer was before it. A single-tick stroke lifts at From and moves to To
// on the same tick.
func (s Stroke) Samples() []sim.PointerEvent {
	if s.End < s.Start {
		return nil
	}
	span := s.End - s.Start
	events := make([]sim.PointerEvent, 0, span+2)
	events = append(events, sim.PointerEvent{Tick: s.Start, X: s.From.X, Y: s.From.Y, Lift: true})
	if span == 0 {
		return append(events, sim.PointerEvent{Tick: s.Start, X: s.To.X, Y: s.To.Y})
	}
	for i := 1; i <= span; i++ {
		f := float64(i) / float64(span)
		events = append(events, sim.PointerEvent{
			Tick: s.Start + i,
			X:    s.From.X + (s.To.X-s.From.X)*f,
			Y:    s.From.Y + (s.To.Y-s.From.Y)*f,
		})
	}
	return events
}

// LoadScript loads a script from a YAML file
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}

	return &script, nil
}

// Validate rejects strokes that share a tick. There is one pointer, so two
// strokes active at once would jump it back and forth between them.
func (s *Script) Validate() error {
	strokes := make([]Stroke, len(s.Strokes))
	copy(strokes, s.Strokes)
	sort.SliceStable(strokes, func(i, j int) bool { return strokes[i].Start < strokes[j].Start })
	for i := 1; i < len(strokes); i++ {
		prev, cur := strokes[i-1], strokes[i]
		if cur.Start <= prev.End {
			return fmt.Errorf("%w: [%d, %d] and [%d, %d]", ErrOverlappingStroke, prev.Start, prev.End, cur.Start, cur.End)
		}
	}
	return nil
}

// Timeline merges the explicit events and expanded strokes ordered by tick.
func (s *Script) Timeline() []sim.PointerEvent {
	events := make([]sim.PointerEvent, 0, len(s.Events))
	events = append(events, s.Events...)
	for _, st := range s.Strokes {
		events = append(events, st.Samples()...)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Tick < events[j].Tick })
	return events
}

// Config resolves the script's preset and parameter overrides on top of base.
// A nil base starts from the defaults.
func (s *Script) Config(base *config.Config) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if base != nil {
		cfg = base.Clone()
	}
	if s.Preset != "" {
		preset := config.GetPreset(s.Preset)
		if preset == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		cfg = preset
	}

	names := make([]string, 0, len(s.Params))
	for name := range s.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := cfg.Set(name, s.Params[name]); err != nil {
			return nil, err
		}
	}

	return cfg, cfg.Validate()
}

// RunScript executes the script headless with the named metrics attached.
func RunScript(ctx context.Context, script *Script, base *config.Config, metrics []string) (*config.Config, *sim.Result, error) {
	if script.Ticks <= 0 {
		return nil, nil, ErrEmptyScript
	}
	if err := script.Validate(); err != nil {
		return nil, nil, err
	}

	cfg, err := script.Config(base)
	if err != nil {
		return nil, nil, err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	registry := experiment.NewRegistry()
	for _, name := range metrics {
		m, err := registry.GetMetric(name, cfg)
		if err != nil {
			return nil, nil, err
		}
		exp.Setup([]sim.Metric{m})
	}

	result, err := exp.Run(ctx, script.Ticks, script.Timeline())
	return cfg, result, err
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	PeakKE     float64
	FinalKE    float64
	Diverged   bool
	Err        error
}

// RunSweep varies one parameter over steps evenly spaced values between lo
// and hi and replays the same pointer events against each.
func RunSweep(ctx context.Context, base *config.Config, param string, lo, hi float64, steps, ticks int, events []sim.PointerEvent) ([]SweepResult, error) {
	if steps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", steps)
	}

	paramStep := 0.0
	if steps > 1 {
		paramStep = (hi - lo) / float64(steps-1)
	}

	results := make([]SweepResult, 0, steps)
	for i := 0; i < steps; i++ {
		value := lo + float64(i)*paramStep
		sr := SweepResult{ParamValue: value}

		cfg := base.Clone()
		if err := cfg.Set(param, value); err != nil {
			return nil, err
		}

		exp, err := experiment.New(cfg)
		if err != nil {
			sr.Err = err
			results = append(results, sr)
			continue
		}

		result, err := exp.Run(ctx, ticks, events)
		if err != nil {
			return results, err
		}

		ke := result.Series[sim.SeriesKinetic]
		for _, v := range ke {
			sr.PeakKE = math.Max(sr.PeakKE, v)
		}
		sr.FinalKE = last(ke)
		sr.Diverged = len(result.Errors) > 0
		results = append(results, sr)
	}

	return results, nil
}

// MonteCarloConfig defines Monte Carlo simulation parameters
type MonteCarloConfig struct {
	NumTrials int
	Ticks     int
	// Strokes per trial, each a random straight drag across the surface.
	Strokes int
	Seed    int64
	// SpeedLimit marks a trial unstable when any node ends faster than it.
	SpeedLimit float64
}

// MonteCarloResult holds statistics from Monte Carlo runs
type MonteCarloResult struct {
	TrialID  int
	Strokes  []Stroke
	FinalKE  float64
	MaxSpeed float64
	Stable   bool
}

// RunMonteCarlo drags the cloth with random strokes and records whether the
// lattice stayed bounded.
func RunMonteCarlo(ctx context.Context, base *config.Config, mc *MonteCarloConfig) ([]MonteCarloResult, error) {
	if mc.Ticks <= 0 {
		return nil, ErrEmptyScript
	}
	if mc.NumTrials < 0 || mc.Strokes < 0 {
		return nil, fmt.Errorf("monte carlo needs non-negative trials and strokes, got %d and %d", mc.NumTrials, mc.Strokes)
	}

	rng := rand.New(rand.NewSource(mc.Seed))
	if mc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	limit := mc.SpeedLimit
	if limit <= 0 {
		limit = base.RestLength / base.DeltaTime
	}

	results := make([]MonteCarloResult, 0, mc.NumTrials)
	for trial := 0; trial < mc.NumTrials; trial++ {
		script := Script{Ticks: mc.Ticks, Strokes: randomStrokes(rng, base, mc.Strokes, mc.Ticks)}

		exp, err := experiment.New(base.Clone())
		if err != nil {
			return nil, err
		}
		result, err := exp.Run(ctx, script.Ticks, script.Timeline())
		if err != nil {
			return results, err
		}

		r := MonteCarloResult{TrialID: trial, Strokes: script.Strokes}
		r.FinalKE = last(result.Series[sim.SeriesKinetic])
		r.MaxSpeed = last(result.Series[sim.SeriesMaxSpeed])
		r.Stable = len(result.Errors) == 0 && r.MaxSpeed <= limit

		results = append(results, r)
	}

	return results, nil
}

// randomStrokes gives each stroke its own slot of the run so they never
// overlap. At most one stroke fits per tick.
func randomStrokes(rng *rand.Rand, cfg *config.Config, n, ticks int) []Stroke {
	n = min(n, ticks)
	if n <= 0 {
		return nil
	}
	slot := ticks / n
	strokes := make([]Stroke, 0, n)
	for i := 0; i < n; i++ {
		lo := i * slot
		start := lo + rng.Intn(slot)
		end := start + rng.Intn(lo+slot-start)
		strokes = append(strokes, Stroke{
			Start: start,
			End:   end,
			From:  sim.Point{X: rng.Float64() * cfg.Width, Y: rng.Float64() * cfg.Height},
			To:    sim.Point{X: rng.Float64() * cfg.Width, Y: rng.Float64() * cfg.Height},
		})
	}
	return strokes
}

func last(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
