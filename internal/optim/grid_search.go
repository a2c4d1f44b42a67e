package optim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/experiment"
	"github.com/san-kum/clothsim/internal/sim"
)

var ErrNoCandidate = errors.New("optim: no candidate completed")

// GridSearch tries every combination of parameter values over a base
// config and keeps the one that minimises a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs ticks steps with events for every grid point. Candidates that
// fail validation or diverge are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	ticks int,
	events []sim.PointerEvent,
	metricName string,
) (map[string]float64, float64, error) {

	best := math.Inf(1)
	var bestParams map[string]float64

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := base.Clone()
		for name, v := range params {
			if err := cfg.Set(name, v); err != nil {
				return nil, err
			}
		}
		exp, err := experiment.New(cfg)
		if err != nil {
			return nil, err
		}
		m, err := experiment.NewRegistry().GetMetric(metricName, cfg)
		if err != nil {
			return nil, err
		}
		exp.Setup([]sim.Metric{m})
		return exp, nil
	}

	g.searchRecursive(ctx, 0, make(map[string]float64), build, ticks, events, metricName, &best, &bestParams)

	if err := ctx.Err(); err != nil {
		return bestParams, best, err
	}
	if bestParams == nil {
		return nil, best, ErrNoCandidate
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	ticks int,
	events []sim.PointerEvent,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return
		}

		result, err := exp.Run(ctx, ticks, events)
		if err != nil || len(result.Errors) > 0 {
			return
		}

		val := result.Metrics[metricName]
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, buildExperiment, ticks, events, metricName, best, bestParams)
	}
}
