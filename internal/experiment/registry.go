package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
)

// Registry builds metrics by name for a given configuration.
type Registry struct {
	metrics map[string]func(cfg *config.Config) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(cfg *config.Config) sim.Metric),
	}

	r.metrics["energy"] = func(cfg *config.Config) sim.Metric { return metrics.NewEnergy(cfg.Params()) }
	r.metrics["peak_kinetic"] = func(*config.Config) sim.Metric { return metrics.NewPeakKinetic() }
	r.metrics["settle_tick"] = func(*config.Config) sim.Metric { return metrics.NewSettling(1) }
	r.metrics["stability"] = func(cfg *config.Config) sim.Metric {
		// a node covering a whole spring per tick is tearing loose
		return metrics.NewStability(cfg.RestLength / cfg.DeltaTime)
	}
	r.metrics["max_stretch"] = func(*config.Config) sim.Metric { return metrics.NewMaxStretch() }
	r.metrics["anchor_drift"] = func(*config.Config) sim.Metric { return metrics.NewAnchorDrift() }

	return r
}

func (r *Registry) GetMetric(name string, cfg *config.Config) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s (available: %v)", name, r.ListMetrics())
	}
	return fn(cfg), nil
}

// Metrics builds every registered metric, in name order.
func (r *Registry) Metrics(cfg *config.Config) []sim.Metric {
	names := r.ListMetrics()
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		out = append(out, r.metrics[name](cfg))
	}
	return out
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
