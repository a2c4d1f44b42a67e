package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/physics"
	"github.com/san-kum/clothsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRestLength  = 7.5
	DefaultStiffness   = 40.0
	DefaultGravity     = 9.81
	DefaultNodeMass    = 1.0
	DefaultDampingRate = 1.5
	DefaultDeltaTime   = 1.0 / 60
	DefaultDragRadius  = 12.0
	DefaultRows        = 11
	DefaultCols        = 11
	DefaultTickRate    = 60
	DefaultWidth       = 160.0
	DefaultHeight      = 96.0
	DefaultAnchors     = "alternate"
	DefaultScheme      = "gauss-seidel"

	// MaxTickRate keeps the tick period well above timer resolution.
	MaxTickRate = 1000
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds every tunable of a run. It is fixed once the lattice is built.
type Config struct {
	RestLength  float64 `yaml:"rest_length" json:"rest_length"`
	Stiffness   float64 `yaml:"stiffness" json:"stiffness"`
	Gravity     float64 `yaml:"gravity" json:"gravity"`
	NodeMass    float64 `yaml:"node_mass" json:"node_mass"`
	DampingRate float64 `yaml:"damping_rate" json:"damping_rate"`
	DeltaTime   float64 `yaml:"delta_time" json:"delta_time"`
	DragRadius  float64 `yaml:"drag_radius" json:"drag_radius"`
	Rows        int     `yaml:"rows" json:"rows"`
	Cols        int     `yaml:"cols" json:"cols"`

	YOffset    float64 `yaml:"y_offset" json:"y_offset"`
	Anchors    string  `yaml:"anchors" json:"anchors"`
	Scheme     string  `yaml:"scheme" json:"scheme"`
	MaxSpeed   float64 `yaml:"max_speed" json:"max_speed"`
	TickRate   int     `yaml:"tick_rate" json:"tick_rate"`
	DragLocked bool    `yaml:"drag_locked" json:"drag_locked"`

	// Surface size used to center the lattice at startup.
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		RestLength:  DefaultRestLength,
		Stiffness:   DefaultStiffness,
		Gravity:     DefaultGravity,
		NodeMass:    DefaultNodeMass,
		DampingRate: DefaultDampingRate,
		DeltaTime:   DefaultDeltaTime,
		DragRadius:  DefaultDragRadius,
		Rows:        DefaultRows,
		Cols:        DefaultCols,
		Anchors:     DefaultAnchors,
		Scheme:      DefaultScheme,
		TickRate:    DefaultTickRate,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over a copy of base, so keys missing from the
// file keep base's values. base itself is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate reports every invalid field. The returned error wraps
// ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if !(c.RestLength > 0) || math.IsInf(c.RestLength, 0) {
		invalid("rest_length must be positive, got %g", c.RestLength)
	}
	if c.DragRadius < 0 || math.IsNaN(c.DragRadius) {
		invalid("drag_radius must not be negative, got %g", c.DragRadius)
	}
	if !(c.NodeMass > 0) {
		invalid("node_mass must be positive, got %g", c.NodeMass)
	}
	if !(c.DeltaTime > 0) {
		invalid("delta_time must be positive, got %g", c.DeltaTime)
	}
	if c.DampingRate < 0 || math.IsNaN(c.DampingRate) {
		invalid("damping_rate must not be negative, got %g", c.DampingRate)
	}
	fields := c.numeric()
	for _, name := range numericNames() {
		if v := *fields[name]; math.IsNaN(v) || math.IsInf(v, 0) {
			invalid("%s must be finite, got %g", name, v)
		}
	}
	if c.Rows <= 0 || c.Cols <= 0 {
		invalid("grid must have positive rows and cols, got %dx%d", c.Rows, c.Cols)
	}
	if c.MaxSpeed < 0 {
		invalid("max_speed must not be negative, got %g", c.MaxSpeed)
	}
	if c.TickRate <= 0 || c.TickRate > MaxTickRate {
		invalid("tick_rate must be in 1..%d, got %d", MaxTickRate, c.TickRate)
	}
	if _, err := lattice.AnchorByName(c.Anchors, c.Cols); err != nil {
		invalid("%v", err)
	}
	if _, err := sim.ParseScheme(c.Scheme); err != nil {
		invalid("%v", err)
	}

	return errors.Join(errs...)
}

func (c *Config) Params() physics.Params {
	return physics.Params{
		RestLength: c.RestLength,
		Stiffness:  c.Stiffness,
		Gravity:    c.Gravity,
		NodeMass:   c.NodeMass,
	}
}

func (c *Config) Integrator() *integrators.Damped {
	return integrators.NewDamped(c.DeltaTime, c.NodeMass, c.DampingRate, c.MaxSpeed)
}

// TickPeriod is the wall-clock interval between ticks.
func (c *Config) TickPeriod() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Layout centers the lattice in the configured surface.
func (c *Config) Layout() lattice.Layout {
	return lattice.Centered(c.Width, c.Height, c.Rows, c.Cols, c.RestLength, c.YOffset)
}

// SimOptions converts the config into simulator options. Call Validate first.
func (c *Config) SimOptions() (sim.Options, error) {
	scheme, err := sim.ParseScheme(c.Scheme)
	if err != nil {
		return sim.Options{}, err
	}
	return sim.Options{
		Params:        c.Params(),
		Integrator:    c.Integrator(),
		Scheme:        scheme,
		ValidateState: true,
	}, nil
}
