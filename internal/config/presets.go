package config

import "sort"

var Presets = map[string]*Config{
	"drape": DefaultConfig(),
	"curtain": with(func(c *Config) {
		c.Anchors = "top"
		c.Rows, c.Cols = 10, 16
		c.RestLength = 6
	}),
	"hammock": with(func(c *Config) {
		c.Anchors = "corners"
		c.Stiffness = 60
		c.YOffset = -20
	}),
	"stiff": with(func(c *Config) {
		c.Stiffness = 120
		c.DampingRate = 3
	}),
	"loose": with(func(c *Config) {
		c.Stiffness = 15
		c.DampingRate = 0.8
		c.DragRadius = 18
	}),
	"buffered": with(func(c *Config) {
		c.Scheme = "jacobi"
	}),
}

func with(apply func(c *Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
