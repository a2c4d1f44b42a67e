package config

import (
	"fmt"
	"sort"
)

// numeric maps the yaml name of every float field to its address in c.
func (c *Config) numeric() map[string]*float64 {
	return map[string]*float64{
		"rest_length":  &c.RestLength,
		"stiffness":    &c.Stiffness,
		"gravity":      &c.Gravity,
		"node_mass":    &c.NodeMass,
		"damping_rate": &c.DampingRate,
		"delta_time":   &c.DeltaTime,
		"drag_radius":  &c.DragRadius,
		"y_offset":     &c.YOffset,
		"max_speed":    &c.MaxSpeed,
		"width":        &c.Width,
		"height":       &c.Height,
	}
}

// Set assigns a numeric field by its yaml name. Integer fields accept whole
// values only.
func (c *Config) Set(name string, value float64) error {
	if field, ok := c.numeric()[name]; ok {
		*field = value
		return nil
	}

	var target *int
	switch name {
	case "rows":
		target = &c.Rows
	case "cols":
		target = &c.Cols
	case "tick_rate":
		target = &c.TickRate
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	if value != float64(int(value)) {
		return fmt.Errorf("%s must be a whole number, got %g", name, value)
	}
	*target = int(value)
	return nil
}

func (c *Config) Get(name string) (float64, error) {
	if field, ok := c.numeric()[name]; ok {
		return *field, nil
	}
	switch name {
	case "rows":
		return float64(c.Rows), nil
	case "cols":
		return float64(c.Cols), nil
	case "tick_rate":
		return float64(c.TickRate), nil
	}
	return 0, fmt.Errorf("unknown parameter: %s", name)
}

func numericNames() []string {
	var c Config
	names := make([]string, 0, 11)
	for name := range c.numeric() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParamNames lists every name accepted by Set.
func ParamNames() []string {
	names := append([]string{"rows", "cols", "tick_rate"}, numericNames()...)
	sort.Strings(names)
	return names
}
