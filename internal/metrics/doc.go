// Package metrics provides sim.Metric implementations that summarise a run
// in a single number each.
package metrics
