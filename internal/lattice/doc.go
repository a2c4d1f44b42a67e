// Package lattice holds the fixed-topology grid of point masses.
//
// A [Lattice] owns rows*cols [Node] values in row-major order. Each node is
// connected to the axis-aligned neighbours that exist inside the grid: no
// wraparound and no diagonal edges.
//
// Node positions are fixed at construction from a [Layout]; later changes to
// the drawing surface never move them.
//
// # Thread Safety
//
// Lattice is NOT thread-safe. A single goroutine must own all reads and
// writes during a tick.
package lattice
