package lattice

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimensions is returned when a lattice cannot be built from the
// requested shape or spacing.
var ErrInvalidDimensions = errors.New("lattice: invalid dimensions")

// Node is a point mass. Locked nodes are anchors and never move.
type Node struct {
	X, Y   float64
	VX, VY float64
	Locked bool
}

// IsValid reports whether every component is finite.
func (n *Node) IsValid() bool {
	for _, v := range [4]float64{n.X, n.Y, n.VX, n.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Speed returns the velocity magnitude.
func (n *Node) Speed() float64 {
	return math.Hypot(n.VX, n.VY)
}

// Layout is the position of node (0,0) on the drawing surface.
type Layout struct {
	Left    float64
	Top     float64
	YOffset float64
}

// Centered returns the layout that centers a rows x cols grid with the given
// spacing inside a width x height surface.
func Centered(width, height float64, rows, cols int, restLength, yOffset float64) Layout {
	return Layout{
		Left:    width/2 - float64(cols-1)*restLength/2,
		Top:     height/2 - float64(rows-1)*restLength/2,
		YOffset: yOffset,
	}
}

type Lattice struct {
	rows, cols int
	restLength float64
	nodes      []Node
}

// New builds the grid. Node (row, col) is placed at
// (Left + col*restLength, Top + row*restLength + YOffset) and starts locked
// when locked(row, col) is true. A nil locked predicate pins nothing.
func New(rows, cols int, restLength float64, layout Layout, locked LockFunc) (*Lattice, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d grid", ErrInvalidDimensions, rows, cols)
	}
	if restLength <= 0 || math.IsNaN(restLength) || math.IsInf(restLength, 0) {
		return nil, fmt.Errorf("%w: rest length %g", ErrInvalidDimensions, restLength)
	}
	if locked == nil {
		locked = None
	}

	l := &Lattice{
		rows:       rows,
		cols:       cols,
		restLength: restLength,
		nodes:      make([]Node, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			l.nodes[r*cols+c] = Node{
				X:      layout.Left + float64(c)*restLength,
				Y:      layout.Top + float64(r)*restLength + layout.YOffset,
				Locked: locked(r, c),
			}
		}
	}
	return l, nil
}

func (l *Lattice) Rows() int { return l.rows }
func (l *Lattice) Cols() int { return l.cols }
func (l *Lattice) Len() int  { return len(l.nodes) }

func (l *Lattice) RestLength() float64 { return l.restLength }

func (l *Lattice) InBounds(row, col int) bool {
	return row >= 0 && row < l.rows && col >= 0 && col < l.cols
}

// At returns the node at (row, col), or nil when out of bounds.
func (l *Lattice) At(row, col int) *Node {
	if !l.InBounds(row, col) {
		return nil
	}
	return &l.nodes[row*l.cols+col]
}

// neighbour offsets in the fixed order up, left, down, right
var offsets = [4][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}

// Neighbors returns the existing axis neighbours of (row, col) in the order
// up, left, down, right.
func (l *Lattice) Neighbors(row, col int) []*Node {
	return l.AppendNeighbors(make([]*Node, 0, 4), row, col)
}

// AppendNeighbors appends the neighbours of (row, col) to dst and returns the
// extended slice. Out-of-bounds cells have no neighbours.
func (l *Lattice) AppendNeighbors(dst []*Node, row, col int) []*Node {
	if !l.InBounds(row, col) {
		return dst
	}
	for _, o := range offsets {
		if n := l.At(row+o[0], col+o[1]); n != nil {
			dst = append(dst, n)
		}
	}
	return dst
}

// Each visits every node in row-major order.
func (l *Lattice) Each(fn func(row, col int, n *Node)) {
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			fn(r, c, &l.nodes[r*l.cols+c])
		}
	}
}

func (l *Lattice) Clone() *Lattice {
	c := &Lattice{
		rows:       l.rows,
		cols:       l.cols,
		restLength: l.restLength,
		nodes:      make([]Node, len(l.nodes)),
	}
	copy(c.nodes, l.nodes)
	return c
}

// CopyFrom overwrites node state with src. Both lattices must share a shape.
func (l *Lattice) CopyFrom(src *Lattice) error {
	if src.rows != l.rows || src.cols != l.cols {
		return fmt.Errorf("%w: copy %dx%d into %dx%d", ErrInvalidDimensions, src.rows, src.cols, l.rows, l.cols)
	}
	copy(l.nodes, src.nodes)
	return nil
}

// Snapshot returns a value copy of all nodes in row-major order.
func (l *Lattice) Snapshot() []Node {
	s := make([]Node, len(l.nodes))
	copy(s, l.nodes)
	return s
}

// Restore loads a snapshot taken from a lattice of the same shape.
func (l *Lattice) Restore(nodes []Node) error {
	if len(nodes) != len(l.nodes) {
		return fmt.Errorf("%w: snapshot has %d nodes, lattice has %d", ErrInvalidDimensions, len(nodes), len(l.nodes))
	}
	copy(l.nodes, nodes)
	return nil
}

// Centroid returns the mean node position.
func (l *Lattice) Centroid() (x, y float64) {
	for i := range l.nodes {
		x += l.nodes[i].X
		y += l.nodes[i].Y
	}
	n := float64(len(l.nodes))
	return x / n, y / n
}

// Bounds returns the axis-aligned bounding box of all nodes.
func (l *Lattice) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for i := range l.nodes {
		n := &l.nodes[i]
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	return
}
