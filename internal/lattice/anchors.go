package lattice

import (
	"fmt"
	"sort"
)

// LockFunc decides which nodes start as anchors.
type LockFunc func(row, col int) bool

// AlternateTop pins every even-indexed column of the first row.
func AlternateTop(row, col int) bool { return row == 0 && col%2 == 0 }

// TopRow pins the whole first row.
func TopRow(row, _ int) bool { return row == 0 }

// None pins nothing.
func None(_, _ int) bool { return false }

// Corners returns a predicate pinning the two top corners of a grid with the
// given column count.
func Corners(cols int) LockFunc {
	return func(row, col int) bool {
		return row == 0 && (col == 0 || col == cols-1)
	}
}

var anchors = map[string]func(cols int) LockFunc{
	"alternate": func(int) LockFunc { return AlternateTop },
	"top":       func(int) LockFunc { return TopRow },
	"corners":   Corners,
	"none":      func(int) LockFunc { return None },
}

// AnchorByName resolves a named anchor pattern for a grid with cols columns.
func AnchorByName(name string, cols int) (LockFunc, error) {
	fn, ok := anchors[name]
	if !ok {
		return nil, fmt.Errorf("unknown anchor pattern: %s (available: %v)", name, AnchorNames())
	}
	return fn(cols), nil
}

func AnchorNames() []string {
	names := make([]string, 0, len(anchors))
	for name := range anchors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
