package lattice

import (
	"errors"
	"math"
	"testing"
)

func TestNewPlacesNodes(t *testing.T) {
	l, err := New(3, 4, 10, Layout{Left: 5, Top: 7, YOffset: 2}, AlternateTop)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if l.Rows() != 3 || l.Cols() != 4 || l.Len() != 12 {
		t.Fatalf("unexpected shape %dx%d (%d nodes)", l.Rows(), l.Cols(), l.Len())
	}

	n := l.At(2, 3)
	if n.X != 35 || n.Y != 29 {
		t.Errorf("node (2,3) at (%.1f, %.1f), want (35, 29)", n.X, n.Y)
	}
	if n.VX != 0 || n.VY != 0 {
		t.Errorf("node should start at rest, got v=(%f, %f)", n.VX, n.VY)
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		rest       float64
	}{
		{"zero rows", 0, 3, 1},
		{"negative cols", 3, -1, 1},
		{"zero rest length", 3, 3, 0},
		{"negative rest length", 3, 3, -2},
		{"NaN rest length", 3, 3, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rows, tt.cols, tt.rest, Layout{}, nil)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

func TestAlternateTopAnchors(t *testing.T) {
	l, err := New(2, 5, 1, Layout{}, AlternateTop)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	l.Each(func(row, col int, n *Node) {
		want := row == 0 && col%2 == 0
		if n.Locked != want {
			t.Errorf("node (%d,%d) locked=%v, want %v", row, col, n.Locked, want)
		}
	})
}

func TestNeighbors(t *testing.T) {
	l, err := New(3, 3, 1, Layout{}, nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	tests := []struct {
		row, col int
		want     []*Node
	}{
		{0, 0, []*Node{l.At(1, 0), l.At(0, 1)}},
		{1, 1, []*Node{l.At(0, 1), l.At(1, 0), l.At(2, 1), l.At(1, 2)}},
		{2, 2, []*Node{l.At(1, 2), l.At(2, 1)}},
		{0, 1, []*Node{l.At(0, 0), l.At(1, 1), l.At(0, 2)}},
		{3, 0, nil},
	}

	for _, tt := range tests {
		got := l.Neighbors(tt.row, tt.col)
		if len(got) != len(tt.want) {
			t.Errorf("(%d,%d): got %d neighbors, want %d", tt.row, tt.col, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("(%d,%d): neighbor %d mismatch", tt.row, tt.col, i)
			}
		}
	}
}

func TestNeighborsSingleRow(t *testing.T) {
	l, err := New(1, 2, 1, Layout{}, nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if got := l.Neighbors(0, 0); len(got) != 1 || got[0] != l.At(0, 1) {
		t.Errorf("expected only right neighbor, got %v", got)
	}
}

func TestCentered(t *testing.T) {
	layout := Centered(200, 100, 11, 11, 10, 0)
	if layout.Left != 50 || layout.Top != 0 {
		t.Errorf("got left=%.1f top=%.1f, want 50, 0", layout.Left, layout.Top)
	}

	l, err := New(11, 11, 10, layout, nil)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	cx, cy := l.Centroid()
	if math.Abs(cx-100) > 1e-9 || math.Abs(cy-50) > 1e-9 {
		t.Errorf("centroid (%.3f, %.3f), want (100, 50)", cx, cy)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l, _ := New(2, 2, 1, Layout{}, nil)
	c := l.Clone()
	c.At(0, 0).X = 99

	if l.At(0, 0).X == 99 {
		t.Error("Clone shares node storage")
	}

	if err := l.CopyFrom(c); err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if l.At(0, 0).X != 99 {
		t.Error("CopyFrom did not copy state")
	}

	other, _ := New(3, 2, 1, Layout{}, nil)
	if err := l.CopyFrom(other); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("expected shape mismatch error, got %v", err)
	}
}

func TestSnapshotRestore(t *testing.T) {
	l, _ := New(2, 3, 1, Layout{}, nil)
	snap := l.Snapshot()
	l.At(1, 1).VX = 4

	if err := l.Restore(snap); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if l.At(1, 1).VX != 0 {
		t.Error("Restore did not reset velocity")
	}
	if err := l.Restore(snap[:2]); err == nil {
		t.Error("expected error restoring short snapshot")
	}
}

func TestAnchorByName(t *testing.T) {
	for _, name := range AnchorNames() {
		if _, err := AnchorByName(name, 5); err != nil {
			t.Errorf("anchor %s: %v", name, err)
		}
	}

	corners, _ := AnchorByName("corners", 5)
	if !corners(0, 0) || !corners(0, 4) || corners(0, 2) || corners(1, 0) {
		t.Error("corners predicate wrong")
	}

	if _, err := AnchorByName("nope", 5); err == nil {
		t.Error("expected error for unknown anchor")
	}
}

func TestNodeValidity(t *testing.T) {
	n := Node{X: 1, Y: 2, VX: 3, VY: 4}
	if !n.IsValid() {
		t.Error("finite node reported invalid")
	}
	if n.Speed() != 5 {
		t.Errorf("speed = %f, want 5", n.Speed())
	}
	n.VY = math.Inf(1)
	if n.IsValid() {
		t.Error("infinite velocity reported valid")
	}
}
