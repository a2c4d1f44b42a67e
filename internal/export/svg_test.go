package export

import (
	"strings"
	"testing"

	"github.com/san-kum/clothsim/internal/gui/scene"
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 2)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("malformed svg document")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Error("unexpected document size")
	}
}

func TestLatticeToSVG(t *testing.T) {
	nodes := []lattice.Node{
		{X: 0, Y: 0, Locked: true}, {X: 10, Y: 0}, {X: 20, Y: 0},
		{X: 0, Y: 10}, {X: 10, Y: 10}, {X: 20, Y: 10},
	}

	svg, err := LatticeToSVG(nodes, 2, 3, 40, 20, 1)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	// 2 rows * 2 horizontal + 3 vertical
	if got := strings.Count(svg, "<line"); got != 7 {
		t.Errorf("expected 7 segments, got %d", got)
	}
	if got := strings.Count(svg, "<circle"); got != 6 {
		t.Errorf("expected 6 nodes, got %d", got)
	}
	if got := strings.Count(svg, `fill="`+anchorFill+`"`); got != 1 {
		t.Errorf("expected 1 anchor, got %d", got)
	}

	if _, err := LatticeToSVG(nodes, 3, 3, 40, 20, 1); err == nil {
		t.Error("expected error for mismatched shape")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{0}, []float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single sample")
	}

	svg := SeriesToSVG([]float64{0, 1, 2}, []float64{3, 1, 2}, 100, 50, "#fff")
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("expected 2 line segments, got %d", got)
	}
	if !strings.Contains(svg, `stroke="#fff"`) {
		t.Error("stroke color missing")
	}
}

func TestDrawMatchesTick(t *testing.T) {
	l, err := lattice.New(3, 4, 10, lattice.Layout{Left: 5, Top: 5}, lattice.AlternateTop)
	if err != nil {
		t.Fatal(err)
	}

	var list scene.List
	Draw(&list, l.Snapshot(), 3, 4)

	if got := list.Count(scene.Anchor); got != 2 {
		t.Errorf("expected 2 anchors, got %d", got)
	}
	if got := list.Count(scene.Node); got != 10 {
		t.Errorf("expected 10 nodes, got %d", got)
	}
	if got := list.Count(scene.Segment); got != 17 {
		t.Errorf("expected 17 segments, got %d", got)
	}
	if got := list.Count(scene.Circle); got != 0 {
		t.Errorf("stored lattice should have no drag overlay, got %d", got)
	}
}
