package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/clothsim/internal/control"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/physics"
	"github.com/san-kum/clothsim/internal/sim"
)

var _ sim.Renderer = (*LiveRenderer)(nil)

func TestLiveRendererGlyphPriority(t *testing.T) {
	r := NewLiveRenderer(&bytes.Buffer{}, "test", 10, 5, 10, 5)

	r.DrawNode(2, 2, false)
	r.DrawSegment(0, 2, 9, 2)
	if r.canvas[2][2] != glyphNode {
		t.Errorf("spring overwrote node: %q", r.canvas[2][2])
	}
	if r.canvas[2][5] != glyphSpring {
		t.Errorf("expected spring glyph, got %q", r.canvas[2][5])
	}

	r.DrawNode(5, 2, true)
	if r.canvas[2][5] != glyphAnchor {
		t.Errorf("expected anchor glyph, got %q", r.canvas[2][5])
	}

	r.Clear()
	if r.canvas[2][2] != glyphEmpty {
		t.Error("clear left glyphs behind")
	}
}

func TestLiveRendererFlush(t *testing.T) {
	l, err := lattice.New(2, 3, 10, lattice.Layout{Left: 20, Top: 10}, lattice.TopRow)
	if err != nil {
		t.Fatal(err)
	}
	p := physics.Params{RestLength: 10, Stiffness: 40, Gravity: 9.81, NodeMass: 1}
	s, err := sim.New(l, sim.Options{Params: p, Integrator: integrators.NewDamped(1.0/60, 1, 1, 0)}, control.NewDrag(5, false))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	r := NewLiveRenderer(&out, "drape", 40, 20, 80, 40)
	if err := s.Tick(r); err != nil {
		t.Fatal(err)
	}
	r.Flush(s)

	frame := out.String()
	if !strings.HasPrefix(frame, clearScreen) {
		t.Error("frame should start by clearing the screen")
	}
	if strings.Count(frame, string(glyphAnchor)) != 3 {
		t.Errorf("expected 3 anchors in frame:\n%s", frame)
	}
	if !strings.Contains(frame, "tick=1") {
		t.Errorf("missing status line:\n%s", frame)
	}
}
