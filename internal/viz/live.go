package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/experiment"
	"github.com/san-kum/clothsim/internal/physics"
	"github.com/san-kum/clothsim/internal/sim"
)

const historyCapacity = 300

// canvas position inside the terminal, from canvasStyle's padding
const (
	canvasLeft = 2
	canvasTop  = 1
)

var canvasStyle = lipgloss.NewStyle().Padding(canvasTop, canvasLeft)

type TickMsg time.Time

// Model is the live terminal view. Every tick advances the simulation by one
// fixed step and redraws the canvas; mouse motion over the terminal drags the
// cloth.
type Model struct {
	exp      *experiment.Experiment
	sim      *sim.Simulator
	cfg      *config.Config
	canvas   *Canvas
	renderer *TermRenderer
	theme    Theme
	pal      palette

	running  bool
	showHelp bool
	err      error
	pushed   int

	kinetic  []float64
	speeds   []float64
	keOut    readout
	speedOut readout

	recorder *recorder
}

// NewModel builds the simulation described by cfg and a canvas sized so that
// one world unit is one Braille dot.
func NewModel(cfg *config.Config) (Model, error) {
	exp, err := experiment.New(cfg)
	if err != nil {
		return Model{}, err
	}

	cols := int(math.Ceil(cfg.Width / 2))
	rows := int(math.Ceil(cfg.Height / 4))
	canvas := NewCanvas(cols, rows)

	theme := ThemeCyberpunk
	return Model{
		exp:      exp,
		sim:      exp.GetSimulator(),
		cfg:      cfg,
		canvas:   canvas,
		renderer: NewTermRenderer(canvas, cfg.Width, cfg.Height),
		theme:    theme,
		pal:      theme.palette(),
		running:  true,
		kinetic:  make([]float64, 0, historyCapacity),
		speeds:   make([]float64, 0, historyCapacity),
		keOut:    newReadout(cfg.TickRate),
		speedOut: newReadout(cfg.TickRate),
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.TickPeriod(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recorder != nil {
				m.recorder.save()
			}
			return m, tea.Quit
		case " ", "space":
			if m.err == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "s":
			if m.sim.Scheme() == sim.GaussSeidel {
				m.sim.SetScheme(sim.Jacobi)
			} else {
				m.sim.SetScheme(sim.GaussSeidel)
			}
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.pal = m.theme.palette()
		case "g":
			if m.recorder != nil {
				m.recorder.save()
				m.recorder = nil
			} else {
				m.recorder = newRecorder("cloth.gif")
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		x, y := m.renderer.CellToWorld(msg.X-canvasLeft, msg.Y-canvasTop)
		if m.running {
			m.pushed = m.sim.Pointer(x, y)
		} else {
			// keep tracking while paused so resuming does not fling the cloth
			m.sim.Hover(x, y)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		if m.recorder != nil {
			m.recorder.capture(m.canvas)
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the cloth one tick and records the readouts.
func (m *Model) step() {
	if err := m.sim.Tick(m.renderer); err != nil {
		m.err = err
		m.running = false
		return
	}

	l := m.sim.Lattice()
	m.kinetic = appendCapped(m.kinetic, physics.KineticEnergy(l))
	m.speeds = appendCapped(m.speeds, physics.MaxSpeed(l))
	m.keOut.step(m.kinetic[len(m.kinetic)-1])
	m.speedOut.step(m.speeds[len(m.speeds)-1])
}

func appendCapped(values []float64, v float64) []float64 {
	values = append(values, v)
	if len(values) > historyCapacity {
		values = values[1:]
	}
	return values
}

// reset restores the initial lattice.
func (m *Model) reset() {
	if err := m.exp.Restart(); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.running = true
	m.pushed = 0
	m.kinetic = m.kinetic[:0]
	m.speeds = m.speeds[:0]
	m.keOut = newReadout(m.cfg.TickRate)
	m.speedOut = newReadout(m.cfg.TickRate)
	m.renderer.Clear()
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.StyledString(m.pal.cloth, m.pal.anchor))

	var s strings.Builder
	s.WriteString(m.pal.header.Render("CLOTH") + "\n")

	switch {
	case m.err != nil:
		s.WriteString(m.pal.failed.Render("DIVERGED") + "\n\n")
	case m.running:
		s.WriteString(m.pal.running.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(m.pal.paused.Render("PAUSED") + "\n\n")
	}
	if m.recorder != nil {
		s.WriteString(m.pal.recording.Render("● REC") + "\n")
	}

	if len(m.kinetic) > 1 {
		chart := asciigraph.Plot(m.kinetic, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(m.pal.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(m.pal.label.Render(label) + m.pal.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.sim.Time()))
	row("Tick", fmt.Sprintf("%d", m.sim.Ticks()))
	row("Scheme", m.sim.Scheme().String())
	row("Grid", fmt.Sprintf("%dx%d", m.cfg.Rows, m.cfg.Cols))
	row("Kinetic", fmt.Sprintf("%.2f", m.keOut.pos))
	row("Max speed", fmt.Sprintf("%.2f", m.speedOut.pos))
	row("Dragging", fmt.Sprintf("%d nodes", m.pushed))
	if m.err != nil {
		row("Error", m.err.Error())
	}

	if len(m.speeds) > 0 {
		s.WriteString("\n" + m.pal.speedTrace(m.speeds, 30) + "\n")
	}

	s.WriteString("\n" + m.pal.rule(30) + "\n")
	if m.showHelp {
		s.WriteString(m.pal.hint.Render(strings.Join([]string{
			"Mouse  - Drag the cloth",
			"Space  - Pause/Resume",
			"R      - Reset cloth",
			"S      - Toggle gauss-seidel/jacobi",
			"T      - Cycle themes",
			"G      - Toggle GIF recording",
			"?      - Toggle this help",
			"Q      - Quit",
		}, "\n")))
	} else {
		s.WriteString(m.pal.hint.Render("SP:Pause R:Reset S:Scheme\nT:Theme  G:Record ?:Help Q:Quit"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.pal.panel.Render(s.String()))
}

// Run starts the live view in the alternate screen with mouse motion
// reporting enabled.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
