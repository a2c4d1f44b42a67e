package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/experiment"
	"github.com/san-kum/clothsim/internal/gui/scene"
	"github.com/san-kum/clothsim/internal/physics"
	"github.com/san-kum/clothsim/internal/sim"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = color.RGBA{10, 10, 10, 255}
	ColCloth   = color.RGBA{180, 180, 180, 255}
	ColAnchor  = color.RGBA{255, 255, 255, 255}
	ColPointer = color.RGBA{90, 90, 90, 255}
	ColFailed  = color.RGBA{255, 70, 70, 255}
)

// App is the windowed front end. Ebiten calls Update at the configured tick
// rate, which feeds the cursor to the drag controller and advances the cloth
// one step; Draw replays the shapes recorded by that step.
type App struct {
	exp   *experiment.Experiment
	sim   *sim.Simulator
	cfg   *config.Config
	scale float64

	frame   scene.List
	shown   scene.List
	Running bool
	ShowHUD bool
	err     error
}

// NewApp builds the simulation. scale is window pixels per world unit.
func NewApp(cfg *config.Config, scale float64) (*App, error) {
	exp, err := experiment.New(cfg)
	if err != nil {
		return nil, err
	}
	if scale <= 0 {
		scale = 1
	}
	return &App{
		exp:     exp,
		sim:     exp.GetSimulator(),
		cfg:     cfg,
		scale:   scale,
		Running: true,
		ShowHUD: true,
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, scale float64) error {
	app, err := NewApp(cfg, scale)
	if err != nil {
		return err
	}
	w, h := app.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("clothsim")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TickRate)
	return ebiten.RunGame(app)
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && a.err == nil {
		a.Running = !a.Running
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if a.sim.Scheme() == sim.GaussSeidel {
			a.sim.SetScheme(sim.Jacobi)
		} else {
			a.sim.SetScheme(sim.GaussSeidel)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	mx, my := ebiten.CursorPosition()
	px, py := float64(mx)/a.scale, float64(my)/a.scale
	if !a.Running {
		a.sim.Hover(px, py)
		return nil
	}
	a.sim.Pointer(px, py)

	if err := a.sim.Tick(&a.frame); err != nil {
		a.err = err
		a.Running = false
		return nil
	}
	a.frame.Swap(&a.shown)
	return nil
}

func (a *App) reset() {
	if err := a.exp.Restart(); err != nil {
		a.err = err
		return
	}
	a.err = nil
	a.Running = true
	a.shown.Clear()
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(ColBg)
	a.drawScene(screen)

	if !a.ShowHUD {
		return
	}
	status := "RUNNING"
	switch {
	case a.err != nil:
		status = "DIVERGED: " + a.err.Error()
	case !a.Running:
		status = "PAUSED"
	}
	l := a.sim.Lattice()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s  t=%.2fs  tick=%d  %s\nke=%.2f  vmax=%.2f  tps=%.0f\n[SPACE] PAUSE  [R] RESET  [S] SCHEME  [H] HUD  [Q] QUIT",
		status, a.sim.Time(), a.sim.Ticks(), a.sim.Scheme(),
		physics.KineticEnergy(l), physics.MaxSpeed(l), ebiten.ActualTPS(),
	))
}

// Layout keeps the logical screen at the configured surface size; ebiten
// scales it to whatever the window is resized to.
func (a *App) Layout(_, _ int) (int, int) {
	return int(a.cfg.Width * a.scale), int(a.cfg.Height * a.scale)
}
