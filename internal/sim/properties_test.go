package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/control"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/lattice"
	"github.com/san-kum/clothsim/internal/physics"
	"github.com/san-kum/clothsim/internal/sim"
)

const dt = 1.0 / 60

type setup struct {
	rows, cols int
	params     physics.Params
	damping    float64
	lock       lattice.LockFunc
	scheme     sim.Scheme
	drag       *control.Drag
}

func build(c setup) *sim.Simulator {
	l, err := lattice.New(c.rows, c.cols, c.params.RestLength, lattice.Layout{Left: 100, Top: 40}, c.lock)
	Expect(err).NotTo(HaveOccurred())

	s, err := sim.New(l, sim.Options{
		Params:        c.params,
		Integrator:    integrators.NewDamped(dt, c.params.NodeMass, c.damping, 0),
		Scheme:        c.scheme,
		ValidateState: true,
	}, c.drag)
	Expect(err).NotTo(HaveOccurred())
	return s
}

// wiggle drags the pointer back and forth across the middle of the cloth.
func wiggle(ticks int) []sim.PointerEvent {
	events := make([]sim.PointerEvent, 0, ticks)
	for i := 0; i < ticks; i += 3 {
		events = append(events, sim.PointerEvent{
			Tick: i,
			X:    120 + 15*math.Sin(float64(i)/7),
			Y:    60 + 10*math.Cos(float64(i)/5),
		})
	}
	return events
}

var cloth = physics.Params{RestLength: 10, Stiffness: 40, Gravity: 9.81, NodeMass: 1}
var weightless = physics.Params{RestLength: 10, Stiffness: 40, Gravity: 0, NodeMass: 1}

var _ = Describe("Simulator", func() {
	for _, scheme := range []sim.Scheme{sim.GaussSeidel, sim.Jacobi} {
		Context("with the "+scheme.String()+" scheme", func() {
			It("never moves locked nodes", func() {
				s := build(setup{
					rows: 6, cols: 7, params: cloth, damping: 1.5,
					lock: lattice.AlternateTop, scheme: scheme,
					drag: control.NewDrag(25, true),
				})
				initial := s.Lattice().Snapshot()

				_, err := s.Run(context.Background(), 300, wiggle(300))
				Expect(err).NotTo(HaveOccurred())

				final := s.Lattice().Snapshot()
				moved := 0
				for i, n := range initial {
					if n.Locked {
						Expect(final[i].X).To(Equal(n.X))
						Expect(final[i].Y).To(Equal(n.Y))
					} else if final[i].X != n.X || final[i].Y != n.Y {
						moved++
					}
				}
				Expect(moved).To(BeNumerically(">", 0))
			})

			It("keeps a weightless pair at rest length in place", func() {
				s := build(setup{rows: 1, cols: 2, params: weightless, damping: 1, scheme: scheme})
				initial := s.Lattice().Snapshot()

				fx, fy := physics.NetForce(s.Lattice(), 0, 0, weightless)
				Expect(fx).To(BeZero())
				Expect(fy).To(BeZero())

				_, err := s.Run(context.Background(), 500, nil)
				Expect(err).NotTo(HaveOccurred())

				for i, n := range s.Lattice().Snapshot() {
					Expect(n.X).To(BeNumerically("~", initial[i].X, 1e-12))
					Expect(n.Y).To(BeNumerically("~", initial[i].Y, 1e-12))
				}
			})

			It("is deterministic for identical inputs", func() {
				run := func() []lattice.Node {
					s := build(setup{
						rows: 8, cols: 8, params: cloth, damping: 1.5,
						lock: lattice.AlternateTop, scheme: scheme,
						drag: control.NewDrag(20, false),
					})
					result, err := s.Run(context.Background(), 240, wiggle(240))
					Expect(err).NotTo(HaveOccurred())
					Expect(result.Errors).To(BeEmpty())
					return result.Final
				}

				Expect(run()).To(Equal(run()))
			})

			It("stays finite over a long run", func() {
				s := build(setup{
					rows: 11, cols: 11, params: cloth, damping: 1.5,
					lock: lattice.AlternateTop, scheme: scheme,
					drag: control.NewDrag(30, false),
				})
				result, err := s.Run(context.Background(), 1200, wiggle(600))
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Errors).To(BeEmpty())
				Expect(result.Ticks).To(Equal(1200))
			})
		})
	}

	Describe("damping", func() {
		It("drains kinetic energy of a rigidly drifting cloth every tick", func() {
			s := build(setup{rows: 4, cols: 4, params: weightless, damping: 2, scheme: sim.Jacobi})
			s.Lattice().Each(func(_, _ int, n *lattice.Node) {
				n.VX, n.VY = 3, -2
			})

			initial := physics.KineticEnergy(s.Lattice())
			prev := initial
			for i := 0; i < 100; i++ {
				Expect(s.Tick(nil)).To(Succeed())
				ke := physics.KineticEnergy(s.Lattice())
				Expect(ke).To(BeNumerically("<=", prev))
				prev = ke
			}
			Expect(prev).To(BeNumerically("<", initial*0.01))
		})

		It("drains an isolated node under either scheme", func() {
			for _, scheme := range []sim.Scheme{sim.GaussSeidel, sim.Jacobi} {
				s := build(setup{rows: 1, cols: 1, params: weightless, damping: 0.5, scheme: scheme})
				s.Lattice().At(0, 0).VX = 10

				prev := physics.KineticEnergy(s.Lattice())
				for i := 0; i < 50; i++ {
					Expect(s.Tick(nil)).To(Succeed())
					ke := physics.KineticEnergy(s.Lattice())
					Expect(ke).To(BeNumerically("<", prev))
					prev = ke
				}
			}
		})
	})

	Describe("spring sign", func() {
		var l *lattice.Lattice

		BeforeEach(func() {
			var err error
			l, err = lattice.New(1, 2, 10, lattice.Layout{}, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("pulls stretched neighbours together", func() {
			l.At(0, 1).X = 14
			left, _ := physics.NetForce(l, 0, 0, weightless)
			right, _ := physics.NetForce(l, 0, 1, weightless)
			Expect(left).To(BeNumerically(">", 0))
			Expect(right).To(BeNumerically("<", 0))
		})

		It("pushes compressed neighbours apart", func() {
			l.At(0, 1).X = 7
			left, _ := physics.NetForce(l, 0, 0, weightless)
			right, _ := physics.NetForce(l, 0, 1, weightless)
			Expect(left).To(BeNumerically("<", 0))
			Expect(right).To(BeNumerically(">", 0))
		})
	})

	Describe("drag gating", func() {
		It("only pushes nodes strictly inside the radius", func() {
			drag := control.NewDrag(10, false)
			s := build(setup{rows: 1, cols: 4, params: weightless, damping: 1, drag: drag})
			// nodes at x = 100, 110, 120, 130 on y = 40
			drag.Prime(103, 40)

			Expect(s.Pointer(105, 40)).To(Equal(2))

			vx := []float64{}
			s.Lattice().Each(func(_, _ int, n *lattice.Node) { vx = append(vx, n.VX) })
			Expect(vx).To(Equal([]float64{2, 2, 0, 0}))
		})
	})

	Describe("jacobi scheme", func() {
		It("keeps a symmetric perturbation symmetric", func() {
			s := build(setup{rows: 1, cols: 3, params: weightless, damping: 0.5, scheme: sim.Jacobi})
			s.Lattice().At(0, 1).Y -= 4

			for i := 0; i < 120; i++ {
				Expect(s.Tick(nil)).To(Succeed())
			}

			left, mid, right := s.Lattice().At(0, 0), s.Lattice().At(0, 1), s.Lattice().At(0, 2)
			Expect(mid.X - left.X).To(BeNumerically("~", right.X-mid.X, 1e-9))
			Expect(left.Y).To(BeNumerically("~", right.Y, 1e-9))
		})
	})
})
