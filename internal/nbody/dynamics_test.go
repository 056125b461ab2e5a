package nbody

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fourBody reproduces the reference four-body initial conditions.
func fourBody() *System {
	sys, err := New(DefaultParams(), []Body{
		{Pos: Vec2{X: -3.0, Y: 2.4}, Vel: Vec2{X: -0.8}, Mass: 1.0},
		{Pos: Vec2{}, Vel: Vec2{}, Mass: 2.0},
		{Pos: Vec2{X: 3.4, Y: 2.8}, Vel: Vec2{X: 0.8}, Mass: 3.0},
		{Pos: Vec2{X: 1.2, Y: -3.2}, Vel: Vec2{X: 0.6, Y: 0.35}, Mass: 0.6},
	})
	if err != nil {
		panic(err)
	}
	return sys
}

var _ = Describe("ToCOMFrame", func() {
	It("zeroes the mass-weighted mean position and velocity", func() {
		sys := fourBody()
		sys.ToCOMFrame()

		var r, v Vec2
		for i := 0; i < sys.Len(); i++ {
			r = r.Add(sys.Position(i).Scale(sys.Mass(i)))
			v = v.Add(sys.Velocity(i).Scale(sys.Mass(i)))
		}
		Expect(r.Norm()).To(BeNumerically("<", 1e-12))
		Expect(v.Norm()).To(BeNumerically("<", 1e-12))
	})

	It("is idempotent", func() {
		sys := fourBody()
		sys.ToCOMFrame()
		once := sys.State()

		sys.ToCOMFrame()
		twice := sys.State()

		for i := range once {
			Expect(twice[i]).To(BeNumerically("~", once[i], 1e-12))
		}
	})
})

var _ = Describe("Step", func() {
	It("conserves linear momentum over thousands of steps", func() {
		sys := fourBody()
		sys.ToCOMFrame()

		// Characteristic momentum scale of the scenario.
		scale := 0.0
		for i := 0; i < sys.Len(); i++ {
			scale += sys.Mass(i) * sys.Velocity(i).Norm()
		}

		for i := 0; i < 2000; i++ {
			sys.Step(0.01)
		}
		Expect(sys.Momentum().Norm()).To(BeNumerically("<", 1e-6*scale))
	})

	It("conserves total mass", func() {
		sys := fourBody()
		sys.ToCOMFrame()
		m0 := sys.TotalMass()
		for i := 0; i < 100; i++ {
			sys.Step(0.01)
		}
		Expect(sys.TotalMass()).To(Equal(m0))
	})

	It("closes the canonical two-body orbit after one period", func() {
		g, m1, m2, d := 1.0, 1.0, 3.0, 6.0
		sys := twoBodyCircular(g, m1, m2, d)

		start := sys.State()

		period := 2 * math.Pi * math.Sqrt(d*d*d/(g*(m1+m2)))
		dt := 0.001
		steps := int(period/dt + 0.5)
		for i := 0; i < steps; i++ {
			sys.Step(dt)
		}

		end := sys.State()
		for i := 0; i < sys.Len(); i++ {
			Expect(end[i*4]).To(BeNumerically("~", start[i*4], 0.02))
			Expect(end[i*4+1]).To(BeNumerically("~", start[i*4+1], 0.02))
			Expect(end[i*4+2]).To(BeNumerically("~", start[i*4+2], 0.005))
			Expect(end[i*4+3]).To(BeNumerically("~", start[i*4+3], 0.005))
		}
	})

	It("keeps energy inside a bounded envelope on a long run", func() {
		sys := twoBodyCircular(1.0, 1.0, 3.0, 6.0)

		e0 := sys.Energy()
		maxDrift := 0.0
		for i := 0; i < 10000; i++ {
			sys.Step(0.01)
			drift := math.Abs(sys.Energy()-e0) / math.Abs(e0)
			if drift > maxDrift {
				maxDrift = drift
			}
		}
		Expect(maxDrift).To(BeNumerically("<", 0.01))
	})

	It("conserves angular momentum on the binary", func() {
		sys := twoBodyCircular(1.0, 1.0, 3.0, 6.0)
		l0 := sys.AngularMomentum()
		for i := 0; i < 5000; i++ {
			sys.Step(0.01)
		}
		Expect(sys.AngularMomentum()).To(BeNumerically("~", l0, 1e-8*math.Abs(l0)+1e-12))
	})
})
