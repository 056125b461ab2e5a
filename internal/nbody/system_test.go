package nbody

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("New", func() {
	valid := []Body{
		{Pos: Vec2{X: -1}, Mass: 1.0},
		{Pos: Vec2{X: 1}, Mass: 3.0},
	}

	It("copies the body list", func() {
		bodies := append([]Body(nil), valid...)
		sys, err := New(DefaultParams(), bodies)
		Expect(err).NotTo(HaveOccurred())

		bodies[0].Pos.X = 99
		Expect(sys.Position(0).X).To(Equal(-1.0))
	})

	It("rejects an empty body list", func() {
		_, err := New(DefaultParams(), nil)
		Expect(err).To(HaveOccurred())
	})

	It("rejects non-positive masses", func() {
		for _, m := range []float64{0, -1} {
			_, err := New(DefaultParams(), []Body{{Mass: m}})
			Expect(err).To(HaveOccurred())
		}
	})

	It("rejects non-positive constants", func() {
		_, err := New(Params{G: 0, Softening: 1e-3}, valid)
		Expect(err).To(HaveOccurred())

		_, err = New(Params{G: 1, Softening: 0}, valid)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Force evaluator", func() {
	It("visits exactly N(N-1)/2 pairs per call", func() {
		bodies := []Body{
			{Pos: Vec2{X: -3, Y: 2.4}, Mass: 1.0},
			{Pos: Vec2{}, Mass: 2.0},
			{Pos: Vec2{X: 3.4, Y: 2.8}, Mass: 3.0},
			{Pos: Vec2{X: 1.2, Y: -3.2}, Mass: 0.6},
		}
		sys, err := New(DefaultParams(), bodies)
		Expect(err).NotTo(HaveOccurred())

		before := sys.PairEvaluations()
		sys.accelerations()
		Expect(sys.PairEvaluations() - before).To(Equal(6))

		// One leapfrog step evaluates forces twice.
		before = sys.PairEvaluations()
		sys.Step(0.01)
		Expect(sys.PairEvaluations() - before).To(Equal(12))
	})

	It("applies pair forces antisymmetrically", func() {
		sys, err := New(DefaultParams(), []Body{
			{Pos: Vec2{X: -1.0, Y: 0.5}, Mass: 1.0},
			{Pos: Vec2{X: 2.0, Y: -0.7}, Mass: 3.0},
		})
		Expect(err).NotTo(HaveOccurred())

		sys.accelerations()

		f0 := sys.bodies[0].Acc.Scale(sys.bodies[0].Mass)
		f1 := sys.bodies[1].Acc.Scale(sys.bodies[1].Mass)
		Expect(f0.X + f1.X).To(BeNumerically("~", 0, 1e-12))
		Expect(f0.Y + f1.Y).To(BeNumerically("~", 0, 1e-12))
	})

	It("overwrites instead of accumulating across calls", func() {
		sys, err := New(DefaultParams(), []Body{
			{Pos: Vec2{X: -1}, Mass: 1.0},
			{Pos: Vec2{X: 1}, Mass: 1.0},
		})
		Expect(err).NotTo(HaveOccurred())

		sys.accelerations()
		first := sys.bodies[0].Acc
		sys.accelerations()
		Expect(sys.bodies[0].Acc).To(Equal(first))
	})

	It("stays finite and bounded at coincident positions", func() {
		eps2 := 1e-3
		sys, err := New(Params{G: 1.0, Softening: eps2}, []Body{
			{Pos: Vec2{X: 0.5, Y: -0.25}, Mass: 1.0},
			{Pos: Vec2{X: 0.5, Y: -0.25}, Mass: 3.0},
		})
		Expect(err).NotTo(HaveOccurred())

		sys.accelerations()

		// The softened force law bounds |a_i| by G*m_j/EPS2.
		for i := 0; i < sys.Len(); i++ {
			a := sys.bodies[i].Acc.Norm()
			Expect(a).To(BeNumerically("<", 3.0/eps2))
		}

		// Stepping from coincidence must not produce NaN either.
		sys.Step(0.01)
		for _, v := range sys.State() {
			Expect(math.IsNaN(v)).To(BeFalse())
			Expect(math.IsInf(v, 0)).To(BeFalse())
		}
	})
})
