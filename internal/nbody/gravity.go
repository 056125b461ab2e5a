package nbody

import "math"

// accelerations overwrites every body's acceleration cache with the softened
// Newtonian pull of all other bodies. Each unordered pair is visited exactly
// once and applied to both bodies from the same force vector, so the pair's
// net contribution is exactly zero.
func (s *System) accelerations() {
	for i := range s.bodies {
		s.bodies[i].Acc = Vec2{}
	}

	g := s.params.G
	eps2 := s.params.Softening
	n := len(s.bodies)

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			bi := &s.bodies[i]
			bj := &s.bodies[j]

			dr := bj.Pos.Sub(bi.Pos)
			d2 := dr.Dot(dr) + eps2
			invR := 1.0 / math.Sqrt(d2)
			invR3 := invR / d2

			f := dr.Scale(g * bi.Mass * bj.Mass * invR3)
			bi.Acc = bi.Acc.Add(f.Scale(1.0 / bi.Mass))
			bj.Acc = bj.Acc.Sub(f.Scale(1.0 / bj.Mass))

			s.pairEvals++
		}
	}
}
