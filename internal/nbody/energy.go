package nbody

import "math"

// Energy returns kinetic plus potential energy. The potential uses the same
// softened distance as the force law, so this is the quantity the integrator
// actually conserves.
func (s *System) Energy() float64 {
	g := s.params.G
	eps2 := s.params.Softening
	n := len(s.bodies)

	ke := 0.0
	pe := 0.0
	for i := 0; i < n; i++ {
		bi := s.bodies[i]
		ke += 0.5 * bi.Mass * bi.Vel.Dot(bi.Vel)

		for j := i + 1; j < n; j++ {
			bj := s.bodies[j]
			dr := bj.Pos.Sub(bi.Pos)
			pe -= g * bi.Mass * bj.Mass / math.Sqrt(dr.Dot(dr)+eps2)
		}
	}

	return ke + pe
}

// Momentum returns the total linear momentum.
func (s *System) Momentum() Vec2 {
	var p Vec2
	for _, b := range s.bodies {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	return p
}

// AngularMomentum returns the z component of the total angular momentum
// about the origin.
func (s *System) AngularMomentum() float64 {
	l := 0.0
	for _, b := range s.bodies {
		l += b.Mass * (b.Pos.X*b.Vel.Y - b.Pos.Y*b.Vel.X)
	}
	return l
}
