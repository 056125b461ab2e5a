package nbody

// Step advances the system by one velocity-Verlet (leapfrog) step:
//
//	1. a(t)      = F(r(t))
//	2. v(t+dt/2) = v(t) + 0.5*dt*a(t)
//	3. r(t+dt)   = r(t) + dt*v(t+dt/2)
//	4. a(t+dt)   = F(r(t+dt))
//	5. v(t+dt)   = v(t+dt/2) + 0.5*dt*a(t+dt)
//
// The ordering matters: it is what makes the scheme time-reversible and
// symplectic, so energy error oscillates in a bounded envelope instead of
// drifting. Velocities hold the half-step value only between phases 2 and
// 5, inside this call; accessors never observe it.
func (s *System) Step(dt float64) {
	s.accelerations()

	for i := range s.bodies {
		b := &s.bodies[i]
		b.Vel = b.Vel.Add(b.Acc.Scale(0.5 * dt))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}

	s.accelerations()

	for i := range s.bodies {
		b := &s.bodies[i]
		b.Vel = b.Vel.Add(b.Acc.Scale(0.5 * dt))
	}
}

// ToCOMFrame shifts all positions and velocities so the mass-weighted mean
// position and velocity become zero. Applied once after construction, it
// removes bulk drift and keeps a fixed view box valid indefinitely.
// Subsequent integration preserves the frame up to floating-point error.
func (s *System) ToCOMFrame() {
	var m float64
	var rCOM, vCOM Vec2

	for _, b := range s.bodies {
		m += b.Mass
		rCOM = rCOM.Add(b.Pos.Scale(b.Mass))
		vCOM = vCOM.Add(b.Vel.Scale(b.Mass))
	}
	rCOM = rCOM.Scale(1.0 / m)
	vCOM = vCOM.Scale(1.0 / m)

	for i := range s.bodies {
		s.bodies[i].Pos = s.bodies[i].Pos.Sub(rCOM)
		s.bodies[i].Vel = s.bodies[i].Vel.Sub(vCOM)
	}
}
