package nbody

import "fmt"

// Body is one point mass. Acc is a working value the force evaluator
// overwrites at the start and end of every step; it is never authoritative
// state between steps.
type Body struct {
	Pos  Vec2
	Vel  Vec2
	Acc  Vec2
	Mass float64
}

// Params holds the physical constants of one system. They travel with the
// System instead of living in package globals so that independently
// configured systems can coexist.
type Params struct {
	G         float64 // gravitational constant
	Softening float64 // EPS2, added to every squared pair distance
}

// DefaultParams returns natural units with the stock softening length.
func DefaultParams() Params {
	return Params{G: 1.0, Softening: 1e-3}
}

// System is an ordered, fixed-size collection of bodies. Order carries no
// physical meaning; it only makes iteration and indexing deterministic.
// Bodies are neither added nor removed after construction.
type System struct {
	params    Params
	bodies    []Body
	pairEvals int
}

// New validates the initial conditions and builds a System. Non-positive
// masses, an empty body list and non-positive constants are construction
// errors: they would silently break the mass and momentum invariants the
// rest of the package relies on.
func New(params Params, bodies []Body) (*System, error) {
	if len(bodies) == 0 {
		return nil, fmt.Errorf("nbody: at least one body required")
	}
	if params.G <= 0 {
		return nil, fmt.Errorf("nbody: G must be positive, got %g", params.G)
	}
	if params.Softening <= 0 {
		return nil, fmt.Errorf("nbody: softening must be positive, got %g", params.Softening)
	}
	for i, b := range bodies {
		if b.Mass <= 0 {
			return nil, fmt.Errorf("nbody: body %d has non-positive mass %g", i, b.Mass)
		}
	}

	s := &System{
		params: params,
		bodies: make([]Body, len(bodies)),
	}
	copy(s.bodies, bodies)
	return s, nil
}

func (s *System) Len() int            { return len(s.bodies) }
func (s *System) Params() Params      { return s.params }
func (s *System) Position(i int) Vec2 { return s.bodies[i].Pos }
func (s *System) Velocity(i int) Vec2 { return s.bodies[i].Vel }
func (s *System) Mass(i int) float64  { return s.bodies[i].Mass }

func (s *System) TotalMass() float64 {
	m := 0.0
	for _, b := range s.bodies {
		m += b.Mass
	}
	return m
}

// State returns a flat [x, y, vx, vy] snapshot per body, in body order.
func (s *System) State() []float64 {
	state := make([]float64, len(s.bodies)*4)
	for i, b := range s.bodies {
		state[i*4] = b.Pos.X
		state[i*4+1] = b.Pos.Y
		state[i*4+2] = b.Vel.X
		state[i*4+3] = b.Vel.Y
	}
	return state
}

// PairEvaluations reports how many unordered pairs the force evaluator has
// visited since construction.
func (s *System) PairEvaluations() int { return s.pairEvals }
