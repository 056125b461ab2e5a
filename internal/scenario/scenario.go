// Package scenario provides the stock initial conditions gravsim ships
// with. A scenario is pure construction convenience: it picks literal
// positions, velocities and masses, then hands the result to the nbody
// core.
package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/marcosvz/gravsim/internal/nbody"
)

// Scenario bundles initial conditions with display hints for one run.
// Window is the half-extent of the view box; TrailLen bounds the rolling
// position history a renderer keeps per body.
type Scenario struct {
	Name     string
	Params   nbody.Params
	Bodies   []nbody.Body
	Window   float64
	TrailLen int
}

// Build constructs the system and re-frames it to the center of mass, so
// the fixed view box stays valid without any re-centering downstream.
func (sc Scenario) Build() (*nbody.System, error) {
	sys, err := nbody.New(sc.Params, sc.Bodies)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	sys.ToCOMFrame()
	return sys, nil
}

// TwoBody places two bodies on the x axis in a near-circular mutual orbit
// around the barycenter. For a circular orbit omega = sqrt(G*M/D^3) and
// each body moves at omega*|x_i|, in opposite directions along y.
func TwoBody(g, m1, m2, d float64) Scenario {
	m := m1 + m2
	r1x := -d * (m2 / m)
	r2x := d * (m1 / m)
	omega := math.Sqrt(g * m / (d * d * d))

	return Scenario{
		Name:   "two_body",
		Params: nbody.Params{G: g, Softening: 1e-3},
		Bodies: []nbody.Body{
			{Pos: nbody.Vec2{X: r1x}, Vel: nbody.Vec2{Y: omega * math.Abs(r1x)}, Mass: m1},
			{Pos: nbody.Vec2{X: r2x}, Vel: nbody.Vec2{Y: -omega * math.Abs(r2x)}, Mass: m2},
		},
		Window:   8.0,
		TrailLen: 2000,
	}
}

// FourBody starts from a three-body configuration and adds a lighter
// fourth. The values are deliberate: they give a long, visually busy run
// that stays inside the view box.
func FourBody() Scenario {
	return Scenario{
		Name:   "four_body",
		Params: nbody.DefaultParams(),
		Bodies: []nbody.Body{
			{Pos: nbody.Vec2{X: -3.0, Y: 2.4}, Vel: nbody.Vec2{X: -0.8}, Mass: 1.0},
			{Pos: nbody.Vec2{}, Vel: nbody.Vec2{}, Mass: 2.0},
			{Pos: nbody.Vec2{X: 3.4, Y: 2.8}, Vel: nbody.Vec2{X: 0.8}, Mass: 3.0},
			{Pos: nbody.Vec2{X: 1.2, Y: -3.2}, Vel: nbody.Vec2{X: 0.6, Y: 0.35}, Mass: 0.6},
		},
		Window:   12.0,
		TrailLen: 2400,
	}
}

// FigureEight is the equal-mass three-body figure-8 choreography
// (approximate initial conditions).
func FigureEight() Scenario {
	return Scenario{
		Name:   "figure_eight",
		Params: nbody.DefaultParams(),
		Bodies: []nbody.Body{
			{Pos: nbody.Vec2{X: -1.0}, Vel: nbody.Vec2{X: 0.347, Y: 0.532}, Mass: 1.0},
			{Pos: nbody.Vec2{X: 1.0}, Vel: nbody.Vec2{X: 0.347, Y: 0.532}, Mass: 1.0},
			{Pos: nbody.Vec2{}, Vel: nbody.Vec2{X: -0.694, Y: -1.064}, Mass: 1.0},
		},
		Window:   2.0,
		TrailLen: 2000,
	}
}

var registry = map[string]func() Scenario{
	"two_body":     func() Scenario { return TwoBody(1.0, 1.0, 3.0, 6.0) },
	"four_body":    FourBody,
	"figure_eight": FigureEight,
}

// Get returns the named stock scenario.
func Get(name string) (Scenario, error) {
	fn, ok := registry[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario: %s (available: %v)", name, List())
	}
	return fn(), nil
}

// List returns the stock scenario names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
