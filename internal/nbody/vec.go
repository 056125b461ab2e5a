package nbody

import "math"

// Vec2 is a 2D vector used for positions, velocities and accelerations.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }

func (v Vec2) Norm() float64 { return math.Hypot(v.X, v.Y) }
