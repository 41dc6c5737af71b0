package core

import (
	"math"
	"math/rand"
)

// Vec2 is a 2D vector in world units. Used for positions, velocities and
// directions by the continuous-space games (asteroids).
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for constructing a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Length returns the Euclidean magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the same direction.
// The zero vector maps to the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Distance returns the Euclidean distance between two points.
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Length()
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// FromAngle returns a vector of the given magnitude pointing at angle
// radians, measured counter-clockwise from +X.
func FromAngle(angle, magnitude float64) Vec2 {
	return Vec2{X: magnitude * math.Cos(angle), Y: magnitude * math.Sin(angle)}
}

// RandomPoint returns a point in [0,1) x [0,1).
func RandomPoint(rng *rand.Rand) Vec2 {
	return Vec2{X: rng.Float64(), Y: rng.Float64()}
}

// RandomUnitVector returns a unit vector in a uniformly random direction.
func RandomUnitVector(rng *rand.Rand) Vec2 {
	return FromAngle(rng.Float64()*2*math.Pi, 1)
}
