// Package geom provides the 2D vector math shared by the physics core.
//
// World space is y-up: gravity points along negative Y and the level
// ground normal is Up.
package geom

import "math"

// Epsilon is the tolerance used for approximate vector comparisons.
const Epsilon = 1e-9

// Vec2 is a 2D vector in world units
type Vec2 struct {
	X, Y float64
}

var (
	Zero  = Vec2{}
	Up    = Vec2{X: 0, Y: 1}
	Down  = Vec2{X: 0, Y: -1}
	Right = Vec2{X: 1, Y: 0}
	Left  = Vec2{X: -1, Y: 0}
)

// V is shorthand for Vec2{X: x, Y: y}
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

func (v Vec2) Neg() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector of v, or Zero for a zero-length vector
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < Epsilon {
		return Zero
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// IsZero reports whether both components are exactly zero.
// The zero vector doubles as the "no contact" normal sentinel.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// IsFinite reports whether neither component is NaN or infinite
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// ApproxEqual compares component-wise within eps
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Tangent returns the direction of travel along a surface with normal v.
// For Up this is Right, so positive ground speed moves to the right.
func (v Vec2) Tangent() Vec2 { return Vec2{X: v.Y, Y: -v.X} }

// Perp returns v rotated 90 degrees counter-clockwise
func (v Vec2) Perp() Vec2 { return Vec2{X: -v.Y, Y: v.X} }

// RotateDeg rotates v counter-clockwise by deg degrees
func (v Vec2) RotateDeg(deg float64) Vec2 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Reflect mirrors v about the surface with unit normal n
func (v Vec2) Reflect(n Vec2) Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Heading returns the angle of v from the positive X axis in degrees
func (v Vec2) Heading() float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// AngleDeg returns the unsigned angle between a and b in [0, 180].
// A zero-length operand yields 0.
func AngleDeg(a, b Vec2) float64 {
	denom := math.Sqrt(a.LenSq() * b.LenSq())
	if denom < Epsilon {
		return 0
	}
	c := a.Dot(b) / denom
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c) * 180 / math.Pi
}

// SignedAngleDeg returns the counter-clockwise angle from a to b in (-180, 180]
func SignedAngleDeg(from, to Vec2) float64 {
	return math.Atan2(from.Cross(to), from.Dot(to)) * 180 / math.Pi
}

// Sign returns -1, 0 or 1
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// MoveTowards moves current toward target by at most maxDelta
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + Sign(target-current)*maxDelta
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
