// Package geom provides the small set of 2D primitives the scene builders
// share: vectors, affine transforms and cubic bezier evaluation.
package geom

import "math"

// Vec2 is a 2D point or direction. Screen space has Y growing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Norm returns the unit vector of v, or the zero vector when v is near zero.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns v rotated a quarter turn.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Rot returns v rotated by rad radians.
func (v Vec2) Rot(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// FromAngle returns the unit vector at the given angle in radians.
func FromAngle(rad float64) Vec2 { return Vec2{math.Cos(rad), math.Sin(rad)} }

// Affine is a 2D affine transform storing the matrix
//
//	| A C E |
//	| B D F |
//
// Each builder method returns the transform that applies the receiver first
// and the named operation after it, matching ebiten's GeoM ordering.
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine { return Affine{A: 1, D: 1} }

// Translate returns t followed by a translation by (x, y).
func (t Affine) Translate(x, y float64) Affine {
	t.E += x
	t.F += y
	return t
}

// Rotate returns t followed by a rotation about the origin by rad radians.
func (t Affine) Rotate(rad float64) Affine {
	sin, cos := math.Sincos(rad)
	return Affine{
		A: cos*t.A - sin*t.B,
		B: sin*t.A + cos*t.B,
		C: cos*t.C - sin*t.D,
		D: sin*t.C + cos*t.D,
		E: cos*t.E - sin*t.F,
		F: sin*t.E + cos*t.F,
	}
}

// ScaleXY returns t followed by an anisotropic scale about the origin.
func (t Affine) ScaleXY(sx, sy float64) Affine {
	return Affine{
		A: sx * t.A,
		B: sy * t.B,
		C: sx * t.C,
		D: sy * t.D,
		E: sx * t.E,
		F: sy * t.F,
	}
}

// Apply transforms the point p.
func (t Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

// CubicPoint evaluates the cubic bezier through p0..p3 at parameter u in [0, 1].
func CubicPoint(p0, p1, p2, p3 Vec2, u float64) Vec2 {
	w := 1 - u
	a := w * w * w
	b := 3 * w * w * u
	c := 3 * w * u * u
	d := u * u * u
	return Vec2{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// CubicTangent evaluates the derivative of the cubic bezier at parameter u.
func CubicTangent(p0, p1, p2, p3 Vec2, u float64) Vec2 {
	w := 1 - u
	a := 3 * w * w
	b := 6 * w * u
	c := 3 * u * u
	return Vec2{
		X: a*(p1.X-p0.X) + b*(p2.X-p1.X) + c*(p3.X-p2.X),
		Y: a*(p1.Y-p0.Y) + b*(p2.Y-p1.Y) + c*(p3.Y-p2.Y),
	}
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly from a to b by t.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// WrapDeg normalizes an angle in degrees to [0, 360).
func WrapDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}
