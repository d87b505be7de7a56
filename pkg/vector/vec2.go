package vector

import "math"

// Vec2 is a 2D vector of float64 components.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func Zero() Vec2 { return Vec2{} }

func XY(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// OnX returns a vector lying on the x axis.
func OnX(x float64) Vec2 { return Vec2{X: x} }

// OnY returns a vector lying on the y axis.
func OnY(y float64) Vec2 { return Vec2{Y: y} }

// FromAngle returns the unit vector pointing at angle radians.
func FromAngle(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: cos, Y: sin}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{X: v.X * o.X, Y: v.Y * o.Y} }

// Div divides component-wise.
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{X: v.X / o.X, Y: v.Y / o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

func (v Vec2) DivScalar(s float64) Vec2 { return Vec2{X: v.X / s, Y: v.Y / s} }

func (v Vec2) Neg() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// SquareLength avoids the square root when only comparisons are needed.
func (v Vec2) SquareLength() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Length() float64 { return math.Sqrt(v.SquareLength()) }

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// In-place forms

func (v *Vec2) AddAssign(o Vec2) {
	v.X += o.X
	v.Y += o.Y
}

func (v *Vec2) SubAssign(o Vec2) {
	v.X -= o.X
	v.Y -= o.Y
}

func (v *Vec2) MulAssign(o Vec2) {
	v.X *= o.X
	v.Y *= o.Y
}

func (v *Vec2) DivAssign(o Vec2) {
	v.X /= o.X
	v.Y /= o.Y
}

func (v *Vec2) ScaleAssign(s float64) {
	v.X *= s
	v.Y *= s
}

func (v *Vec2) DivScalarAssign(s float64) {
	v.X /= s
	v.Y /= s
}

func (v *Vec2) Clear() {
	v.X = 0
	v.Y = 0
}
