package cloth

import (
	"math"

	"github.com/faiface/pixel"
)

type Vector3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func V3(x, y, z float64) Vector3 {
	return Vector3{x, y, z}
}

func v3zero() Vector3 {
	return Vector3{0.0, 0.0, 0.0}
}

func (a Vector3) Add(b Vector3) Vector3 {
	return Vector3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vector3) Sub(b Vector3) Vector3 {
	return Vector3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func (a Vector3) Mul(b float64) Vector3 {
	return Vector3{a.X * b, a.Y * b, a.Z * b}
}

func (a Vector3) Div(b float64) Vector3 {
	return Vector3{a.X / b, a.Y / b, a.Z / b}
}

// Hadamard is the component-wise product.
func (a Vector3) Hadamard(b Vector3) Vector3 {
	return Vector3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

func (a Vector3) Neg() Vector3 {
	return Vector3{-a.X, -a.Y, -a.Z}
}

func (a Vector3) Dot(b Vector3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vector3) Cross(b Vector3) Vector3 {
	return Vector3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vector3) Len() float64 {
	return math.Sqrt(a.LengthSquared())
}

func (a Vector3) LengthSquared() float64 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Unit returns a normalized copy, and false when a has no usable direction.
func (a Vector3) Unit() (Vector3, bool) {
	l := a.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return a, false
	}
	return a.Div(l), true
}

func (a Vector3) IsFinite() bool {
	for _, c := range [3]float64{a.X, a.Y, a.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Cos applies math.Cos to every component.
func (a Vector3) Cos() Vector3 {
	return Vector3{math.Cos(a.X), math.Cos(a.Y), math.Cos(a.Z)}
}

// ToVec2 projects onto the screen plane with a hard-coded perspective,
// centred on the origin of a pixel canvas.
func (a Vector3) ToVec2(scale, depth float64) pixel.Vec {
	factor := depth / (depth - a.Z*scale)
	return pixel.V(a.X, a.Y).Scaled(scale * factor)
}
