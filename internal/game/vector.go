package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector is a 3-component float vector with value semantics. The simulation
// works in the XY plane; Z is carried so cross products are meaningful.
type Vector struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

func fromMgl(v mgl64.Vec3) Vector {
	return Vector{X: v[0], Y: v[1], Z: v[2]}
}

func (v Vector) mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func (v Vector) Plus(o Vector) Vector {
	return fromMgl(v.mgl().Add(o.mgl()))
}

func (v Vector) Minus(o Vector) Vector {
	return fromMgl(v.mgl().Sub(o.mgl()))
}

func (v Vector) Times(s float64) Vector {
	return fromMgl(v.mgl().Mul(s))
}

func (v Vector) Dot(o Vector) float64 {
	return v.mgl().Dot(o.mgl())
}

func (v Vector) Cross(o Vector) Vector {
	return fromMgl(v.mgl().Cross(o.mgl()))
}

func (v Vector) Length() float64 {
	return v.mgl().Len()
}

func (v Vector) LengthSquared() float64 {
	return v.mgl().LenSqr()
}

// Normalize returns the unit vector in the direction of v, or the zero
// vector when |v| <= Epsilon.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l <= Epsilon {
		return Vector{}
	}
	return v.Times(1 / l)
}

// LeftNormal rotates the XY part of v by +90 degrees.
func (v Vector) LeftNormal() Vector {
	return Vector{X: -v.Y, Y: v.X}
}

func (v *Vector) Set(x, y, z float64) {
	v.X, v.Y, v.Z = x, y, z
}

// Reset zeroes v in place.
func (v *Vector) Reset() {
	*v = Vector{}
}

func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// ApproxEqual reports whether every component of v is within tol of o.
func (v Vector) ApproxEqual(o Vector, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol && math.Abs(v.Z-o.Z) <= tol
}
