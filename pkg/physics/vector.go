// pkg/physics/vector.go
package physics

import (
	"errors"
	"math"
)

// ErrDivideByZero is returned when normalizing a zero-length vector
var ErrDivideByZero = errors.New("physics: normalize of zero-length vector")

// Vector2D represents a 2D vector with x and y components
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Mul returns the component-wise product of two vectors
func (v Vector2D) Mul(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X * other.X,
		Y: v.Y * other.Y,
	}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// A zero-length vector yields ErrDivideByZero.
func (v Vector2D) Normalize() (Vector2D, error) {
	length := v.Length()
	if length == 0 {
		return Vector2D{}, ErrDivideByZero
	}
	return Vector2D{
		X: v.X / length,
		Y: v.Y / length,
	}, nil
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// DistanceSquared returns (p2.x-p1.x)² + (p2.y-p1.y)²
func DistanceSquared(p1, p2 Vector2D) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return dx*dx + dy*dy
}

// Heading returns the unit vector (sin angle, cos angle).
// Orbits and aim directions share this convention: angle 0 points along +Y.
func Heading(angle float64) Vector2D {
	return Vector2D{
		X: math.Sin(angle),
		Y: math.Cos(angle),
	}
}
