package physics

import "math"

// TwoPi is one full revolution in radians
const TwoPi = 2 * math.Pi

// WrapAngle maps an angle onto its representative in [0, 2π).
func WrapAngle(angle float64) float64 {
	wrapped := math.Mod(angle, TwoPi)
	if wrapped < 0 {
		wrapped += TwoPi
	}
	// -tiny + 2π rounds up to exactly 2π
	if wrapped >= TwoPi {
		wrapped = 0
	}
	return wrapped
}

// Orbit describes a prescribed circular path around a fixed center.
// Gravity never acts on it; the position is a pure function of the phase.
type Orbit struct {
	Center       Vector2D
	Radius       float64
	AngularSpeed float64 // radians per second, signed
	Phase        float64 // radians, kept in [0, 2π)
}

// Position returns center + radius * (sin(phase), cos(phase))
func (o *Orbit) Position() Vector2D {
	return Vector2D{
		X: math.Sin(o.Phase)*o.Radius + o.Center.X,
		Y: math.Cos(o.Phase)*o.Radius + o.Center.Y,
	}
}

// Advance moves the phase forward by angular speed * deltaTime and returns
// the new position.
func (o *Orbit) Advance(deltaTime float64) Vector2D {
	o.Phase = WrapAngle(o.Phase + o.AngularSpeed*deltaTime)
	return o.Position()
}
