package physics

const (
	// G is a tuning constant, not the physical gravitational constant.
	G = 30.0

	// MinDistanceSquared is the separation (squared) at or below which an
	// attractor exerts no force for the step.
	MinDistanceSquared = 1.0
)

// MovementState tracks the free-body state of a gravity-affected body
type MovementState struct {
	Position Vector2D
	Velocity Vector2D
	Mass     float64
}

// Attraction returns the velocity increment a body of selfMass at self
// receives from a body of otherMass at other: G*m1*m2/d² along the unit
// direction from other toward self. The force uses the squared distance as
// its denominator. ok is false when d² <= MinDistanceSquared, in which case
// the increment is zero.
func Attraction(self Vector2D, selfMass float64, other Vector2D, otherMass float64) (delta Vector2D, ok bool) {
	distance := DistanceSquared(other, self)
	if distance <= MinDistanceSquared {
		return Vector2D{}, false
	}

	direction, err := self.Sub(other).Normalize()
	if err != nil {
		// unreachable: d² > 1 implies a non-zero direction
		return Vector2D{}, false
	}

	force := G * ((selfMass * otherMass) / distance)
	return direction.Scale(force), true
}

// Integrate applies the already-accumulated velocity to the position for one
// step (semi-implicit Euler).
func Integrate(state *MovementState, deltaTime float64) {
	state.Position = state.Position.Add(state.Velocity.Scale(deltaTime))
}
