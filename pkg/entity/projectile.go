package entity

import (
	"github.com/opd-ai/go-orbit/pkg/physics"
)

// Projectile is a gravity-affected body with a render radius. Its velocity
// accumulates attraction from every orbiting body each update.
type Projectile struct {
	ID ID
	physics.MovementState
	Radius float64
}

// NewProjectile creates a projectile at position moving with velocity
func NewProjectile(id ID, position, velocity physics.Vector2D, mass, radius float64) *Projectile {
	return &Projectile{
		ID: id,
		MovementState: physics.MovementState{
			Position: position,
			Velocity: velocity,
			Mass:     mass,
		},
		Radius: radius,
	}
}

// Update sums the attraction of every attractor, in the given order, into the
// velocity and then integrates the position once with the final velocity.
func (p *Projectile) Update(deltaTime float64, attractors []*Planet) {
	velocity := p.Velocity
	for _, planet := range attractors {
		delta, ok := physics.Attraction(p.Position, p.Mass, planet.Position, planet.Mass)
		if !ok {
			continue
		}
		velocity = velocity.Add(delta)
	}

	p.Velocity = velocity
	physics.Integrate(&p.MovementState, deltaTime)
}

// Draw emits a filled red circle at the projectile position
func (p *Projectile) Draw(r Renderer) {
	r.FillCircle(p.Position, p.Radius, Red)
}
