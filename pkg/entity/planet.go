// pkg/entity/planet.go
package entity

import (
	"image/color"
	"math"

	"github.com/opd-ai/go-orbit/pkg/physics"
)

const (
	pulsingSpeed          = 4.0
	pulseAmplitude        = 2.0
	pulseGap              = 3.0
	targetingMarkerOffset = 10.0
	targetingMarkerRadius = 5.0
)

// PlanetSpec holds the creation parameters of an orbiting body.
// Angles are in radians.
type PlanetSpec struct {
	Radius       float64
	Color        color.RGBA
	Center       physics.Vector2D
	OrbitRadius  float64
	AngularSpeed float64
	Phase        float64
	Mass         float64
	Sprite       Sprite
}

// Planet is an orbiting body. Its position is always derived from the orbit
// and is never set directly; gravity does not act on it.
type Planet struct {
	ID       ID
	Position physics.Vector2D
	// Velocity is the per-frame position delta of the last update. Projectiles
	// fired from this planet inherit it.
	Velocity physics.Vector2D
	Radius   float64
	Color    color.RGBA
	Orbit    physics.Orbit
	Mass     float64
	Sprite   Sprite

	Player   bool
	AimAngle float64
}

// NewPlanet creates a planet whose position already satisfies the orbit
// formula.
func NewPlanet(id ID, spec PlanetSpec) *Planet {
	p := &Planet{
		ID:     id,
		Radius: spec.Radius,
		Color:  spec.Color,
		Orbit: physics.Orbit{
			Center:       spec.Center,
			Radius:       spec.OrbitRadius,
			AngularSpeed: spec.AngularSpeed,
			Phase:        physics.WrapAngle(spec.Phase),
		},
		Mass:   spec.Mass,
		Sprite: spec.Sprite,
	}
	p.Position = p.Orbit.Position()
	return p
}

// NewSun creates the stationary body at the orbit center
func NewSun(id ID, center physics.Vector2D, radius float64) *Planet {
	return NewPlanet(id, PlanetSpec{
		Radius: radius,
		Color:  Yellow,
		Center: center,
		Mass:   radius,
		Sprite: SpriteSun,
	})
}

// Update advances the orbit by deltaTime and records the finite-difference
// velocity.
func (p *Planet) Update(deltaTime float64) {
	newPosition := p.Orbit.Advance(deltaTime)
	p.Velocity = newPosition.Sub(p.Position)
	p.Position = newPosition
}

// AimDirection returns the unit targeting vector (sin aim, cos aim)
func (p *Planet) AimDirection() physics.Vector2D {
	return physics.Heading(p.AimAngle)
}

// RotateAim adds delta radians to the aim angle. No wrapping is applied.
func (p *Planet) RotateAim(delta float64) {
	p.AimAngle += delta
}

// Draw emits the planet to the renderer. The player planet additionally gets
// a pulsing ring and a targeting marker.
func (p *Planet) Draw(r Renderer, elapsed float64) {
	if p.Player {
		ring := p.Radius + pulseGap + math.Sin(elapsed*pulsingSpeed)*pulseAmplitude
		r.FillCircle(p.Position, ring, PlayerGreen)

		marker := p.AimDirection().Scale(p.Radius + targetingMarkerOffset).Add(p.Position)
		r.FillCircle(marker, targetingMarkerRadius, White)
	}

	if p.Sprite == SpriteNone {
		r.FillCircle(p.Position, p.Radius, p.Color)
		return
	}
	r.BlitScaled(p.Sprite, p.Position, p.Radius*2, p.Radius*2)
}
