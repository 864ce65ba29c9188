// pkg/entity/entity.go
package entity

import "fmt"

// ID is a unique identifier for a body within one world
type ID uint64

// Kind tags which variant a Body holds
type Kind int

const (
	// KindOrbiting bodies follow a prescribed circular orbit
	KindOrbiting Kind = iota
	// KindGravity bodies integrate attraction from every orbiting body
	KindGravity
)

func (k Kind) String() string {
	switch k {
	case KindOrbiting:
		return "orbiting"
	case KindGravity:
		return "gravity"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Body is a closed variant over the two behavioural kinds. Exactly one of
// Planet or Projectile is set, matching Kind.
type Body struct {
	Kind       Kind
	Planet     *Planet
	Projectile *Projectile
}

// OrbitingBody wraps a planet as a Body
func OrbitingBody(p *Planet) Body {
	return Body{Kind: KindOrbiting, Planet: p}
}

// GravityBody wraps a projectile as a Body
func GravityBody(p *Projectile) Body {
	return Body{Kind: KindGravity, Projectile: p}
}

// GetID returns the id of whichever variant is held
func (b Body) GetID() ID {
	switch b.Kind {
	case KindOrbiting:
		return b.Planet.ID
	case KindGravity:
		return b.Projectile.ID
	}
	return 0
}
