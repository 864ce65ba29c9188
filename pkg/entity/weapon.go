// pkg/entity/weapon.go
package entity

// Launch parameters of the player's projectile
const (
	DefaultLaunchSpeed      = 50.0
	DefaultProjectileMass   = 10.0
	DefaultProjectileRadius = 10.0
)

// Launcher spawns projectiles from an orbiting body
type Launcher struct {
	Speed  float64
	Mass   float64
	Radius float64
}

// DefaultLauncher returns the launcher used by the player planet
func DefaultLauncher() Launcher {
	return Launcher{
		Speed:  DefaultLaunchSpeed,
		Mass:   DefaultProjectileMass,
		Radius: DefaultProjectileRadius,
	}
}

// Fire creates a projectile at the planet's position. The launch velocity is
// the aim direction scaled by the launch speed plus the planet's own velocity.
func (l Launcher) Fire(id ID, from *Planet) *Projectile {
	velocity := from.AimDirection().Scale(l.Speed).Add(from.Velocity)
	return NewProjectile(id, from.Position, velocity, l.Mass, l.Radius)
}
