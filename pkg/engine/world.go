// pkg/engine/world.go
package engine

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/physics"
)

// ErrInvalidPlayerIndex is returned when the player index does not address an
// orbiting body.
var ErrInvalidPlayerIndex = errors.New("player index does not address an orbiting body")

// ErrBodyNotFound is returned by Remove for an unknown id
var ErrBodyNotFound = errors.New("body not found")

// NoPlayer is the player index of a world without a player planet
const NoPlayer = -1

// World owns the ordered body registry and the player index. Bodies are
// updated and drawn in insertion order.
type World struct {
	mu          sync.RWMutex
	bodies      []entity.Body
	attractors  []*entity.Planet
	playerIndex int
	nextID      entity.ID

	// MaxProjectiles bounds the number of projectiles; 0 means unbounded.
	MaxProjectiles int
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{playerIndex: NoPlayer}
}

// NewID hands out the next body id
func (w *World) NewID() entity.ID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	return w.nextID
}

// AddPlanet appends an orbiting body and returns its registry index
func (w *World) AddPlanet(p *entity.Planet) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.bodies = append(w.bodies, entity.OrbitingBody(p))
	w.attractors = append(w.attractors, p)
	return len(w.bodies) - 1
}

// AddProjectile appends a gravity body. When the projectile cap is exceeded
// the oldest projectile is removed and returned.
func (w *World) AddProjectile(p *entity.Projectile) (evicted *entity.Projectile) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.bodies = append(w.bodies, entity.GravityBody(p))
	if w.MaxProjectiles <= 0 || w.countProjectiles() <= w.MaxProjectiles {
		return nil
	}

	for i, b := range w.bodies {
		if b.Kind == entity.KindGravity {
			evicted = b.Projectile
			w.removeAt(i)
			break
		}
	}
	return evicted
}

func (w *World) countProjectiles() int {
	n := 0
	for _, b := range w.bodies {
		if b.Kind == entity.KindGravity {
			n++
		}
	}
	return n
}

// SetPlayer marks the orbiting body at index as the player planet
func (w *World) SetPlayer(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isPlanetIndex(index) {
		return fmt.Errorf("set player %d: %w", index, ErrInvalidPlayerIndex)
	}
	if w.isPlanetIndex(w.playerIndex) {
		w.bodies[w.playerIndex].Planet.Player = false
	}
	w.playerIndex = index
	w.bodies[index].Planet.Player = true
	return nil
}

// PlayerIndex returns the registry slot of the player planet, or NoPlayer
func (w *World) PlayerIndex() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.playerIndex
}

// Player returns the player planet. The index is validated on every call.
func (w *World) Player() (*entity.Planet, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !w.isPlanetIndex(w.playerIndex) {
		return nil, fmt.Errorf("player index %d: %w", w.playerIndex, ErrInvalidPlayerIndex)
	}
	return w.bodies[w.playerIndex].Planet, nil
}

func (w *World) isPlanetIndex(index int) bool {
	return index >= 0 && index < len(w.bodies) && w.bodies[index].Kind == entity.KindOrbiting
}

// Bodies returns a copy of the registry in order
func (w *World) Bodies() []entity.Body {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]entity.Body(nil), w.bodies...)
}

// Planets returns every orbiting body in registry order
func (w *World) Planets() []*entity.Planet {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*entity.Planet(nil), w.attractors...)
}

// Projectiles returns every gravity body in registry order
func (w *World) Projectiles() []*entity.Projectile {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []*entity.Projectile
	for _, b := range w.bodies {
		if b.Kind == entity.KindGravity {
			out = append(out, b.Projectile)
		}
	}
	return out
}

// Len returns the number of bodies
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.bodies)
}

// Update advances every body by deltaTime in registry order. Gravity bodies
// are attracted by every orbiting body at its position at that moment.
func (w *World) Update(deltaTime float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, b := range w.bodies {
		switch b.Kind {
		case entity.KindOrbiting:
			b.Planet.Update(deltaTime)
		case entity.KindGravity:
			b.Projectile.Update(deltaTime, w.attractors)
		}
	}
}

// Draw renders one frame: clear, every body in registry order, present
func (w *World) Draw(r entity.Renderer, elapsed float64) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	r.Clear(entity.Black)
	for _, b := range w.bodies {
		switch b.Kind {
		case entity.KindOrbiting:
			b.Planet.Draw(r, elapsed)
		case entity.KindGravity:
			b.Projectile.Draw(r)
		}
	}
	r.Present()
}

// Remove deletes the body with the given id. The player index is shifted
// when an earlier slot is removed. Removing the player planet is refused
// with ErrInvalidPlayerIndex.
func (w *World) Remove(id entity.ID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, b := range w.bodies {
		if b.GetID() != id {
			continue
		}
		if i == w.playerIndex {
			return fmt.Errorf("remove body %d: %w", id, ErrInvalidPlayerIndex)
		}
		w.removeAt(i)
		return nil
	}
	return fmt.Errorf("remove body %d: %w", id, ErrBodyNotFound)
}

func (w *World) removeAt(i int) {
	removed := w.bodies[i]
	w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)

	if removed.Kind == entity.KindOrbiting {
		for j, p := range w.attractors {
			if p == removed.Planet {
				w.attractors = append(w.attractors[:j], w.attractors[j+1:]...)
				break
			}
		}
	}
	if w.playerIndex > i {
		w.playerIndex--
	}
}

// BodyState is a value copy of one body
type BodyState struct {
	ID       entity.ID
	Kind     entity.Kind
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
	Mass     float64
	Color    color.RGBA
	Sprite   entity.Sprite
	Phase    float64
	AimAngle float64
}

// WorldState is a value copy of the whole world, comparable with ==
// element-wise.
type WorldState struct {
	PlayerIndex int
	Bodies      []BodyState
}

// Snapshot copies the world state
func (w *World) Snapshot() WorldState {
	w.mu.RLock()
	defer w.mu.RUnlock()

	state := WorldState{
		PlayerIndex: w.playerIndex,
		Bodies:      make([]BodyState, 0, len(w.bodies)),
	}
	for _, b := range w.bodies {
		switch b.Kind {
		case entity.KindOrbiting:
			p := b.Planet
			state.Bodies = append(state.Bodies, BodyState{
				ID:       p.ID,
				Kind:     b.Kind,
				Position: p.Position,
				Velocity: p.Velocity,
				Radius:   p.Radius,
				Mass:     p.Mass,
				Color:    p.Color,
				Sprite:   p.Sprite,
				Phase:    p.Orbit.Phase,
				AimAngle: p.AimAngle,
			})
		case entity.KindGravity:
			p := b.Projectile
			state.Bodies = append(state.Bodies, BodyState{
				ID:       p.ID,
				Kind:     b.Kind,
				Position: p.Position,
				Velocity: p.Velocity,
				Radius:   p.Radius,
				Mass:     p.Mass,
				Color:    entity.Red,
			})
		}
	}
	return state
}

// Equal reports whether two snapshots are bit-identical
func (s WorldState) Equal(other WorldState) bool {
	if s.PlayerIndex != other.PlayerIndex || len(s.Bodies) != len(other.Bodies) {
		return false
	}
	for i := range s.Bodies {
		if s.Bodies[i] != other.Bodies[i] {
			return false
		}
	}
	return true
}
