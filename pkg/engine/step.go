// pkg/engine/step.go
package engine

import (
	"context"
	"errors"
	"math"

	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/event"
	"github.com/opd-ai/go-orbit/pkg/input"
	"github.com/opd-ai/go-orbit/pkg/logging"
)

// ErrQuit is returned by Step when quit or escape was requested
var ErrQuit = errors.New("quit requested")

// AimStep is the aim rotation per frame while a rotate input is held (5°)
const AimStep = 5 * math.Pi / 180

// Simulation applies one frame of input and physics to a world
type Simulation struct {
	World    *World
	Launcher entity.Launcher
	EventBus *event.Bus
	Logger   *logging.Logger

	frame uint64
	ctx   context.Context
}

// NewSimulation creates a simulation over world with the default launcher
func NewSimulation(ctx context.Context, world *World, bus *event.Bus, logger *logging.Logger) *Simulation {
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Simulation{
		World:    world,
		Launcher: entity.DefaultLauncher(),
		EventBus: bus,
		Logger:   logger,
		ctx:      ctx,
	}
}

// Frame returns the number of completed steps
func (s *Simulation) Frame() uint64 {
	return s.frame
}

// Step runs one iteration: quit check, fire, rotate, then update every body.
// A projectile fired in this step is updated in this step too.
func (s *Simulation) Step(deltaTime float64, in input.State) error {
	if in.QuitRequested() {
		s.EventBus.Publish(event.NewQuitEvent(s))
		return ErrQuit
	}

	if in.Fire || in.RotateLeft || in.RotateRight {
		player, err := s.World.Player()
		if err != nil {
			return err
		}
		if in.Fire {
			s.fire(player)
		}
		s.rotate(player, in)
	}

	s.World.Update(deltaTime)
	s.frame++

	projectiles := len(s.World.Projectiles())
	s.EventBus.Publish(event.NewFrameEvent(s, s.frame, deltaTime, s.World.Len(), projectiles))
	return nil
}

func (s *Simulation) fire(player *entity.Planet) {
	projectile := s.Launcher.Fire(s.World.NewID(), player)
	evicted := s.World.AddProjectile(projectile)

	s.Logger.Debug(s.ctx, "projectile fired",
		"projectile_id", uint64(projectile.ID),
		"x", projectile.Position.X,
		"y", projectile.Position.Y,
	)
	s.EventBus.Publish(event.NewProjectileEvent(event.ProjectileFired, s,
		uint64(projectile.ID), uint64(player.ID), projectile.Velocity.Length()))

	if evicted != nil {
		s.EventBus.Publish(event.NewProjectileEvent(event.ProjectileEvicted, s,
			uint64(evicted.ID), 0, evicted.Velocity.Length()))
	}
}

func (s *Simulation) rotate(player *entity.Planet, in input.State) {
	if !in.RotateLeft && !in.RotateRight {
		return
	}
	// right is applied before left
	if in.RotateRight {
		player.RotateAim(AimStep)
	}
	if in.RotateLeft {
		player.RotateAim(-AimStep)
	}
	s.EventBus.Publish(event.NewAimEvent(s, uint64(player.ID), player.AimAngle))
}
