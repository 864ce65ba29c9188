// pkg/render/engo/scene.go
package engo

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbit/pkg/config"
	"github.com/opd-ai/go-orbit/pkg/engine"
	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/event"
	"github.com/opd-ai/go-orbit/pkg/input"
	"github.com/opd-ai/go-orbit/pkg/logging"
)

// windowSurface reports engo's game area as the world surface
type windowSurface struct{}

func (windowSurface) Size() (float64, float64) {
	return float64(engo.GameWidth()), float64(engo.GameHeight())
}

// OrbitScene is the engo scene hosting the simulation
type OrbitScene struct {
	cfg    *config.Config
	logger *logging.Logger
	bus    *event.Bus
	rng    *rand.Rand
	ctx    context.Context

	system *SimulationSystem
}

// NewOrbitScene creates the scene. The world is built in Setup, once the
// window size is known.
func NewOrbitScene(ctx context.Context, cfg *config.Config, logger *logging.Logger, bus *event.Bus, rng *rand.Rand) *OrbitScene {
	return &OrbitScene{
		cfg:    cfg,
		logger: logger,
		bus:    bus,
		rng:    rng,
		ctx:    ctx,
	}
}

// Type returns the scene type (required by Engo)
func (scene *OrbitScene) Type() string {
	return "OrbitScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *OrbitScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *OrbitScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(entity.Black)

	renderSystem := &common.RenderSystem{}

	assets := NewAssetManager()
	if err := assets.LoadAssets(); err != nil {
		scene.logger.Error(scene.ctx, "sprite textures unavailable, drawing tints", err)
	}

	orbitWorld, err := engine.NewSolarSystem(scene.cfg.World, windowSurface{}, scene.rng)
	if err != nil {
		scene.logger.Error(scene.ctx, "failed to create solar system", err)
		scene.system = &SimulationSystem{err: err}
		engo.Exit()
		return
	}

	SetupInputBindings()
	sim := engine.NewSimulation(scene.ctx, orbitWorld, scene.bus, scene.logger)
	scene.system = NewSimulationSystem(sim, NewEngoRenderer(renderSystem, assets), NewInputSource(), scene.logger)
	world.AddSystem(scene.system)
	world.AddSystem(renderSystem)

	scene.logger.Info(scene.ctx, "solar system created",
		"bodies", orbitWorld.Len(),
		"player_index", orbitWorld.PlayerIndex(),
	)
}

// Exit is called when the window is closed
func (scene *OrbitScene) Exit() {
	scene.logger.Info(scene.ctx, "window closed")
	scene.bus.Publish(event.NewQuitEvent(scene))
	engo.Exit()
}

// Err returns the error that ended the scene, if any
func (scene *OrbitScene) Err() error {
	if scene.system == nil {
		return nil
	}
	return scene.system.err
}

// SimulationSystem steps the simulation and draws the world every engo frame
type SimulationSystem struct {
	sim      *engine.Simulation
	renderer entity.Renderer
	input    input.Source
	logger   *logging.Logger

	elapsed float64
	done    bool
	err     error
	exit    func()
}

// NewSimulationSystem creates the system
func NewSimulationSystem(sim *engine.Simulation, renderer entity.Renderer, in input.Source, logger *logging.Logger) *SimulationSystem {
	return &SimulationSystem{
		sim:      sim,
		renderer: renderer,
		input:    in,
		logger:   logger,
		exit:     engo.Exit,
	}
}

// SimulationPriority runs the simulation before engo's render system, so each
// frame renders the slots written by the same frame's step.
const SimulationPriority = common.RenderSystemPriority + 100

// Priority implements ecs.Prioritizer
func (s *SimulationSystem) Priority() int {
	return SimulationPriority
}

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update runs one frame with engo's delta time
func (s *SimulationSystem) Update(dt float32) {
	if s.done {
		return
	}

	deltaTime := float64(dt)
	s.elapsed += deltaTime

	if err := s.sim.Step(deltaTime, s.input.Poll()); err != nil {
		s.done = true
		if !errors.Is(err, engine.ErrQuit) {
			s.err = err
			s.logger.Error(context.Background(), "simulation step failed", err, "frame", s.sim.Frame())
		}
		s.exit()
		return
	}

	s.sim.World.Draw(s.renderer, s.elapsed)
}

// Run opens the window and blocks until it closes
func Run(ctx context.Context, cfg *config.Config, logger *logging.Logger, bus *event.Bus, rng *rand.Rand) error {
	scene := NewOrbitScene(ctx, cfg, logger, bus, rng)

	opts := engo.RunOptions{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      true,
		FPSLimit:   cfg.Loop.MaxFPS,
	}

	go func() {
		<-ctx.Done()
		engo.Exit()
	}()

	engo.Run(opts, scene)
	return scene.Err()
}
