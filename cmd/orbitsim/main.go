// cmd/orbitsim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"github.com/opd-ai/go-orbit/pkg/audio"
	"github.com/opd-ai/go-orbit/pkg/clock"
	"github.com/opd-ai/go-orbit/pkg/config"
	"github.com/opd-ai/go-orbit/pkg/engine"
	"github.com/opd-ai/go-orbit/pkg/event"
	"github.com/opd-ai/go-orbit/pkg/health"
	"github.com/opd-ai/go-orbit/pkg/input"
	"github.com/opd-ai/go-orbit/pkg/logging"
	"github.com/opd-ai/go-orbit/pkg/metrics"
	"github.com/opd-ai/go-orbit/pkg/render"
	engorender "github.com/opd-ai/go-orbit/pkg/render/engo"
)

// headlessFrames is used when the headless frontend has no frame limit
const headlessFrames = 600

// maxHeapMB is the readiness limit on heap size
const maxHeapMB = 512

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to configuration file (JSON, YAML or TOML)")
	createDefault := flag.String("default", "", "Write the default configuration to this path and exit")
	flag.Parse()

	// Missing .env is fine
	_ = godotenv.Load()

	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	if *createDefault != "" {
		if err := config.SaveConfig(config.DefaultConfig(), *createDefault); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *createDefault,
			)
			return 1
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *createDefault,
		)
		return 0
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		return 1
	}

	logOutput, closeLog, err := openLogOutput(cfg)
	if err != nil {
		logger.Error(ctx, "Failed to open log file", err, "log_file", cfg.Log.File)
		return 1
	}
	defer closeLog()
	logger = logging.New(logOutput, logging.ParseLevel(cfg.Log.Level))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting orbit simulation",
		"run_id", logging.GetCorrelationID(ctx),
		"frontend", cfg.Frontend,
		"planets", cfg.World.Planets,
		"seed", cfg.World.Seed,
	)

	bus := event.NewEventBus()
	logEvents(ctx, logger, bus)
	startMetrics(ctx, cfg, logger, bus)

	if cfg.Audio.Enabled {
		sound := audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			logger.Warn(ctx, "Audio disabled", "error", err.Error())
		} else {
			defer sound.Cleanup()
			sound.Subscribe(bus)
		}
	}

	rng := engine.NewRand(cfg.World.Seed)

	switch cfg.Frontend {
	case config.FrontendEngo:
		err = engorender.Run(ctx, cfg, logger, bus, rng)
	case config.FrontendTerminal:
		err = runTerminal(ctx, cfg, logger, bus, rng)
	default:
		err = runHeadless(ctx, cfg, logger, bus, rng)
	}

	if err != nil && !errors.Is(err, engine.ErrQuit) {
		logger.Error(ctx, "Simulation failed", err)
		return 1
	}
	logger.Info(ctx, "Simulation stopped")
	return 0
}

// openLogOutput returns the log writer. The terminal frontend owns the tty, so
// without a log file its records are dropped.
func openLogOutput(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.Log.File == "" {
		if cfg.Frontend == config.FrontendTerminal {
			return io.Discard, func() {}, nil
		}
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// logEvents logs the player's aim changes and quit requests
func logEvents(ctx context.Context, logger *logging.Logger, bus *event.Bus) {
	bus.Subscribe(event.AimRotated, func(e event.Event) {
		if aim, ok := e.(*event.AimEvent); ok {
			logger.Debug(ctx, "Aim rotated", "planet_id", aim.PlanetID, "angle", aim.Angle)
		}
	})
	bus.Subscribe(event.QuitRequested, func(event.Event) {
		logger.Info(ctx, "Quit requested")
	})
}

// startMetrics serves metrics and health probes when an address is configured
func startMetrics(ctx context.Context, cfg *config.Config, logger *logging.Logger, bus *event.Bus) {
	if cfg.Metrics.Addr == "" {
		return
	}

	collector := metrics.NewCollector()
	collector.Subscribe(bus)

	checker := health.NewChecker()
	frameLoop := health.NewFrameLoopCheck(5 * time.Second)
	frameLoop.Subscribe(bus)
	checker.AddCheck(frameLoop)
	checker.AddCheck(health.NewMemoryCheck(maxHeapMB, nil))

	go func() {
		logger.Info(ctx, "Serving metrics", "addr", cfg.Metrics.Addr)
		err := collector.Serve(ctx, cfg.Metrics.Addr,
			metrics.Mount{Path: "/healthz", Handler: http.HandlerFunc(checker.LivenessHandler)},
			metrics.Mount{Path: "/readyz", Handler: http.HandlerFunc(checker.ReadinessHandler)},
		)
		if err != nil {
			logger.Error(ctx, "Metrics server failed", err, "addr", cfg.Metrics.Addr)
		}
	}()
}

// runTerminal runs the simulation on a tcell screen
func runTerminal(ctx context.Context, cfg *config.Config, logger *logging.Logger, bus *event.Bus, rng *rand.Rand) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "init terminal screen")
	}
	defer screen.Fini()

	renderer := render.NewTerminalRenderer(screen, render.DefaultCellWidth, render.DefaultCellHeight)
	world, err := engine.NewSolarSystem(cfg.World, renderer, rng)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	keys := render.NewTerminalInput(screen)
	keys.Start(ctx)

	runner := &engine.Runner{
		Simulation: engine.NewSimulation(ctx, world, bus, logger),
		Clock:      clock.NewPacer(cfg.Loop.MaxFPS),
		Input:      keys,
		Renderer:   renderer,
		Logger:     logger,
		MaxFrames:  cfg.Loop.Frames,
	}
	return runner.Run(ctx)
}

// runHeadless runs a scripted session without any display and logs the
// final state
func runHeadless(ctx context.Context, cfg *config.Config, logger *logging.Logger, bus *event.Bus, rng *rand.Rand) error {
	surface := engine.FixedSurface{
		Width:  float64(cfg.Window.Width),
		Height: float64(cfg.Window.Height),
	}
	world, err := engine.NewSolarSystem(cfg.World, surface, rng)
	if err != nil {
		return err
	}

	frames := cfg.Loop.Frames
	if frames == 0 {
		frames = headlessFrames
	}

	runner := &engine.Runner{
		Simulation: engine.NewSimulation(ctx, world, bus, logger),
		Clock:      clock.NewFixed(cfg.Loop.FixedStep),
		Input:      input.NewScripted(demoScript(frames)...),
		Renderer:   render.NewNullRenderer(logger),
		Logger:     logger,
		MaxFrames:  frames,
	}
	if err := runner.Run(ctx); err != nil {
		return err
	}

	state := world.Snapshot()
	logger.Info(ctx, "Final world state",
		"frames", runner.Simulation.Frame(),
		"bodies", len(state.Bodies),
		"projectiles", len(world.Projectiles()),
		"player_index", state.PlayerIndex,
	)
	for _, body := range state.Bodies {
		logger.Debug(ctx, "Body",
			"id", body.ID,
			"kind", body.Kind.String(),
			"x", body.Position.X,
			"y", body.Position.Y,
			"vx", body.Velocity.X,
			"vy", body.Velocity.Y,
		)
	}
	return nil
}

// demoScript sweeps the aim to the right and fires every 30 frames
func demoScript(frames int) []input.State {
	script := make([]input.State, frames)
	for i := range script {
		script[i].RotateRight = i%30 < 6
		script[i].Fire = i%30 == 29
	}
	return script
}
