// pkg/engine/loop.go
package engine

import (
	"context"
	"errors"

	"github.com/opd-ai/go-orbit/pkg/clock"
	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/input"
	"github.com/opd-ai/go-orbit/pkg/logging"
)

// Surface reports the presentation surface size in world units. It is read
// once, when the world is created.
type Surface interface {
	Size() (width, height float64)
}

// FixedSurface is a surface of constant size
type FixedSurface struct {
	Width, Height float64
}

// Size implements Surface
func (s FixedSurface) Size() (float64, float64) {
	return s.Width, s.Height
}

// Runner drives the frame loop: tick, poll input, step, draw.
type Runner struct {
	Simulation *Simulation
	Clock      clock.Clock
	Input      input.Source
	Renderer   entity.Renderer
	Logger     *logging.Logger

	// MaxFrames stops the loop after that many steps; 0 runs until quit
	MaxFrames int
}

// Run executes frames until quit is requested, ctx is cancelled or MaxFrames
// is reached. Those three cases return nil; any other error ends the run and
// is returned.
func (r *Runner) Run(ctx context.Context) error {
	logger := r.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	for frames := 0; r.MaxFrames <= 0 || frames < r.MaxFrames; frames++ {
		deltaTime, err := r.Clock.Tick(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.Info(ctx, "frame loop cancelled", "frames", frames)
				return nil
			}
			return logging.WrapError(err, "frame %d clock", frames)
		}

		if err := r.Simulation.Step(deltaTime, r.Input.Poll()); err != nil {
			if errors.Is(err, ErrQuit) {
				logger.Info(ctx, "quit requested", "frames", frames)
				return nil
			}
			return logging.WrapError(err, "frame %d step", frames)
		}

		r.Simulation.World.Draw(r.Renderer, r.Clock.Elapsed())
	}

	logger.Info(ctx, "frame limit reached", "frames", r.MaxFrames)
	return nil
}
