// Package clock supplies frame delta times to the simulation loop.
package clock

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Clock reports the time since the previous tick and since start, in seconds
type Clock interface {
	Tick(ctx context.Context) (float64, error)
	Elapsed() float64
}

// Pacer is a wall clock whose ticks are capped at a maximum rate
type Pacer struct {
	limiter *rate.Limiter
	now     func() time.Time
	start   time.Time
	last    time.Time
}

// NewPacer creates a pacer allowing at most maxFPS ticks per second.
// maxFPS <= 0 disables the cap.
func NewPacer(maxFPS int) *Pacer {
	return newPacer(maxFPS, time.Now)
}

func newPacer(maxFPS int, now func() time.Time) *Pacer {
	limit := rate.Inf
	if maxFPS > 0 {
		limit = rate.Limit(maxFPS)
	}
	start := now()
	return &Pacer{
		limiter: rate.NewLimiter(limit, 1),
		now:     now,
		start:   start,
		last:    start,
	}
}

// Tick blocks until the rate cap allows another frame and returns the wall
// time elapsed since the previous tick.
func (p *Pacer) Tick(ctx context.Context) (float64, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("pacer wait: %w", err)
	}
	t := p.now()
	delta := t.Sub(p.last).Seconds()
	p.last = t
	return delta, nil
}

// Elapsed returns seconds since the pacer was created
func (p *Pacer) Elapsed() float64 {
	return p.now().Sub(p.start).Seconds()
}

// Fixed advances by a constant step every tick, independent of wall time.
// Headless runs and replays use it for reproducible results.
type Fixed struct {
	Step    float64
	elapsed float64
}

// NewFixed creates a fixed-step clock
func NewFixed(step float64) *Fixed {
	return &Fixed{Step: step}
}

// Tick implements Clock
func (f *Fixed) Tick(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.elapsed += f.Step
	return f.Step, nil
}

// Elapsed implements Clock
func (f *Fixed) Elapsed() float64 {
	return f.elapsed
}
