// Package metrics exposes simulation counters to prometheus. Collectors are
// fed from the event bus and live on a private registry.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opd-ai/go-orbit/pkg/event"
)

const shutdownTimeout = 5 * time.Second

// Collector holds the simulation metrics
type Collector struct {
	registry *prometheus.Registry

	framesTotal     prometheus.Counter
	bodies          prometheus.Gauge
	projectiles     prometheus.Gauge
	firedTotal      prometheus.Counter
	evictedTotal    prometheus.Counter
	aimAngle        prometheus.Gauge
	quitTotal       prometheus.Counter
	frameDeltaHisto prometheus.Histogram
}

// NewCollector creates and registers the collectors
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orbit_frames_total",
			Help: "Total number of simulation steps",
		}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orbit_bodies",
			Help: "Bodies in the world registry",
		}),
		projectiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orbit_projectiles",
			Help: "Projectiles in the world registry",
		}),
		firedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orbit_projectiles_fired_total",
			Help: "Total projectiles fired by the player",
		}),
		evictedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orbit_projectiles_evicted_total",
			Help: "Total projectiles removed by the projectile cap",
		}),
		aimAngle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orbit_player_aim_radians",
			Help: "Aim angle of the player planet after its last rotation",
		}),
		quitTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orbit_quit_requests_total",
			Help: "Quit requests seen by the simulation",
		}),
		frameDeltaHisto: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orbit_frame_delta_seconds",
			Help:    "Delta time handed to each simulation step",
			Buckets: []float64{0.001, 0.002, 0.005, 0.01, 0.0167, 0.033, 0.05, 0.1, 0.25},
		}),
	}

	m.registry.MustRegister(
		m.framesTotal,
		m.bodies,
		m.projectiles,
		m.firedTotal,
		m.evictedTotal,
		m.aimAngle,
		m.quitTotal,
		m.frameDeltaHisto,
	)
	return m
}

// Registry returns the private registry
func (m *Collector) Registry() *prometheus.Registry {
	return m.registry
}

// Subscribe wires the collector to simulation events
func (m *Collector) Subscribe(bus *event.Bus) {
	bus.Subscribe(event.FrameAdvanced, m.handleFrame)
	bus.Subscribe(event.ProjectileFired, func(event.Event) { m.firedTotal.Inc() })
	bus.Subscribe(event.ProjectileEvicted, func(event.Event) { m.evictedTotal.Inc() })
	bus.Subscribe(event.AimRotated, m.handleAim)
	bus.Subscribe(event.QuitRequested, func(event.Event) { m.quitTotal.Inc() })
}

func (m *Collector) handleAim(e event.Event) {
	if aim, ok := e.(*event.AimEvent); ok {
		m.aimAngle.Set(aim.Angle)
	}
}

func (m *Collector) handleFrame(e event.Event) {
	frame, ok := e.(*event.FrameEvent)
	if !ok {
		return
	}
	m.framesTotal.Inc()
	m.bodies.Set(float64(frame.Bodies))
	m.projectiles.Set(float64(frame.Projectiles))
	m.frameDeltaHisto.Observe(frame.DeltaTime)
}

// Handler serves the registry in the prometheus exposition format
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Mount is an extra handler served next to /metrics
type Mount struct {
	Path    string
	Handler http.Handler
}

// Serve exposes /metrics and any extra mounts on addr until ctx is cancelled
func (m *Collector) Serve(ctx context.Context, addr string, mounts ...Mount) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	for _, mount := range mounts {
		mux.Handle(mount.Path, mount.Handler)
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
