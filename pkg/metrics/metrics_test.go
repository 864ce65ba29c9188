package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/opd-ai/go-orbit/pkg/event"
)

func TestCollector_CountsEvents(t *testing.T) {
	m := NewCollector()
	bus := event.NewEventBus()
	m.Subscribe(bus)

	bus.Publish(event.NewFrameEvent(nil, 1, 0.016, 6, 0))
	bus.Publish(event.NewProjectileEvent(event.ProjectileFired, nil, 7, 1, 50))
	bus.Publish(event.NewProjectileEvent(event.ProjectileFired, nil, 8, 1, 50))
	bus.Publish(event.NewProjectileEvent(event.ProjectileEvicted, nil, 7, 0, 12))
	bus.Publish(event.NewFrameEvent(nil, 2, 0.02, 7, 1))
	bus.Publish(event.NewAimEvent(nil, 1, 0.5))
	bus.Publish(event.NewAimEvent(nil, 1, 0.25))
	bus.Publish(event.NewQuitEvent(nil))

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"frames", testutil.ToFloat64(m.framesTotal), 2},
		{"bodies", testutil.ToFloat64(m.bodies), 7},
		{"projectiles", testutil.ToFloat64(m.projectiles), 1},
		{"fired", testutil.ToFloat64(m.firedTotal), 2},
		{"evicted", testutil.ToFloat64(m.evictedTotal), 1},
		{"aim", testutil.ToFloat64(m.aimAngle), 0.25},
		{"quit", testutil.ToFloat64(m.quitTotal), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if n := testutil.CollectAndCount(m.frameDeltaHisto); n != 1 {
		t.Errorf("histogram series = %d", n)
	}
}

func TestCollector_IgnoresForeignFrameEvents(t *testing.T) {
	m := NewCollector()
	m.handleFrame(&event.BaseEvent{EventType: event.FrameAdvanced})
	if got := testutil.ToFloat64(m.framesTotal); got != 0 {
		t.Errorf("frames = %v, want 0", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	m := NewCollector()
	m.firedTotal.Add(3)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, name := range []string{"orbit_projectiles_fired_total 3", "orbit_frames_total 0", "orbit_frame_delta_seconds_bucket"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("exposition lacks %q", name)
		}
	}
}

func TestCollector_ServeStopsOnCancel(t *testing.T) {
	m := NewCollector()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.Serve(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not stop after cancel")
	}
}
