// Package health provides liveness and readiness probes for a running
// simulation. They are served next to the metrics endpoint.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/opd-ai/go-orbit/pkg/event"
)

// Check is one component probe
type Check interface {
	// Name returns the unique name of this check
	Name() string
	// Check returns an error if the component is unhealthy
	Check(ctx context.Context) error
}

// Status is the aggregated result of all checks
type Status struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentStatus `json:"checks"`
}

// ComponentStatus is the result of a single check
type ComponentStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Checker runs the registered checks
type Checker struct {
	checks map[string]Check
	mu     sync.RWMutex
}

// NewChecker creates a checker without checks
func NewChecker() *Checker {
	return &Checker{
		checks: make(map[string]Check),
	}
}

// AddCheck registers a check, replacing one with the same name
func (c *Checker) AddCheck(check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[check.Name()] = check
}

// CheckHealth runs every check. The overall status is "healthy" only if all
// checks pass.
func (c *Checker) CheckHealth(ctx context.Context) Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := Status{
		Status: "healthy",
		Checks: make(map[string]ComponentStatus),
	}

	for name, check := range c.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks[name] = ComponentStatus{
				Status:  "unhealthy",
				Message: err.Error(),
			}
			continue
		}
		status.Checks[name] = ComponentStatus{Status: "healthy"}
	}

	return status
}

// LivenessHandler answers 200 while the process can serve requests
func (c *Checker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// ReadinessHandler runs all checks and answers 503 if any fails
func (c *Checker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := c.CheckHealth(ctx)

	w.Header().Set("Content-Type", "application/json")
	if status.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}

// FrameLoopCheck fails until the first frame is stepped and whenever no
// frame has been stepped for longer than MaxStall.
type FrameLoopCheck struct {
	MaxStall time.Duration

	mu        sync.Mutex
	lastFrame time.Time
	frames    uint64
	now       func() time.Time
}

// NewFrameLoopCheck creates the check; call Subscribe to feed it frames
func NewFrameLoopCheck(maxStall time.Duration) *FrameLoopCheck {
	return &FrameLoopCheck{
		MaxStall: maxStall,
		now:      time.Now,
	}
}

// Subscribe records every FrameAdvanced event published on bus
func (f *FrameLoopCheck) Subscribe(bus *event.Bus) {
	bus.Subscribe(event.FrameAdvanced, func(e event.Event) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.frames++
		f.lastFrame = f.now()
	})
}

// Name returns the name of this check
func (f *FrameLoopCheck) Name() string {
	return "frame_loop"
}

// Check verifies that frames keep advancing
func (f *FrameLoopCheck) Check(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.frames == 0 {
		return fmt.Errorf("no frame stepped yet")
	}
	if stall := f.now().Sub(f.lastFrame); f.MaxStall > 0 && stall > f.MaxStall {
		return fmt.Errorf("no frame for %v after %d frames", stall.Round(time.Millisecond), f.frames)
	}
	return nil
}

// MemoryCheck fails when the heap grows beyond a limit. Without a
// projectile cap the body registry grows without bound, so this is the
// first probe to trip on long runs.
type MemoryCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryCheck creates a memory check. A nil getMemoryUsage reads the
// runtime heap size.
func NewMemoryCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryCheck {
	if getMemoryUsage == nil {
		getMemoryUsage = heapMB
	}
	return &MemoryCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// Name returns the name of this check
func (m *MemoryCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within the limit
func (m *MemoryCheck) Check(ctx context.Context) error {
	currentMB := m.getMemoryUsage()
	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}

func heapMB() int64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return int64(stats.HeapAlloc / (1024 * 1024))
}
