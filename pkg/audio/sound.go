// Package audio plays the launch sound of fired projectiles.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-orbit/pkg/event"
)

const (
	sampleRate     = beep.SampleRate(44100)
	launchDuration = 120 * time.Millisecond
	launchFromHz   = 420.0
	launchToHz     = 1100.0
	launchVolume   = 0.2
)

// SoundManager mixes effect streams onto the speaker
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a sound manager. Nothing plays until Initialize.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences every active stream
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlayLaunch plays one launch chirp
func (sm *SoundManager) PlayLaunch() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(LaunchSound(sampleRate))
	speaker.Unlock()
}

// Subscribe plays a chirp for every fired projectile
func (sm *SoundManager) Subscribe(bus *event.Bus) {
	bus.Subscribe(event.ProjectileFired, func(event.Event) { sm.PlayLaunch() })
}

// LaunchSound returns the finite launch chirp stream
func LaunchSound(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(launchDuration), NewChirpGenerator(sr, launchFromHz, launchToHz, launchDuration))
}

// ChirpGenerator generates a sine sweep with a decaying envelope
type ChirpGenerator struct {
	sr      beep.SampleRate
	from    float64
	to      float64
	samples int
	pos     int
	phase   float64
}

// NewChirpGenerator creates a sweep from one frequency to another over d
func NewChirpGenerator(sr beep.SampleRate, fromHz, toHz float64, d time.Duration) *ChirpGenerator {
	return &ChirpGenerator{
		sr:      sr,
		from:    fromHz,
		to:      toHz,
		samples: max(sr.N(d), 1),
	}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.samples), 1)
		freq := g.from + (g.to-g.from)*progress

		// phase accumulation keeps the sweep continuous
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		envelope := math.Exp(-progress * 3)
		sample := launchVolume * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}
