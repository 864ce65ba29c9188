// pkg/engine/generate.go
package engine

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/go-orbit/pkg/config"
	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/physics"
)

const (
	orbitBandFraction  = 0.9
	minPlanetFraction  = 0.8
	minOrbitSpeedDeg   = 5
	maxOrbitSpeedDeg   = 20
	tooDarkValue       = 50.0 / 255.0
	randomChannelLimit = 255
)

// NewRand returns the generator used for world creation. Seed 0 picks a
// time-based seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSolarSystem builds the initial world: cfg.Planets planets on concentric
// orbits around the surface center, one of them the player, followed by the
// stationary sun. All randomness is drawn from rng here; nothing after
// initialization is random.
func NewSolarSystem(cfg config.WorldConfig, surface Surface, rng *rand.Rand) (*World, error) {
	if cfg.Planets < 1 {
		return nil, fmt.Errorf("solar system needs at least one planet, got %d", cfg.Planets)
	}

	width, height := surface.Size()
	center := physics.Vector2D{X: width / 2, Y: height / 2}

	maxOrbitRadius := math.Min(width, height) / 2 * orbitBandFraction
	orbitStep := maxOrbitRadius / float64(cfg.Planets)
	radiusMax := int(orbitStep / 2)
	radiusMin := int(float64(radiusMax) * minPlanetFraction)

	world := NewWorld()
	world.MaxProjectiles = cfg.MaxProjectiles

	orbitRadius := cfg.SunRadius
	for i := 0; i < cfg.Planets; i++ {
		radius := randomRange(rng, radiusMin, radiusMax)
		orbitRadius += orbitStep

		spec := entity.PlanetSpec{
			Radius:       float64(radius),
			Color:        randomTint(rng),
			Center:       center,
			OrbitRadius:  orbitRadius,
			AngularSpeed: degreesToRadians(randomRange(rng, minOrbitSpeedDeg, maxOrbitSpeedDeg)),
			Phase:        degreesToRadians(rng.IntN(360)),
			Mass:         float64(radius),
			Sprite:       entity.PlanetSprites[rng.IntN(len(entity.PlanetSprites))],
		}
		world.AddPlanet(entity.NewPlanet(world.NewID(), spec))
	}

	if err := world.SetPlayer(rng.IntN(cfg.Planets)); err != nil {
		return nil, err
	}

	world.AddPlanet(entity.NewSun(world.NewID(), center, cfg.SunRadius))
	return world, nil
}

// randomRange returns an int in [lo, hi), or lo when the range is empty
func randomRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return max(lo, 1)
	}
	return lo + rng.IntN(hi-lo)
}

// randomTint draws a random color. Colors too dark to see against the black
// background get one channel forced to full intensity.
func randomTint(rng *rand.Rand) color.RGBA {
	c := colorful.Color{
		R: float64(rng.IntN(randomChannelLimit)) / 255,
		G: float64(rng.IntN(randomChannelLimit)) / 255,
		B: float64(rng.IntN(randomChannelLimit)) / 255,
	}
	if _, _, v := c.Hsv(); v < tooDarkValue {
		switch rng.IntN(3) {
		case 0:
			c.R = 1
		case 1:
			c.G = 1
		default:
			c.B = 1
		}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func degreesToRadians(deg int) float64 {
	return float64(deg) * math.Pi / 180
}
