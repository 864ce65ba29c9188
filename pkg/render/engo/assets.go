// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"math"

	"github.com/EngoEngine/engo/common"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/render"
)

// SpriteSize is the edge length in pixels of generated sprite textures
const SpriteSize = 128

// AssetManager holds one texture per sprite. Textures are generated, not
// loaded from files.
type AssetManager struct {
	sprites map[entity.Sprite]common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites: make(map[entity.Sprite]common.Drawable),
	}
}

// LoadAssets uploads every sprite texture. It needs a GL context, so it can
// only run inside engo's Setup.
func (am *AssetManager) LoadAssets() error {
	for _, s := range append([]entity.Sprite{entity.SpriteSun}, entity.PlanetSprites...) {
		img := SpriteImage(s, SpriteSize)
		texture := common.NewTextureSingle(common.NewImageObject(img))
		am.sprites[s] = texture
	}
	return nil
}

// Sprite returns the texture of s, or nil if it was not loaded
func (am *AssetManager) Sprite(s entity.Sprite) common.Drawable {
	if am == nil {
		return nil
	}
	return am.sprites[s]
}

// SpriteImage draws sprite s into a size×size image: a disc in the sprite's
// palette color, darker toward the rim, with per-sprite surface detail.
func SpriteImage(s entity.Sprite, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	base := render.SpriteColor(s)
	half := float64(size) / 2

	// saturn's disc is smaller to leave room for the ring
	discRadius := half
	if s == entity.SpriteSaturn {
		discRadius = half * 0.62
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - half) / discRadius
			dy := (float64(y) + 0.5 - half) / discRadius
			d := math.Hypot(dx, dy)

			if s == entity.SpriteSaturn {
				if c, ok := saturnRing(base, dx*discRadius/half, dy*discRadius/half); ok && d > 1 {
					img.SetNRGBA(x, y, c)
					continue
				}
			}
			if d > 1 {
				continue
			}

			c := surfaceDetail(s, base, dx, dy)
			img.SetNRGBA(x, y, toNRGBA(render.Shade(c, d*d*0.55)))
		}
	}
	return img
}

// surfaceDetail varies the base color over the disc
func surfaceDetail(s entity.Sprite, base colorful.Color, dx, dy float64) colorful.Color {
	switch s {
	case entity.SpriteEarth:
		// land masses
		if math.Sin(dx*7)+math.Cos(dy*5+dx*2) > 0.9 {
			return base.BlendLab(colorful.Hsv(110, 0.6, 0.6), 0.8)
		}
	case entity.SpriteCheese, entity.SpriteLuna:
		// craters
		if math.Sin(dx*11)*math.Sin(dy*13) > 0.75 {
			return render.Shade(base, 0.35)
		}
	case entity.SpriteMagma:
		// glowing cracks
		if math.Abs(math.Sin(dx*9+math.Sin(dy*6))) < 0.12 {
			return colorful.Hsv(50, 1, 1)
		}
	case entity.SpriteSaturn, entity.SpriteVenus:
		// cloud bands
		return base.BlendLab(colorful.Hsv(40, 0.2, 0.95), 0.25+0.25*math.Sin(dy*12))
	case entity.SpriteSun:
		// bright core
		return base.BlendLab(colorful.Color{R: 1, G: 1, B: 0.9}, 0.6*(1-math.Hypot(dx, dy)))
	}
	return base
}

// saturnRing returns the ring color at (rx, ry) in half-size units
func saturnRing(base colorful.Color, rx, ry float64) (color.NRGBA, bool) {
	// ellipse squashed 3:1
	r := math.Hypot(rx, ry*3)
	if r < 0.72 || r > 0.98 {
		return color.NRGBA{}, false
	}
	return toNRGBA(render.Shade(base.BlendLab(colorful.Hsv(30, 0.3, 0.7), 0.5), 0.2)), true
}

func toNRGBA(c colorful.Color) color.NRGBA {
	rgba := render.ToRGBA(c)
	return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: 255}
}
