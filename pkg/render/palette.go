// pkg/render/palette.go
package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/go-orbit/pkg/entity"
)

// spritePalette holds the dominant color of each sprite
var spritePalette = map[entity.Sprite]colorful.Color{
	entity.SpriteCheese: colorful.Hsv(48, 0.75, 0.98),
	entity.SpriteEarth:  colorful.Hsv(205, 0.70, 0.85),
	entity.SpriteLuna:   colorful.Hsv(0, 0, 0.78),
	entity.SpriteMagma:  colorful.Hsv(12, 0.90, 0.90),
	entity.SpriteSaturn: colorful.Hsv(35, 0.45, 0.88),
	entity.SpriteVenus:  colorful.Hsv(28, 0.60, 0.95),
	entity.SpriteSun:    colorful.Hsv(55, 1, 1),
}

// SpriteColor returns the dominant color of a sprite. SpriteNone and unknown
// sprites are white.
func SpriteColor(s entity.Sprite) colorful.Color {
	if c, ok := spritePalette[s]; ok {
		return c
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}

// Shade darkens c toward black by t in [0,1], blending in Lab space
func Shade(c colorful.Color, t float64) colorful.Color {
	return c.BlendLab(colorful.Color{}, clamp01(t)).Clamped()
}

// ToColorful converts any color to a colorful.Color, ignoring alpha
func ToColorful(c color.Color) colorful.Color {
	out, ok := colorful.MakeColor(c)
	if !ok {
		return colorful.Color{}
	}
	return out
}

// ToRGBA converts a colorful.Color to an opaque color.RGBA
func ToRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
