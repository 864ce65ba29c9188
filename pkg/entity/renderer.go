package entity

import (
	"image/color"

	"github.com/opd-ai/go-orbit/pkg/physics"
)

// Renderer is the presentation collaborator bodies draw through
type Renderer interface {
	Clear(c color.Color)
	BlitScaled(sprite Sprite, center physics.Vector2D, width, height float64)
	FillCircle(center physics.Vector2D, radius float64, c color.Color)
	Present()
}

// Colors used by the default drawing of bodies
var (
	White       = color.RGBA{255, 255, 255, 255}
	Black       = color.RGBA{0, 0, 0, 255}
	Red         = color.RGBA{255, 0, 0, 255}
	Yellow      = color.RGBA{255, 255, 0, 255}
	PlayerGreen = color.RGBA{0, 220, 0, 255}
)
