// pkg/render/renderer.go
package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/logging"
	"github.com/opd-ai/go-orbit/pkg/physics"
)

// NullRenderer is an entity.Renderer that draws nothing. Every call is logged
// at debug level and counted.
type NullRenderer struct {
	logger *logging.Logger

	Frames  int
	Circles int
	Blits   int
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger,
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear(c color.Color) {
	d.logger.Debug(context.Background(), "Clear called", "frame", d.Frames)
}

// BlitScaled implements entity.Renderer.
func (d *NullRenderer) BlitScaled(sprite entity.Sprite, center physics.Vector2D, width, height float64) {
	d.Blits++
	d.logger.Debug(context.Background(), "BlitScaled called",
		"sprite", sprite.String(),
		"x", center.X,
		"y", center.Y,
		"width", width,
		"height", height,
	)
}

// FillCircle implements entity.Renderer.
func (d *NullRenderer) FillCircle(center physics.Vector2D, radius float64, c color.Color) {
	d.Circles++
	d.logger.Debug(context.Background(), "FillCircle called",
		"x", center.X,
		"y", center.Y,
		"radius", radius,
	)
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.Frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.Frames)
}
