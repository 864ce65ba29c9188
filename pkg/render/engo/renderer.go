// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/physics"
	"github.com/opd-ai/go-orbit/pkg/render"
)

// slotSink receives newly created draw slots; common.RenderSystem satisfies it
type slotSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
}

// drawSlot is one reusable render entity
type drawSlot struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// EngoRenderer implements entity.Renderer on top of the engo render system.
// engo draws retained entities, so every draw call claims the next slot of a
// pool; slots not claimed during a frame are hidden at Present.
type EngoRenderer struct {
	sink   slotSink
	assets *AssetManager

	slots []*drawSlot
	used  int

	background    color.Color
	setBackground func(color.Color)
	setZIndex     func(*common.RenderComponent, float32)
}

// NewEngoRenderer creates a renderer feeding the given render system
func NewEngoRenderer(renderSystem *common.RenderSystem, assets *AssetManager) *EngoRenderer {
	return newEngoRenderer(renderSystem, assets)
}

func newEngoRenderer(sink slotSink, assets *AssetManager) *EngoRenderer {
	return &EngoRenderer{
		sink:          sink,
		assets:        assets,
		setBackground: common.SetBackground,
		setZIndex: func(rc *common.RenderComponent, z float32) {
			rc.SetZIndex(z)
		},
	}
}

// Clear implements entity.Renderer. All slots become free for reuse.
func (r *EngoRenderer) Clear(c color.Color) {
	if r.background != c {
		r.background = c
		r.setBackground(c)
	}
	r.used = 0
}

// FillCircle implements entity.Renderer
func (r *EngoRenderer) FillCircle(center physics.Vector2D, radius float64, c color.Color) {
	slot := r.claim()
	slot.render.Drawable = common.Circle{}
	slot.render.Color = c
	slot.render.Scale = engo.Point{X: 1, Y: 1}
	slot.space.Position = topLeft(center, radius*2, radius*2)
	slot.space.Width = float32(radius * 2)
	slot.space.Height = float32(radius * 2)
}

// BlitScaled implements entity.Renderer. Sprites without a loaded texture
// fall back to a circle in the sprite's palette color.
func (r *EngoRenderer) BlitScaled(sprite entity.Sprite, center physics.Vector2D, width, height float64) {
	drawable := r.assets.Sprite(sprite)
	if drawable == nil {
		slot := r.claim()
		slot.render.Drawable = common.Circle{}
		slot.render.Color = render.ToRGBA(render.SpriteColor(sprite))
		slot.render.Scale = engo.Point{X: 1, Y: 1}
		slot.space.Position = topLeft(center, width, height)
		slot.space.Width = float32(width)
		slot.space.Height = float32(height)
		return
	}

	slot := r.claim()
	slot.render.Drawable = drawable
	slot.render.Color = color.White
	slot.render.Scale = engo.Point{
		X: float32(width) / drawable.Width(),
		Y: float32(height) / drawable.Height(),
	}
	slot.space.Position = topLeft(center, width, height)
	slot.space.Width = float32(width)
	slot.space.Height = float32(height)
}

// Present implements entity.Renderer. engo swaps buffers itself; this only
// hides the slots left over from larger frames.
func (r *EngoRenderer) Present() {
	for _, slot := range r.slots[r.used:] {
		slot.render.Hidden = true
	}
}

// claim returns the next free slot, creating it on first use. Slot z-order
// follows claim order so later draw calls paint on top.
func (r *EngoRenderer) claim() *drawSlot {
	if r.used == len(r.slots) {
		slot := &drawSlot{basic: ecs.NewBasic()}
		r.setZIndex(&slot.render, float32(len(r.slots)))
		r.sink.Add(&slot.basic, &slot.render, &slot.space)
		r.slots = append(r.slots, slot)
	}
	slot := r.slots[r.used]
	slot.render.Hidden = false
	r.used++
	return slot
}

// topLeft converts a center position to the corner engo positions by
func topLeft(center physics.Vector2D, width, height float64) engo.Point {
	return engo.Point{
		X: float32(center.X - width/2),
		Y: float32(center.Y - height/2),
	}
}
