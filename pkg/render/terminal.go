package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/physics"
)

// Default world units covered by one terminal cell. Cells are about twice as
// tall as wide, so this keeps circles round.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

const (
	fillRune   = '█'
	spriteRune = '▓'
)

type cell struct {
	r     rune
	style tcell.Style
}

// TerminalRenderer draws the world onto a tcell screen. Each cell covers a
// fixed rectangle of world space; shapes are rasterized by testing cell
// centers. It also serves as the world surface.
type TerminalRenderer struct {
	screen     tcell.Screen
	width      int
	height     int
	cellWidth  float64
	cellHeight float64
	buffer     [][]cell
}

// NewTerminalRenderer creates a renderer over an initialized screen
func NewTerminalRenderer(screen tcell.Screen, cellWidth, cellHeight float64) *TerminalRenderer {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if cellHeight <= 0 {
		cellHeight = DefaultCellHeight
	}
	r := &TerminalRenderer{
		screen:     screen,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
	}
	r.resize()
	return r
}

func (r *TerminalRenderer) resize() {
	w, h := r.screen.Size()
	if w == r.width && h == r.height && r.buffer != nil {
		return
	}
	r.width, r.height = w, h
	r.buffer = make([][]cell, h)
	for y := range r.buffer {
		r.buffer[y] = make([]cell, w)
	}
}

// Size implements engine.Surface, in world units
func (r *TerminalRenderer) Size() (float64, float64) {
	return float64(r.width) * r.cellWidth, float64(r.height) * r.cellHeight
}

// worldToScreen converts world coordinates to the cell containing them
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	return int(math.Floor(pos.X / r.cellWidth)), int(math.Floor(pos.Y / r.cellHeight))
}

// cellCenter returns the world position of the center of cell (x, y)
func (r *TerminalRenderer) cellCenter(x, y int) physics.Vector2D {
	return physics.Vector2D{
		X: (float64(x) + 0.5) * r.cellWidth,
		Y: (float64(y) + 0.5) * r.cellHeight,
	}
}

func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || y >= len(r.buffer) || x >= len(r.buffer[y]) {
		return
	}
	r.buffer[y][x] = cell{r: ch, style: style}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear(c color.Color) {
	r.resize()
	style := tcell.StyleDefault.Background(tcellColor(ToColorful(c)))
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = cell{r: ' ', style: style}
		}
	}
}

// FillCircle implements entity.Renderer
func (r *TerminalRenderer) FillCircle(center physics.Vector2D, radius float64, c color.Color) {
	fg := tcellColor(ToColorful(c))
	r.fillEllipse(center, radius, radius, func(float64) (rune, tcell.Style) {
		return fillRune, tcell.StyleDefault.Foreground(fg)
	})
}

// BlitScaled implements entity.Renderer. The sprite is drawn as an ellipse in
// its palette color, darker toward the rim.
func (r *TerminalRenderer) BlitScaled(sprite entity.Sprite, center physics.Vector2D, width, height float64) {
	base := SpriteColor(sprite)
	r.fillEllipse(center, width/2, height/2, func(dist float64) (rune, tcell.Style) {
		shade := Shade(base, dist*0.6)
		return spriteRune, tcell.StyleDefault.Foreground(tcellColor(shade))
	})
}

// fillEllipse paints every cell whose center lies inside the ellipse. The
// cell holding the center is always painted so small shapes stay visible.
// paint receives the normalized distance from the center in [0,1].
func (r *TerminalRenderer) fillEllipse(center physics.Vector2D, rx, ry float64, paint func(dist float64) (rune, tcell.Style)) {
	cx, cy := r.worldToScreen(center)
	ch, style := paint(0)
	r.set(cx, cy, ch, style)
	if rx <= 0 || ry <= 0 {
		return
	}

	minX, minY := r.worldToScreen(physics.Vector2D{X: center.X - rx, Y: center.Y - ry})
	maxX, maxY := r.worldToScreen(physics.Vector2D{X: center.X + rx, Y: center.Y + ry})
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, r.width-1), min(maxY, r.height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := r.cellCenter(x, y)
			dx := (p.X - center.X) / rx
			dy := (p.Y - center.Y) / ry
			d2 := dx*dx + dy*dy
			if d2 > 1 {
				continue
			}
			ch, style := paint(math.Sqrt(d2))
			r.set(x, y, ch, style)
		}
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	for y := range r.buffer {
		for x, c := range r.buffer[y] {
			r.screen.SetContent(x, y, c.r, nil, c.style)
		}
	}
	r.screen.Show()
}

func tcellColor(c colorful.Color) tcell.Color {
	red, green, blue := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(red), int32(green), int32(blue))
}
