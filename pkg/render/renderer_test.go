// pkg/render/renderer_test.go
package render

import (
	"bytes"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/go-orbit/pkg/entity"
	"github.com/opd-ai/go-orbit/pkg/logging"
	"github.com/opd-ai/go-orbit/pkg/physics"
)

func TestNullRenderer_CountsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewNullRenderer(logging.New(&buf, slog.LevelDebug))

	renderer.Clear(entity.Black)
	renderer.FillCircle(physics.Vector2D{X: 1, Y: 2}, 10, entity.Red)
	renderer.BlitScaled(entity.SpriteSun, physics.Vector2D{X: 5, Y: 5}, 100, 100)
	renderer.Present()

	if renderer.Frames != 1 || renderer.Circles != 1 || renderer.Blits != 1 {
		t.Errorf("counts = %d frames, %d circles, %d blits", renderer.Frames, renderer.Circles, renderer.Blits)
	}

	output := buf.String()
	for _, want := range []string{"Clear called", "FillCircle called", "BlitScaled called", `"sprite":"sun"`, "Present called"} {
		if !strings.Contains(output, want) {
			t.Errorf("log output lacks %q: %s", want, output)
		}
	}
}

func TestNullRenderer_NilLogger(t *testing.T) {
	renderer := NewNullRenderer(nil)
	renderer.Clear(entity.Black)
	renderer.Present()
	if renderer.Frames != 1 {
		t.Errorf("Frames = %d", renderer.Frames)
	}
}

func TestSpriteColor(t *testing.T) {
	seen := make(map[colorful.Color]entity.Sprite)
	for _, s := range append([]entity.Sprite{entity.SpriteSun}, entity.PlanetSprites...) {
		c := SpriteColor(s)
		if !c.IsValid() {
			t.Errorf("%v color %v is out of gamut", s, c)
		}
		if other, dup := seen[c]; dup {
			t.Errorf("%v and %v share color %v", s, other, c)
		}
		seen[c] = s
	}

	if SpriteColor(entity.SpriteNone) != (colorful.Color{R: 1, G: 1, B: 1}) {
		t.Error("SpriteNone should be white")
	}
}

func TestShade(t *testing.T) {
	base := SpriteColor(entity.SpriteEarth)

	if got := Shade(base, 0); got.DistanceLab(base) > 1e-6 {
		t.Errorf("Shade(c, 0) = %v, want %v", got, base)
	}
	if got := Shade(base, 1); got.DistanceLab(colorful.Color{}) > 1e-6 {
		t.Errorf("Shade(c, 1) = %v, want black", got)
	}
	_, _, vBase := base.Hsv()
	_, _, vHalf := Shade(base, 0.5).Hsv()
	if vHalf >= vBase {
		t.Errorf("half shade value %v is not darker than %v", vHalf, vBase)
	}
	if Shade(base, 2) != Shade(base, 1) || Shade(base, -1) != Shade(base, 0) {
		t.Error("shade amount is not clamped")
	}
}

func TestColorConversion(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want color.RGBA
	}{
		{"red", entity.Red, color.RGBA{255, 0, 0, 255}},
		{"player green", entity.PlayerGreen, color.RGBA{0, 220, 0, 255}},
		{"gray16", color.Gray16{Y: 0xffff}, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGBA(ToColorful(tt.in)); got != tt.want {
				t.Errorf("ToRGBA(ToColorful(%v)) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
