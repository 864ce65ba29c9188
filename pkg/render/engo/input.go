// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-orbit/pkg/input"
)

// Button names registered with engo
const (
	ButtonFire        = "fire"
	ButtonRotateLeft  = "rotateLeft"
	ButtonRotateRight = "rotateRight"
	ButtonEscape      = "escape"
)

// SetupInputBindings sets up the key bindings for the simulation
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonFire, engo.KeySpace)
	engo.Input.RegisterButton(ButtonRotateLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonRotateRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonEscape, engo.KeyEscape)
}

// InputSource reads held buttons once per frame
type InputSource struct {
	down func(button string) bool
}

// NewInputSource creates an input source over engo's button state
func NewInputSource() *InputSource {
	return &InputSource{
		down: func(button string) bool {
			return engo.Input.Button(button).Down()
		},
	}
}

// Poll implements input.Source
func (is *InputSource) Poll() input.State {
	return input.State{
		Escape:      is.down(ButtonEscape),
		Fire:        is.down(ButtonFire),
		RotateLeft:  is.down(ButtonRotateLeft),
		RotateRight: is.down(ButtonRotateRight),
	}
}
