package render

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orbit/pkg/input"
)

// TerminalInput turns tcell key events into per-frame input states.
// Terminals report presses, not releases, so a press counts as held for the
// next polled frame; key auto-repeat keeps it held. Quit and escape stay set.
type TerminalInput struct {
	screen  tcell.Screen
	mu      sync.Mutex
	pending input.State
}

// NewTerminalInput creates an input source reading from screen
func NewTerminalInput(screen tcell.Screen) *TerminalInput {
	return &TerminalInput{screen: screen}
}

// Start polls screen events until ctx is done or the screen is finalized
func (t *TerminalInput) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil || ctx.Err() != nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				t.handleKey(ev.Key(), ev.Rune(), ev.Modifiers())
			case *tcell.EventResize:
				t.screen.Sync()
			}
		}
	}()
}

// handleKey records one key press
func (t *TerminalInput) handleKey(key tcell.Key, ch rune, mod tcell.ModMask) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch key {
	case tcell.KeyEscape:
		t.pending.Escape = true
	case tcell.KeyCtrlC:
		t.pending.Quit = true
	case tcell.KeyLeft:
		t.pending.RotateLeft = true
	case tcell.KeyRight:
		t.pending.RotateRight = true
	case tcell.KeyRune:
		switch ch {
		case ' ':
			t.pending.Fire = true
		case 'a', 'A':
			t.pending.RotateLeft = true
		case 'd', 'D':
			t.pending.RotateRight = true
		case 'q', 'Q':
			if mod&tcell.ModCtrl != 0 {
				t.pending.Quit = true
			}
		}
	}
}

// Poll implements input.Source
func (t *TerminalInput) Poll() input.State {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.pending
	t.pending = input.State{Quit: state.Quit, Escape: state.Escape}
	return state
}
