// Package input defines the per-frame input snapshot the simulation consumes
// and the sources that produce it.
package input

// State is the held/pressed input for one frame
type State struct {
	Quit        bool // window close or interrupt
	Escape      bool
	Fire        bool
	RotateLeft  bool
	RotateRight bool
}

// QuitRequested reports whether this frame should end the run
func (s State) QuitRequested() bool {
	return s.Quit || s.Escape
}

// Source is polled once per frame
type Source interface {
	Poll() State
}

// Scripted replays a fixed sequence of states, one per Poll. Once the
// sequence is exhausted it returns Tail forever.
type Scripted struct {
	Frames []State
	Tail   State
	next   int
}

// NewScripted creates a scripted source over frames
func NewScripted(frames ...State) *Scripted {
	return &Scripted{Frames: frames}
}

// Repeat returns n copies of s, for building scripts
func Repeat(s State, n int) []State {
	out := make([]State, n)
	for i := range out {
		out[i] = s
	}
	return out
}

// Poll implements Source
func (s *Scripted) Poll() State {
	if s.next >= len(s.Frames) {
		return s.Tail
	}
	st := s.Frames[s.next]
	s.next++
	return st
}
