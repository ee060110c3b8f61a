package testutil

import "fmt"

// ScriptedSource replays a fixed sequence of die faces. Each Intn(n) call
// consumes the next face f and returns f-1, so a scripted 20 on a d20 is
// Intn(20) == 19.
//
// Invariant: every face must lie in [1, n] for the n it is consumed with.
type ScriptedSource struct {
	faces []int
	pos   int
}

// NewScriptedSource returns a source replaying faces in order.
func NewScriptedSource(faces ...int) *ScriptedSource {
	return &ScriptedSource{faces: faces}
}

// Intn returns the next scripted face minus one.
//
// Panics when the script is exhausted or the face does not fit the die.
func (s *ScriptedSource) Intn(n int) int {
	if s.pos >= len(s.faces) {
		panic(fmt.Sprintf("testutil: ScriptedSource exhausted after %d rolls", s.pos))
	}
	f := s.faces[s.pos]
	if f < 1 || f > n {
		panic(fmt.Sprintf("testutil: scripted face %d at position %d does not fit a d%d", f, s.pos, n))
	}
	s.pos++
	return f - 1
}

// Remaining returns the number of unconsumed faces.
func (s *ScriptedSource) Remaining() int {
	return len(s.faces) - s.pos
}
