package sokoban

import (
	"fmt"
	"strings"
	"unicode"
)

// Step is one entry of a move sequence. Push is informational: replaying
// ignores it and lets the resolver decide.
type Step struct {
	Dir  Direction
	Push bool
}

var lurdLetters = map[rune]Direction{
	'u': DirUp,
	'd': DirDown,
	'l': DirLeft,
	'r': DirRight,
}

// ParseMoves parses LURD notation: u, d, l, r for moves and upper case for
// pushes. Whitespace is ignored.
func ParseMoves(s string) ([]Step, error) {
	steps := make([]Step, 0, len(s))
	for i, ch := range s {
		if unicode.IsSpace(ch) {
			continue
		}
		d, ok := lurdLetters[unicode.ToLower(ch)]
		if !ok {
			return nil, fmt.Errorf("sokoban: invalid move %q at offset %d", ch, i)
		}
		steps = append(steps, Step{Dir: d, Push: unicode.IsUpper(ch)})
	}
	return steps, nil
}

// FormatMoves renders steps in LURD notation.
func FormatMoves(steps []Step) string {
	var b strings.Builder
	b.Grow(len(steps))
	for _, st := range steps {
		var ch byte
		switch st.Dir {
		case DirUp:
			ch = 'u'
		case DirDown:
			ch = 'd'
		case DirLeft:
			ch = 'l'
		case DirRight:
			ch = 'r'
		default:
			continue
		}
		if st.Push {
			ch -= 'a' - 'A'
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// StepFromEvent converts a successful move event into a notation step.
func StepFromEvent(ev MoveEvent) Step {
	return Step{Dir: ev.Dir, Push: ev.Outcome.Pushed()}
}

// Replay applies steps to a fresh state of lvl and returns the final state
// with every event. Blocked steps are kept in the event list.
func Replay(lvl *Level, steps []Step) (*State, []MoveEvent) {
	s := NewState(lvl)
	events := make([]MoveEvent, 0, len(steps))
	for _, st := range steps {
		events = append(events, AttemptMove(s, lvl, st.Dir))
	}
	return s, events
}
