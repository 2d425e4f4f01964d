package sokoban

// Outcome is the result of one move intent.
type Outcome uint8

const (
	OutcomeBlocked Outcome = iota
	OutcomeMoved
	OutcomePushed
	OutcomeMovedAndSolved
	OutcomePushedAndSolved
	OutcomeAlreadySolved
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeBlocked:
		return "Blocked"
	case OutcomeMoved:
		return "Moved"
	case OutcomePushed:
		return "Pushed"
	case OutcomeMovedAndSolved:
		return "MovedAndSolved"
	case OutcomePushedAndSolved:
		return "PushedAndSolved"
	case OutcomeAlreadySolved:
		return "AlreadySolved"
	default:
		return "Unknown"
	}
}

// Succeeded reports whether the state changed.
func (o Outcome) Succeeded() bool {
	switch o {
	case OutcomeMoved, OutcomePushed, OutcomeMovedAndSolved, OutcomePushedAndSolved:
		return true
	}
	return false
}

// Pushed reports whether a crate moved.
func (o Outcome) Pushed() bool {
	return o == OutcomePushed || o == OutcomePushedAndSolved
}

// Solved reports whether this move solved the level.
func (o Outcome) Solved() bool {
	return o == OutcomeMovedAndSolved || o == OutcomePushedAndSolved
}

// CrateMove describes a crate displaced by a move.
type CrateMove struct {
	From    Position
	To      Position
	Style   StyleID
	Dropped bool // the crate fell into (or, on undo, came out of) a hole
}

// MoveEvent is the state-change event produced for every intent.
type MoveEvent struct {
	Outcome Outcome
	Dir     Direction
	From    Position   // player before
	To      Position   // player after
	Crate   *CrateMove // nil unless a crate moved
	Undo    bool
}

// AttemptMove resolves one move intent against the level and mutates the
// state on success. It never fails; a rejected move is OutcomeBlocked and
// leaves the state untouched.
func AttemptMove(s *State, lvl *Level, d Direction) MoveEvent {
	ev := MoveEvent{Dir: d, From: s.player, To: s.player}

	if s.solved {
		ev.Outcome = OutcomeAlreadySolved
		return ev
	}

	if dx, dy := d.Delta(); dx == 0 && dy == 0 {
		ev.Outcome = OutcomeBlocked
		return ev
	}

	g := lvl.grid
	target := s.player.Step(d)
	if !s.playerCanEnter(g, target) {
		ev.Outcome = OutcomeBlocked
		return ev
	}

	st := step{dir: d, facing: s.facing}
	ev.Outcome = OutcomeMoved

	if style, ok := s.crates[target]; ok {
		beyond := target.Step(d)
		if !s.crateCanEnter(g, beyond) {
			ev.Outcome = OutcomeBlocked
			return ev
		}

		dropped := g.At(beyond) == CellHole && !s.HoleFilled(beyond)
		delete(s.crates, target)
		if dropped {
			s.filled[beyond] = style
		} else {
			s.crates[beyond] = style
		}
		s.pushes++

		st.pushed, st.dropped, st.style = true, dropped, style
		ev.Crate = &CrateMove{From: target, To: beyond, Style: style, Dropped: dropped}
		ev.Outcome = OutcomePushed
	}

	s.player = target
	s.facing = d
	s.moves++
	s.record(st)
	ev.To = target

	if IsSolved(s, lvl.goals) {
		s.solved = true
		if ev.Outcome == OutcomePushed {
			ev.Outcome = OutcomePushedAndSolved
		} else {
			ev.Outcome = OutcomeMovedAndSolved
		}
	}
	return ev
}

// Undo reverts the last successful move. It returns false when there is
// nothing to undo or the level is already solved.
func Undo(s *State) (MoveEvent, bool) {
	if !s.CanUndo() {
		return MoveEvent{Outcome: OutcomeBlocked, From: s.player, To: s.player}, false
	}

	st := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	back := s.player.Step(st.dir.Opposite())
	ev := MoveEvent{
		Outcome: OutcomeMoved,
		Dir:     st.dir.Opposite(),
		From:    s.player,
		To:      back,
		Undo:    true,
	}

	if st.pushed {
		beyond := s.player.Step(st.dir)
		if st.dropped {
			delete(s.filled, beyond)
		} else {
			delete(s.crates, beyond)
		}
		s.crates[s.player] = st.style
		s.pushes--
		ev.Outcome = OutcomePushed
		ev.Crate = &CrateMove{From: beyond, To: s.player, Style: st.style, Dropped: st.dropped}
	}

	s.player = back
	s.facing = st.facing
	s.moves--
	return ev, true
}
