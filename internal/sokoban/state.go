package sokoban

import "sort"

// State is the mutable part of a puzzle session. It is created from a
// Level and mutated only by AttemptMove and Undo. It is not safe for
// concurrent use.
type State struct {
	player Position
	facing Direction
	crates map[Position]StyleID
	filled map[Position]StyleID // holes that swallowed a crate

	moves  int
	pushes int
	solved bool

	history   []step
	undoLimit int // 0 = unlimited
}

// step is one undoable move.
type step struct {
	dir     Direction
	facing  Direction // facing before the move
	pushed  bool
	dropped bool
	style   StyleID
}

// NewState creates the initial state of a level.
func NewState(lvl *Level) *State {
	s := &State{
		player: lvl.spawn,
		facing: DirDown,
		crates: make(map[Position]StyleID, len(lvl.crates)),
		filled: make(map[Position]StyleID),
	}
	for _, c := range lvl.crates {
		s.crates[c.Pos] = c.Style
	}
	s.solved = IsSolved(s, lvl.goals)
	return s
}

// SetUndoLimit caps the number of moves kept for Undo. Zero means unlimited.
func (s *State) SetUndoLimit(n int) {
	if n < 0 {
		n = 0
	}
	s.undoLimit = n
	s.trimHistory()
}

// Player returns the player position.
func (s *State) Player() Position {
	return s.player
}

// Facing returns the direction the player last moved in.
func (s *State) Facing() Direction {
	return s.facing
}

// Moves returns the number of successful moves.
func (s *State) Moves() int {
	return s.moves
}

// Pushes returns the number of successful pushes.
func (s *State) Pushes() int {
	return s.pushes
}

// Solved reports whether the level is solved. Solved is terminal.
func (s *State) Solved() bool {
	return s.solved
}

// CanUndo reports whether Undo would succeed.
func (s *State) CanUndo() bool {
	return !s.solved && len(s.history) > 0
}

// CrateAt returns the live crate at p, if any.
func (s *State) CrateAt(p Position) (Crate, bool) {
	style, ok := s.crates[p]
	return Crate{Pos: p, Style: style}, ok
}

// HoleFilled reports whether a crate has dropped into the hole at p.
func (s *State) HoleFilled(p Position) bool {
	_, ok := s.filled[p]
	return ok
}

// Crates returns the live crates in row-major order.
func (s *State) Crates() []Crate {
	return sortedCrates(s.crates)
}

// DroppedCrates returns crates that fell into holes, in row-major order.
func (s *State) DroppedCrates() []Crate {
	return sortedCrates(s.filled)
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	cp := *s
	cp.crates = make(map[Position]StyleID, len(s.crates))
	for p, st := range s.crates {
		cp.crates[p] = st
	}
	cp.filled = make(map[Position]StyleID, len(s.filled))
	for p, st := range s.filled {
		cp.filled[p] = st
	}
	cp.history = append([]step(nil), s.history...)
	return &cp
}

func (s *State) record(st step) {
	s.history = append(s.history, st)
	s.trimHistory()
}

func (s *State) trimHistory() {
	if s.undoLimit > 0 && len(s.history) > s.undoLimit {
		s.history = append(s.history[:0:0], s.history[len(s.history)-s.undoLimit:]...)
	}
}

// playerCanEnter reports whether the player may stand on p, ignoring crates.
func (s *State) playerCanEnter(g *Grid, p Position) bool {
	kind := g.At(p)
	if kind == CellHole {
		return s.HoleFilled(p)
	}
	return kind.Walkable()
}

// crateCanEnter reports whether a crate may be pushed onto p.
// Unfilled holes accept a crate by swallowing it.
func (s *State) crateCanEnter(g *Grid, p Position) bool {
	if _, occupied := s.crates[p]; occupied {
		return false
	}
	kind := g.At(p)
	return kind == CellHole || kind.Walkable()
}

func sortedCrates(m map[Position]StyleID) []Crate {
	out := make([]Crate, 0, len(m))
	for p, st := range m {
		out = append(out, Crate{Pos: p, Style: st})
	}
	sort.Slice(out, func(i, j int) bool {
		return less(out[i].Pos, out[j].Pos)
	})
	return out
}
