package sokoban

// Snapshot captures the observable puzzle state for determinism testing
// and replay verification.
type Snapshot struct {
	Player  Position
	Facing  Direction
	Crates  []Crate
	Dropped []Crate
	Moves   int
	Pushes  int
	Solved  bool
	Undo    int // undoable moves
}

// Snapshot returns the current state snapshot.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Player:  s.player,
		Facing:  s.facing,
		Crates:  s.Crates(),
		Dropped: s.DroppedCrates(),
		Moves:   s.moves,
		Pushes:  s.pushes,
		Solved:  s.solved,
		Undo:    len(s.history),
	}
}
