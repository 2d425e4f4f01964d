package sokoban

// IsSolved reports whether every goal holds a crate of an accepted style
// and every live crate sits on a goal.
func IsSolved(s *State, goals []Goal) bool {
	onGoal := 0
	for _, g := range goals {
		style, ok := s.crates[g.Pos]
		if !ok || !g.Accept.Accepts(style) {
			return false
		}
		onGoal++
	}
	return onGoal == len(s.crates)
}

// GoalsFilled counts goals holding a crate of an accepted style.
func GoalsFilled(s *State, goals []Goal) int {
	n := 0
	for _, g := range goals {
		if style, ok := s.crates[g.Pos]; ok && g.Accept.Accepts(style) {
			n++
		}
	}
	return n
}
