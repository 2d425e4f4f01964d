package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Ticks per second (default 30)
	LevelID  string // Level to start with; empty means the first one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	LevelID string
	Moves   int
	Pushes  int
	Solved  bool // the current level is solved
	Paused  bool
	Done    bool // nothing left to play
}

// Completion reports a level solved during a step.
type Completion struct {
	LevelID  string
	Moves    int
	Pushes   int
	Solution string // LURD notation
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State     GameState
	Completed *Completion // non-nil on the tick a level was solved
}
