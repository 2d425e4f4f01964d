package session

import "github.com/vovakirdan/tui-sokoban/internal/sokoban"

// Intent is a request processed by the session loop.
type Intent interface {
	intent()
}

// MoveIntent asks the player to step in a direction.
type MoveIntent struct {
	Dir sokoban.Direction
}

func (MoveIntent) intent() {}

// UndoIntent reverts the last successful move.
type UndoIntent struct{}

func (UndoIntent) intent() {}

// RestartIntent resets the level to its initial state.
type RestartIntent struct{}

func (RestartIntent) intent() {}

// QueryIntent reads the current state without changing it.
type QueryIntent struct{}

func (QueryIntent) intent() {}

// EventKind tells which intent produced an event.
type EventKind int

const (
	EventMove EventKind = iota
	EventUndo
	EventRestart
	EventQuery
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventUndo:
		return "undo"
	case EventRestart:
		return "restart"
	case EventQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Event is the result of one processed intent. Seq increases by one per
// processed intent, so subscribers can detect dropped events.
type Event struct {
	Seq      uint64
	Kind     EventKind
	Accepted bool // false for blocked moves and rejected undos
	Move     sokoban.MoveEvent
	Snapshot sokoban.Snapshot
}
