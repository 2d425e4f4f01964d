// Package sokoban provides the puzzle state machine for the Sokoban game.
// It is UI-agnostic and deterministic: it receives move intents and emits
// move events, and knows nothing about terminals, timing or storage.
package sokoban

import "fmt"

// Position is a grid-local, zero-based cell coordinate.
type Position struct {
	X, Y int
}

// P is a shorthand constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns the position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Step returns the neighbouring position in the given direction.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four move intents.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all directions in a stable order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// StyleID identifies a crate/goal matching class. Zero is the wildcard.
type StyleID uint8

// AnyStyle is the wildcard style: it matches every counterpart.
const AnyStyle StyleID = 0

// MaxStyle is the highest concrete style a tileset may declare.
const MaxStyle = 5

// IsWildcard reports whether s matches any counterpart.
func (s StyleID) IsWildcard() bool {
	return s == AnyStyle
}

// Accepts reports whether a goal accepting s takes a crate of style crate.
func (s StyleID) Accepts(crate StyleID) bool {
	return s.IsWildcard() || crate.IsWildcard() || s == crate
}

// CellKind is the static kind of a grid cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota // outside the level, impassable
	CellFloor
	CellSolid
	CellHole
	CellSpawn
	CellGoal
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "Empty"
	case CellFloor:
		return "Floor"
	case CellSolid:
		return "Solid"
	case CellHole:
		return "Hole"
	case CellSpawn:
		return "Spawn"
	case CellGoal:
		return "Goal"
	default:
		return "Unknown"
	}
}

// Walkable reports whether the kind can hold the player or a crate
// regardless of dynamic state. Holes depend on state and are excluded.
func (k CellKind) Walkable() bool {
	return k == CellFloor || k == CellSpawn || k == CellGoal
}

// Crate is a pushable object.
type Crate struct {
	Pos   Position
	Style StyleID
}

// Goal is a static target cell.
type Goal struct {
	Pos    Position
	Accept StyleID
}
