package sokoban

import (
	"fmt"
	"sort"
)

// TileMap is the raw tile-id source of a level: one or more layers of
// Height rows by Width columns. Tile id 0 means "no tile".
type TileMap struct {
	Width  int
	Height int
	Layers []Layer
}

// Layer is a named grid of tile ids, row-major.
type Layer struct {
	Name  string
	Tiles [][]int
}

// Level is a loaded, validated puzzle. It is read-only and may be shared
// between any number of states.
type Level struct {
	grid   *Grid
	goals  []Goal
	goalAt map[Position]StyleID
	spawn  Position
	crates []Crate
}

// cellInfo collects what the layers put on one cell.
type cellInfo struct {
	solid, hole, floor bool
	spawn              bool
	crate, goal        bool
	crateStyle         StyleID
	goalAccept         StyleID
}

// Load builds a level from a tile map using the catalog.
// Errors wrap ErrMalformedLevel, ErrMissingSpawn or ErrInvalidStyle.
func Load(tm TileMap, cat *Catalog) (*Level, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: no tile catalog", ErrMalformedLevel)
	}
	if tm.Width <= 0 || tm.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrMalformedLevel, tm.Width, tm.Height)
	}
	if len(tm.Layers) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrMalformedLevel)
	}

	info := make([]cellInfo, tm.Width*tm.Height)

	for _, layer := range tm.Layers {
		if len(layer.Tiles) != tm.Height {
			return nil, fmt.Errorf("%w: layer %q has %d rows, expected %d",
				ErrMalformedLevel, layer.Name, len(layer.Tiles), tm.Height)
		}
		for y, row := range layer.Tiles {
			if len(row) != tm.Width {
				return nil, fmt.Errorf("%w: layer %q row %d has %d columns, expected %d",
					ErrMalformedLevel, layer.Name, y, len(row), tm.Width)
			}
			for x, id := range row {
				if id == 0 {
					continue
				}
				if err := info[y*tm.Width+x].apply(cat, id); err != nil {
					return nil, fmt.Errorf("%w: layer %q cell %v: %v",
						ErrMalformedLevel, layer.Name, P(x, y), err)
				}
			}
		}
	}

	lvl := &Level{goalAt: make(map[Position]StyleID)}
	cells := make([]CellKind, len(info))
	var spawns []Position

	for i, ci := range info {
		pos := P(i%tm.Width, i/tm.Width)
		terrain := ci.terrain()

		if ci.crate || ci.goal || ci.spawn {
			if terrain == CellSolid || terrain == CellHole {
				return nil, fmt.Errorf("%w: object on %s cell at %v",
					ErrMalformedLevel, terrain, pos)
			}
		}
		if ci.spawn && ci.crate {
			return nil, fmt.Errorf("%w: spawn and crate share cell %v", ErrMalformedLevel, pos)
		}

		cells[i] = terrain
		if ci.spawn {
			spawns = append(spawns, pos)
			cells[i] = CellSpawn
		}
		if ci.goal {
			lvl.goals = append(lvl.goals, Goal{Pos: pos, Accept: ci.goalAccept})
			lvl.goalAt[pos] = ci.goalAccept
			cells[i] = CellGoal
		}
		if ci.crate {
			lvl.crates = append(lvl.crates, Crate{Pos: pos, Style: ci.crateStyle})
		}
	}

	switch len(spawns) {
	case 0:
		return nil, fmt.Errorf("%w: level has no spawn tile", ErrMissingSpawn)
	case 1:
		lvl.spawn = spawns[0]
	default:
		return nil, fmt.Errorf("%w: level has %d spawn tiles, expected exactly one",
			ErrMissingSpawn, len(spawns))
	}

	if len(lvl.goals) == 0 || len(lvl.crates) == 0 {
		return nil, fmt.Errorf("%w: a level needs at least one goal and one crate", ErrMalformedLevel)
	}

	lvl.grid = NewGrid(tm.Width, tm.Height, cells)
	return lvl, nil
}

func (ci *cellInfo) apply(cat *Catalog, id int) error {
	kind, ok := cat.Classify(id)
	if !ok {
		return fmt.Errorf("unknown tile id %d", id)
	}

	switch kind {
	case TileSolid:
		ci.solid = true
	case TileHole:
		ci.hole = true
	case TileFloor:
		ci.floor = true
	case TileSpawn:
		if ci.spawn {
			return fmt.Errorf("duplicate spawn")
		}
		ci.spawn = true
	case TileCrate:
		if ci.crate {
			return fmt.Errorf("two crates on one cell")
		}
		ci.crate = true
		ci.crateStyle = cat.CrateStyle(id)
	case TileGoal:
		if ci.goal {
			return fmt.Errorf("two goals on one cell")
		}
		ci.goal = true
		ci.goalAccept = cat.GoalAccept(id)
	}
	return nil
}

// terrain resolves the static kind: Solid beats Hole beats Floor. Object
// tiles imply floor underneath.
func (ci cellInfo) terrain() CellKind {
	switch {
	case ci.solid:
		return CellSolid
	case ci.hole:
		return CellHole
	case ci.floor || ci.spawn || ci.crate || ci.goal:
		return CellFloor
	default:
		return CellEmpty
	}
}

// NewLevel assembles a level directly from parts. It is meant for tests and
// generators; it applies the same invariants as Load.
func NewLevel(grid *Grid, spawn Position, crates []Crate, goals []Goal) (*Level, error) {
	lvl := &Level{grid: grid, spawn: spawn, goalAt: make(map[Position]StyleID)}

	if !grid.At(spawn).Walkable() {
		return nil, fmt.Errorf("%w: spawn %v is not on a walkable cell", ErrMissingSpawn, spawn)
	}
	for _, g := range goals {
		if g.Accept > MaxStyle {
			return nil, fmt.Errorf("%w: goal at %v accepts %d", ErrInvalidStyle, g.Pos, g.Accept)
		}
		if _, dup := lvl.goalAt[g.Pos]; dup || !grid.At(g.Pos).Walkable() {
			return nil, fmt.Errorf("%w: bad goal at %v", ErrMalformedLevel, g.Pos)
		}
		lvl.goalAt[g.Pos] = g.Accept
		lvl.goals = append(lvl.goals, g)
	}
	seen := make(map[Position]bool, len(crates))
	for _, c := range crates {
		if c.Style > MaxStyle {
			return nil, fmt.Errorf("%w: crate at %v has style %d", ErrInvalidStyle, c.Pos, c.Style)
		}
		if seen[c.Pos] || c.Pos == spawn || !grid.At(c.Pos).Walkable() {
			return nil, fmt.Errorf("%w: bad crate at %v", ErrMalformedLevel, c.Pos)
		}
		seen[c.Pos] = true
		lvl.crates = append(lvl.crates, c)
	}
	if len(lvl.goals) == 0 || len(lvl.crates) == 0 {
		return nil, fmt.Errorf("%w: a level needs at least one goal and one crate", ErrMalformedLevel)
	}
	return lvl, nil
}

// Grid returns the static grid.
func (l *Level) Grid() *Grid {
	return l.grid
}

// Spawn returns the player start position.
func (l *Level) Spawn() Position {
	return l.spawn
}

// Goals returns a copy of the goal set, in row-major order.
func (l *Level) Goals() []Goal {
	out := make([]Goal, len(l.goals))
	copy(out, l.goals)
	sort.Slice(out, func(i, j int) bool {
		return less(out[i].Pos, out[j].Pos)
	})
	return out
}

// GoalAt returns the goal at p, if any.
func (l *Level) GoalAt(p Position) (Goal, bool) {
	accept, ok := l.goalAt[p]
	return Goal{Pos: p, Accept: accept}, ok
}

// InitialCrates returns a copy of the crates as placed by the level.
func (l *Level) InitialCrates() []Crate {
	out := make([]Crate, len(l.crates))
	copy(out, l.crates)
	return out
}

// less orders positions row-major.
func less(a, b Position) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
