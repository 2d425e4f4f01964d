package sokoban

import (
	"fmt"
	"math"
	"strings"
)

// TileKind is the semantic meaning of a tile definition.
type TileKind uint8

const (
	TileFloor TileKind = iota
	TileSolid
	TileHole
	TileSpawn
	TileGoal
	TileCrate
)

// String returns the type tag of the tile kind.
func (k TileKind) String() string {
	switch k {
	case TileFloor:
		return "floor"
	case TileSolid:
		return "solid"
	case TileHole:
		return "hole"
	case TileSpawn:
		return "spawn"
	case TileGoal:
		return "goal"
	case TileCrate:
		return "crate"
	default:
		return "unknown"
	}
}

// IsObject reports whether the tile marks an entity rather than terrain.
func (k TileKind) IsObject() bool {
	return k == TileSpawn || k == TileGoal || k == TileCrate
}

// Tile property names.
const (
	PropStyle   = "style"
	PropAccepts = "accepts"
)

// TileDef is the raw per-tile metadata of a tileset.
type TileDef struct {
	ID         int
	Type       string
	Properties map[string]any
	Animation  []int // frame tile ids, used by renderers only
}

type tileEntry struct {
	kind  TileKind
	style StyleID
}

// Catalog maps tile ids to semantic kinds. It is built once and all
// property parsing happens in NewCatalog.
type Catalog struct {
	entries map[int]tileEntry
}

// NewCatalog validates tile definitions and builds a catalog.
// Tile id 0 is reserved for "no tile".
func NewCatalog(defs []TileDef) (*Catalog, error) {
	c := &Catalog{entries: make(map[int]tileEntry, len(defs))}

	for _, def := range defs {
		if def.ID <= 0 {
			return nil, fmt.Errorf("%w: tile id %d must be positive", ErrMalformedLevel, def.ID)
		}
		if _, dup := c.entries[def.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate tile id %d", ErrMalformedLevel, def.ID)
		}

		kind, err := parseTileKind(def.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: tile %d: %v", ErrMalformedLevel, def.ID, err)
		}

		entry := tileEntry{kind: kind}
		switch kind {
		case TileCrate:
			entry.style, err = styleProperty(def.Properties, PropStyle)
		case TileGoal:
			entry.style, err = styleProperty(def.Properties, PropAccepts)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: tile %d: %v", ErrInvalidStyle, def.ID, err)
		}

		c.entries[def.ID] = entry
	}

	// Animation frames must reference defined tiles.
	for _, def := range defs {
		for _, frame := range def.Animation {
			if _, ok := c.entries[frame]; !ok {
				return nil, fmt.Errorf("%w: tile %d: animation frame %d is not defined",
					ErrMalformedLevel, def.ID, frame)
			}
		}
	}

	return c, nil
}

// Len returns the number of defined tiles.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Classify returns the kind of a tile id. The boolean is false for unknown ids.
func (c *Catalog) Classify(id int) (TileKind, bool) {
	e, ok := c.entries[id]
	return e.kind, ok
}

// CrateStyle returns the style of a crate tile, or AnyStyle for other tiles.
func (c *Catalog) CrateStyle(id int) StyleID {
	if e, ok := c.entries[id]; ok && e.kind == TileCrate {
		return e.style
	}
	return AnyStyle
}

// GoalAccept returns the accepted style of a goal tile, or AnyStyle for other tiles.
func (c *Catalog) GoalAccept(id int) StyleID {
	if e, ok := c.entries[id]; ok && e.kind == TileGoal {
		return e.style
	}
	return AnyStyle
}

func parseTileKind(tag string) (TileKind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "", "floor":
		return TileFloor, nil
	case "solid":
		return TileSolid, nil
	case "hole":
		return TileHole, nil
	case "spawn":
		return TileSpawn, nil
	case "goal":
		return TileGoal, nil
	case "crate":
		return TileCrate, nil
	default:
		return 0, fmt.Errorf("unknown tile type %q", tag)
	}
}

// styleProperty reads an integer style property. A missing property or 0
// means wildcard.
func styleProperty(props map[string]any, name string) (StyleID, error) {
	raw, ok := props[name]
	if !ok || raw == nil {
		return AnyStyle, nil
	}

	var v int64
	switch n := raw.(type) {
	case int:
		v = int64(n)
	case int64:
		v = n
	case int32:
		v = int64(n)
	case uint64:
		if n > math.MaxInt32 {
			return 0, fmt.Errorf("%s %d out of range 0..%d", name, n, MaxStyle)
		}
		v = int64(n)
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", name, raw)
	}

	if v < 0 || v > MaxStyle {
		return 0, fmt.Errorf("%s %d out of range 0..%d", name, v, MaxStyle)
	}
	return StyleID(v), nil
}
