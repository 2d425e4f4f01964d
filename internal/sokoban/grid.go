package sokoban

// Grid is the immutable static layout of a level.
type Grid struct {
	w, h  int
	cells []CellKind
}

// NewGrid creates a grid from row-major cell kinds. It panics if the slice
// does not match the dimensions; loaders validate before calling.
func NewGrid(w, h int, cells []CellKind) *Grid {
	if w < 0 || h < 0 || len(cells) != w*h {
		panic("sokoban: grid cells do not match dimensions")
	}
	cp := make([]CellKind, len(cells))
	copy(cp, cells)
	return &Grid{w: w, h: h, cells: cp}
}

// GridFromRows builds a grid from equal-length rows.
func GridFromRows(rows [][]CellKind) *Grid {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	cells := make([]CellKind, 0, w*h)
	for _, row := range rows {
		cells = append(cells, row...)
	}
	return NewGrid(w, h, cells)
}

// Width returns the grid width in cells.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the grid height in cells.
func (g *Grid) Height() int {
	return g.h
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

// At returns the cell kind at p. Out-of-bounds positions are Solid.
func (g *Grid) At(p Position) CellKind {
	if !g.InBounds(p) {
		return CellSolid
	}
	return g.cells[p.Y*g.w+p.X]
}

// Count returns the number of cells of the given kind.
func (g *Grid) Count(kind CellKind) int {
	n := 0
	for _, c := range g.cells {
		if c == kind {
			n++
		}
	}
	return n
}
