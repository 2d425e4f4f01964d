package sokoban

import (
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	puzzle "github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// Glyphs is the rune set used to draw a board.
type Glyphs struct {
	Name        string
	Wall        rune
	Floor       rune
	Goal        rune
	Hole        rune
	FilledHole  rune
	Crate       rune
	CrateOnGoal rune
	Player      [4]rune // indexed by facing direction
}

var (
	// ASCIIGlyphs follows the classic XSB characters.
	ASCIIGlyphs = Glyphs{
		Name:        "ascii",
		Wall:        '#',
		Floor:       ' ',
		Goal:        '.',
		Hole:        '^',
		FilledHole:  '_',
		Crate:       '$',
		CrateOnGoal: '*',
		Player:      [4]rune{'@', '@', '@', '@'},
	}

	// UnicodeGlyphs uses block and geometric shapes and shows facing.
	UnicodeGlyphs = Glyphs{
		Name:        "unicode",
		Wall:        '█',
		Floor:       '·',
		Goal:        '◇',
		Hole:        '◌',
		FilledHole:  '▫',
		Crate:       '■',
		CrateOnGoal: '▣',
		Player: [4]rune{
			puzzle.DirUp:    '▲',
			puzzle.DirDown:  '▼',
			puzzle.DirLeft:  '◀',
			puzzle.DirRight: '▶',
		},
	}
)

// GlyphsByName returns a glyph set by name. Unknown names fall back to
// the unicode set.
func GlyphsByName(name string) (Glyphs, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ascii":
		return ASCIIGlyphs, true
	case "unicode", "":
		return UnicodeGlyphs, true
	default:
		return UnicodeGlyphs, false
	}
}

// StyleColor maps a crate or goal style to a screen color.
func StyleColor(s puzzle.StyleID) core.Color {
	switch s {
	case 1:
		return core.ColorRed
	case 2:
		return core.ColorBlue
	case 3:
		return core.ColorGreen
	case 4:
		return core.ColorMagenta
	case 5:
		return core.ColorCyan
	default:
		return core.ColorOrange
	}
}

// cellGlyph resolves what is drawn at p.
func (gl Glyphs) cellGlyph(lvl *puzzle.Level, s *puzzle.State, p puzzle.Position) (rune, core.Color) {
	if p == s.Player() {
		return gl.Player[s.Facing()], core.ColorYellow
	}

	goal, onGoal := lvl.GoalAt(p)
	if c, ok := s.CrateAt(p); ok {
		if onGoal && goal.Accept.Accepts(c.Style) {
			return gl.CrateOnGoal, StyleColor(c.Style)
		}
		return gl.Crate, StyleColor(c.Style)
	}
	if onGoal {
		return gl.Goal, StyleColor(goal.Accept)
	}

	switch lvl.Grid().At(p) {
	case puzzle.CellSolid:
		return gl.Wall, core.ColorGray
	case puzzle.CellHole:
		if s.HoleFilled(p) {
			return gl.FilledHole, core.ColorDim
		}
		return gl.Hole, core.ColorDim
	case puzzle.CellFloor, puzzle.CellSpawn:
		return gl.Floor, core.ColorDim
	default:
		return ' ', core.ColorDefault
	}
}
