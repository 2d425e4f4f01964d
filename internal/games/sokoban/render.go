package sokoban

import (
	"fmt"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	puzzle "github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

const (
	hudHeight  = 2 // title line + stats line
	helpHeight = 2 // blank line + key help
)

const helpText = "←↑↓→/hjkl move · u undo · r restart · p pause · q quit"

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.done {
		g.renderDone(dst)
		return
	}
	if g.state == nil {
		return
	}

	grid := g.level.Puzzle.Grid()
	cellW := g.cellWidth(grid.Width())
	boardW := grid.Width() * cellW
	boardH := grid.Height()

	area := core.NewRect(0, hudHeight, g.screenW, g.screenH-hudHeight-helpHeight)
	if !area.Fits(boardW, boardH) {
		g.renderTooSmall(dst, boardW, boardH)
		return
	}

	g.renderHUD(dst)
	board := area.Centered(boardW, boardH)
	g.renderBoard(dst, board, cellW)
	dst.DrawTextCentered(g.screenH-1, helpText, core.ColorDim)

	switch {
	case g.paused:
		g.renderBanner(dst, board, "PAUSED", "p to resume", core.ColorYellow)
	case g.state.Solved():
		hint := "enter: next level"
		if g.index+1 >= g.pack.Len() {
			hint = "enter: finish"
		}
		g.renderBanner(dst, board,
			fmt.Sprintf("Solved in %d moves, %d pushes", g.state.Moves(), g.state.Pushes()),
			hint, core.ColorGreen)
	}
}

// cellWidth doubles cells horizontally when there is room so the board
// looks square in a terminal.
func (g *Game) cellWidth(cols int) int {
	if cols*2 <= g.screenW {
		return 2
	}
	return 1
}

// renderHUD draws the level name and counters.
func (g *Game) renderHUD(dst *core.Screen) {
	title := fmt.Sprintf("%s  (%d/%d)", g.level.Name, g.index+1, g.pack.Len())
	dst.DrawTextCentered(0, title, core.ColorCyan)

	goals := g.level.Puzzle.Goals()
	stats := fmt.Sprintf("Moves: %d  Pushes: %d  Goals: %d/%d",
		g.state.Moves(), g.state.Pushes(), puzzle.GoalsFilled(g.state, goals), len(goals))
	color := core.ColorWhite
	if g.last != nil && g.last.Outcome == puzzle.OutcomeBlocked {
		stats += "  blocked"
		color = core.ColorOrange
	}
	dst.DrawTextCentered(1, stats, color)
}

// renderBoard draws every cell of the level inside r.
func (g *Game) renderBoard(dst *core.Screen, r core.Rect, cellW int) {
	grid := g.level.Puzzle.Grid()
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			ch, color := g.glyphs.cellGlyph(g.level.Puzzle, g.state, puzzle.P(x, y))
			px := r.X + x*cellW
			dst.SetColor(px, r.Y+y, ch, color)
			if cellW == 2 {
				// Walls fill both columns; everything else gets a gap.
				fill := ' '
				if ch == g.glyphs.Wall {
					fill = ch
				}
				dst.SetColor(px+1, r.Y+y, fill, color)
			}
		}
	}
}

// renderBanner draws a boxed two-line message over the middle of the board.
func (g *Game) renderBanner(dst *core.Screen, board core.Rect, line1, line2 string, c core.Color) {
	w := core.Max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect(0, 0, g.screenW, g.screenH).Centered(w, 4)
	if board.H > 0 {
		box.Y = core.Clamp(board.Y+board.H/2-2, 0, core.Max(0, g.screenH-4))
	}
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextCentered(box.Y+1, line1, c)
	dst.DrawTextCentered(box.Y+2, line2, core.ColorDim)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen, needW, needH int) {
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorRed)
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d for this level", needW, needH+hudHeight+helpHeight), core.ColorDefault)
}

// renderDone shows the end-of-pack screen.
func (g *Game) renderDone(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "All levels complete!", core.ColorGreen)
	dst.DrawTextCentered(y+1, "q to quit", core.ColorDim)
}
