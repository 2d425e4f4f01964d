// Package sokoban adapts the puzzle state machine to the platform: it
// turns input frames into move intents, walks through the level pack and
// draws the board into a screen buffer.
package sokoban

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	puzzle "github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// autoAdvanceSeconds is how long the solved banner stays before the next
// level loads when auto-advance is on.
const autoAdvanceSeconds = 2

// Game implements interactive Sokoban over a level pack.
type Game struct {
	env    registry.Env
	pack   *levels.Pack
	glyphs Glyphs
	logger *log.Logger

	index int
	level levels.Level
	state *puzzle.State
	steps []puzzle.Step // path since the last restart, kept in sync with undo

	// Screen dimensions
	screenW  int
	screenH  int
	tickRate int

	tick        uint64
	paused      bool
	done        bool
	solvedTicks int
	last        *puzzle.MoveEvent
}

func init() {
	registry.Register("sokoban", "Sokoban", func(env registry.Env) registry.Game {
		return New(env)
	})
	registry.Register("demo", "Solution Demo", func(env registry.Env) registry.Game {
		return NewDemo(env)
	})
}

// New creates a game over env.Pack.
func New(env registry.Env) *Game {
	glyphs, ok := GlyphsByName(env.Glyphs)
	logger := env.Logger
	if logger == nil {
		logger = log.Default()
	}
	if !ok {
		logger.Warn("unknown glyph set, using unicode", "glyphs", env.Glyphs)
	}
	return &Game{
		env:    env,
		pack:   env.Pack,
		glyphs: glyphs,
		logger: logger,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "sokoban"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Sokoban"
}

// Reset loads cfg.LevelID (or the first level) and clears all progress.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tick = 0
	g.paused = false
	g.done = false

	g.index = 0
	if cfg.LevelID != "" {
		if i := g.pack.IndexOf(cfg.LevelID); i >= 0 {
			g.index = i
		} else {
			g.logger.Warn("unknown start level, using the first one", "level", cfg.LevelID)
		}
	}
	g.loadLevel(g.index)
}

// Resize updates the screen size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// loadLevel starts level i from its initial state.
func (g *Game) loadLevel(i int) {
	lvl, ok := g.pack.At(i)
	if !ok {
		g.done = true
		return
	}
	g.index = i
	g.level = lvl
	g.state = puzzle.NewState(lvl.Puzzle)
	g.state.SetUndoLimit(g.env.UndoLimit)
	g.steps = g.steps[:0]
	g.solvedTicks = 0
	g.last = nil
	g.logger.Debug("level loaded", "level", lvl.ID, "index", i)
}

// advance moves to the next level, or ends the run after the last one.
func (g *Game) advance() {
	if g.index+1 >= g.pack.Len() {
		g.done = true
		g.logger.Info("pack complete", "levels", g.pack.Len())
		return
	}
	g.loadLevel(g.index + 1)
}

// Step applies the frame's actions in arrival order.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	var result core.StepResult

	for _, a := range in.Actions {
		if a == core.ActionPause {
			g.paused = !g.paused
			continue
		}
		if g.paused || g.done {
			continue
		}

		switch a {
		case core.ActionUp:
			result.Completed = g.move(puzzle.DirUp, result.Completed)
		case core.ActionDown:
			result.Completed = g.move(puzzle.DirDown, result.Completed)
		case core.ActionLeft:
			result.Completed = g.move(puzzle.DirLeft, result.Completed)
		case core.ActionRight:
			result.Completed = g.move(puzzle.DirRight, result.Completed)
		case core.ActionUndo:
			g.undo()
		case core.ActionRestart:
			g.loadLevel(g.index)
		case core.ActionConfirm:
			if g.state.Solved() {
				g.advance()
			}
		}
	}

	if !g.paused && !g.done && g.state.Solved() && g.env.AutoAdvance {
		g.solvedTicks++
		if g.solvedTicks >= autoAdvanceSeconds*g.tickRate {
			g.advance()
		}
	}

	result.State = g.State()
	return result
}

// move resolves one direction and returns the completion record if this
// move solved the level.
func (g *Game) move(d puzzle.Direction, prev *core.Completion) *core.Completion {
	ev := puzzle.AttemptMove(g.state, g.level.Puzzle, d)
	g.last = &ev
	if !ev.Outcome.Succeeded() {
		return prev
	}
	g.steps = append(g.steps, puzzle.StepFromEvent(ev))

	if !ev.Outcome.Solved() {
		return prev
	}
	g.solvedTicks = 0
	g.logger.Info("level solved", "level", g.level.ID, "moves", g.state.Moves(), "pushes", g.state.Pushes())
	return &core.Completion{
		LevelID:  g.level.ID,
		Moves:    g.state.Moves(),
		Pushes:   g.state.Pushes(),
		Solution: puzzle.FormatMoves(g.steps),
	}
}

func (g *Game) undo() {
	ev, ok := puzzle.Undo(g.state)
	if !ok {
		return
	}
	g.last = &ev
	if n := len(g.steps); n > 0 {
		g.steps = g.steps[:n-1]
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Paused: g.paused,
		Done:   g.done,
	}
	if g.state != nil {
		st.LevelID = g.level.ID
		st.Moves = g.state.Moves()
		st.Pushes = g.state.Pushes()
		st.Solved = g.state.Solved()
	}
	return st
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Puzzle returns the live puzzle state.
func (g *Game) Puzzle() *puzzle.State {
	return g.state
}

// Solution returns the current path in LURD notation.
func (g *Game) Solution() string {
	return puzzle.FormatMoves(g.steps)
}
