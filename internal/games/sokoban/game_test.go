package sokoban

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	puzzle "github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

func testEnv(t *testing.T) registry.Env {
	t.Helper()
	logger := log.New(io.Discard)
	all, err := levels.Builtin(logger).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	return registry.Env{Pack: levels.NewPack(all), Glyphs: "ascii", Logger: logger}
}

func newGame(t *testing.T, env registry.Env, levelID string) *Game {
	t.Helper()
	g := New(env)
	cfg := core.DefaultConfig()
	cfg.LevelID = levelID
	g.Reset(cfg)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

var dirActions = map[puzzle.Direction]core.Action{
	puzzle.DirUp:    core.ActionUp,
	puzzle.DirDown:  core.ActionDown,
	puzzle.DirLeft:  core.ActionLeft,
	puzzle.DirRight: core.ActionRight,
}

// play feeds a LURD string one move per tick and returns the last
// completion seen.
func play(t *testing.T, g *Game, moves string) *core.Completion {
	t.Helper()
	steps, err := puzzle.ParseMoves(moves)
	if err != nil {
		t.Fatalf("ParseMoves(%q) error: %v", moves, err)
	}
	var done *core.Completion
	for _, st := range steps {
		if res := g.Step(frame(dirActions[st.Dir])); res.Completed != nil {
			done = res.Completed
		}
	}
	return done
}

func TestSolveReportsCompletion(t *testing.T) {
	g := newGame(t, testEnv(t), "classic-01")

	res := g.Step(frame(core.ActionRight))
	if res.Completed == nil {
		t.Fatal("expected a completion on the solving move")
	}
	if res.Completed.LevelID != "classic-01" || res.Completed.Moves != 1 || res.Completed.Pushes != 1 {
		t.Errorf("Completed = %+v, expected classic-01 in 1 move and 1 push", *res.Completed)
	}
	if res.Completed.Solution != "R" {
		t.Errorf("Solution = %q, expected %q", res.Completed.Solution, "R")
	}
	if !res.State.Solved {
		t.Error("State.Solved should be true")
	}

	// Solved is terminal: further moves change nothing and report nothing.
	res = g.Step(frame(core.ActionLeft, core.ActionUndo))
	if res.Completed != nil || res.State.Moves != 1 {
		t.Errorf("moves after solving should be ignored, got %+v", res)
	}
}

func TestConfirmAdvancesToNextLevel(t *testing.T) {
	g := newGame(t, testEnv(t), "classic-01")

	// Confirm before solving does nothing.
	g.Step(frame(core.ActionConfirm))
	if g.State().LevelID != "classic-01" {
		t.Fatalf("Confirm on an unsolved level moved to %s", g.State().LevelID)
	}

	g.Step(frame(core.ActionRight, core.ActionConfirm))
	st := g.State()
	if st.LevelID != "classic-02" || st.Moves != 0 || st.Solved {
		t.Errorf("after confirm State = %+v, expected fresh classic-02", st)
	}
}

func TestActionsApplyInOrder(t *testing.T) {
	g := newGame(t, testEnv(t), "classic-02")

	g.Step(frame(core.ActionDown, core.ActionLeft, core.ActionUndo))
	if g.State().Moves != 1 {
		t.Errorf("Moves = %d, expected 1", g.State().Moves)
	}
	if g.Solution() != "d" {
		t.Errorf("Solution() = %q, expected %q", g.Solution(), "d")
	}

	g.Step(frame(core.ActionRestart))
	if g.State().Moves != 0 || g.Solution() != "" {
		t.Errorf("Restart should reset, got moves=%d path=%q", g.State().Moves, g.Solution())
	}
	if g.Puzzle().Player() != g.Level().Puzzle.Spawn() {
		t.Error("Restart should put the player back on the spawn")
	}
}

func TestUndoLimit(t *testing.T) {
	env := testEnv(t)
	env.UndoLimit = 1
	g := newGame(t, env, "classic-02")

	play(t, g, "dl")
	g.Step(frame(core.ActionUndo, core.ActionUndo))
	if g.State().Moves != 1 {
		t.Errorf("Moves = %d, expected 1 with undo limit 1", g.State().Moves)
	}
}

func TestPauseBlocksMoves(t *testing.T) {
	g := newGame(t, testEnv(t), "classic-01")

	g.Step(frame(core.ActionPause, core.ActionRight))
	if st := g.State(); !st.Paused || st.Moves != 0 {
		t.Errorf("paused game should ignore moves, got %+v", st)
	}

	res := g.Step(frame(core.ActionPause, core.ActionRight))
	if res.State.Paused || res.Completed == nil {
		t.Errorf("unpause then move should solve, got %+v", res)
	}
}

func TestStoredSolutionsThroughGame(t *testing.T) {
	env := testEnv(t)
	for _, lvl := range env.Pack.Levels() {
		sol, ok := lvl.Solution()
		if !ok {
			continue
		}
		t.Run(lvl.ID, func(t *testing.T) {
			g := newGame(t, env, lvl.ID)
			done := play(t, g, sol)
			if done == nil {
				t.Fatalf("solution %q did not complete %s", sol, lvl.ID)
			}
			if done.Moves != len(done.Solution) {
				t.Errorf("Moves = %d, expected %d", done.Moves, len(done.Solution))
			}
		})
	}
}

func TestAutoAdvance(t *testing.T) {
	env := testEnv(t)
	env.AutoAdvance = true
	g := New(env)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 2, LevelID: "classic-01"})

	g.Step(frame(core.ActionRight))
	g.Step(frame())
	g.Step(frame())
	if g.State().LevelID != "classic-01" {
		t.Fatalf("advanced too early to %s", g.State().LevelID)
	}
	g.Step(frame())
	if g.State().LevelID != "classic-02" {
		t.Errorf("LevelID = %s, expected classic-02 after the delay", g.State().LevelID)
	}
}

func TestDoneAfterLastLevel(t *testing.T) {
	env := testEnv(t)
	last, _ := env.Pack.At(env.Pack.Len() - 1)
	sol, ok := last.Solution()
	if !ok {
		t.Fatalf("last level %s has no stored solution", last.ID)
	}

	g := newGame(t, env, last.ID)
	play(t, g, sol)
	g.Step(frame(core.ActionConfirm))

	if !g.State().Done {
		t.Error("State.Done should be true after the last level")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "All levels complete!") {
		t.Error("done screen not rendered")
	}
}

func TestUnknownStartLevelFallsBack(t *testing.T) {
	g := newGame(t, testEnv(t), "nope")
	if g.State().LevelID != "classic-01" {
		t.Errorf("LevelID = %s, expected classic-01", g.State().LevelID)
	}
}

func TestRenderBoard(t *testing.T) {
	g := newGame(t, testEnv(t), "classic-01")
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "##@ $ . ##") {
		t.Errorf("board row not found in:\n%s", out)
	}
	if !strings.Contains(out, "First Steps  (1/6)") {
		t.Errorf("HUD title not found in:\n%s", out)
	}
	if !strings.Contains(out, "Moves: 0  Pushes: 0  Goals: 0/1") {
		t.Errorf("HUD stats not found in:\n%s", out)
	}

	g.Step(frame(core.ActionUp))
	g.Render(screen)
	if !strings.Contains(screen.String(), "blocked") {
		t.Error("blocked move should be shown in the HUD")
	}

	g.Step(frame(core.ActionRight))
	g.Render(screen)
	if !strings.Contains(screen.String(), "Solved in 1 moves, 1 pushes") {
		t.Errorf("solved banner not found in:\n%s", screen.String())
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(t, testEnv(t), "classic-04")
	g.Resize(40, 6)
	screen := core.NewScreen(40, 6)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too-small notice, got:\n%s", screen.String())
	}
}

func TestGlyphsByName(t *testing.T) {
	if gl, ok := GlyphsByName("ASCII"); !ok || gl.Name != "ascii" {
		t.Errorf("GlyphsByName(ASCII) = %s, %v", gl.Name, ok)
	}
	if gl, ok := GlyphsByName("wingdings"); ok || gl.Name != "unicode" {
		t.Errorf("GlyphsByName(wingdings) = %s, %v, expected unicode fallback", gl.Name, ok)
	}
}

func TestDemoPlaysWithoutCompletions(t *testing.T) {
	env := testEnv(t)
	d := NewDemo(env)
	d.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 6, LevelID: "classic-01"})

	if d.ID() != "demo" {
		t.Errorf("ID() = %q, expected demo", d.ID())
	}

	res := d.Step(frame())
	if !res.State.Solved {
		t.Fatalf("first demo step should solve classic-01, got %+v", res.State)
	}
	if res.Completed != nil {
		t.Error("demo should never report completions")
	}

	for i := 0; i < autoAdvanceSeconds*6; i++ {
		d.Step(frame())
	}
	if d.State().LevelID != "classic-02" {
		t.Errorf("LevelID = %s, expected classic-02", d.State().LevelID)
	}

	d.Step(frame(core.ActionConfirm))
	if d.State().LevelID != "classic-03" {
		t.Errorf("Confirm should skip ahead, got %s", d.State().LevelID)
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"sokoban", "demo"} {
		g, err := registry.Create(id, testEnv(t))
		if err != nil {
			t.Fatalf("Create(%q) error: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}
}
