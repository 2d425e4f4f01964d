package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	_ "github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	logger := log.New(io.Discard)

	lvls, err := levels.Builtin(logger).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	store, err := storage.Open(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return Options{
		Env: registry.Env{
			Pack:   levels.NewPack(lvls),
			Glyphs: "ascii",
			Logger: logger,
		},
		Store:  store,
		Player: "alice",
		Theme:  DefaultTheme(),
		Mode:   "sokoban",
		Config: core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 30},
	}
}

func send(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	var model tea.Model = m
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	sm, ok := model.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", model)
	}
	return sm
}

func TestSessionPlayAndRecord(t *testing.T) {
	opts := testOptions(t)
	m := NewSessionModel(opts)

	if !strings.Contains(m.View(), "S O K O B A N") {
		t.Fatalf("session should start on the menu:\n%s", m.View())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if !strings.Contains(m.View(), "First Steps") {
		t.Errorf("game view should show the first level:\n%s", m.View())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, TickMsg{})
	if !m.gameModel.State().Solved {
		t.Fatal("one push right should solve First Steps")
	}

	done, err := opts.Store.CompletedLevels("alice")
	if err != nil {
		t.Fatalf("CompletedLevels: %v", err)
	}
	if !done["classic-01"] {
		t.Errorf("completion not recorded: %v", done)
	}
	best, err := opts.Store.Best("alice", "classic-01")
	if err != nil || best == nil {
		t.Fatalf("Best = %v, %v", best, err)
	}
	if best.Moves != 1 || best.Solution != "R" {
		t.Errorf("best = %+v, want 1 move solution R", best)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if m.menu.Cursor() != 0 {
		t.Errorf("menu cursor = %d, want the level just played", m.menu.Cursor())
	}
	if !strings.Contains(m.View(), "(1/6 solved)") {
		t.Errorf("menu should count the solve:\n%s", m.View())
	}
}

func TestSessionProgressBoard(t *testing.T) {
	opts := testOptions(t)
	if _, err := opts.Store.SaveCompletion(storage.Completion{
		LevelID: "classic-01", Player: "bob", Moves: 3, Pushes: 1, Solution: "lRR",
	}); err != nil {
		t.Fatalf("SaveCompletion: %v", err)
	}

	m := NewSessionModel(opts)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenProgress {
		t.Fatalf("screen = %v, want progress", m.screen)
	}

	runs := m.progress.Runs()
	if len(runs) != 1 || runs[0].Player != "bob" {
		t.Errorf("runs = %+v, want bob's run", runs)
	}
	view := m.View()
	if !strings.Contains(view, "PROGRESS - First Steps") {
		t.Errorf("progress view missing title:\n%s", view)
	}
	if !strings.Contains(view, "1 solves by 1 players") {
		t.Errorf("progress view missing stats:\n%s", view)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if len(m.progress.Runs()) != 0 {
		t.Errorf("second level should have no runs, got %+v", m.progress.Runs())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}

	m = send(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q on the menu should end the session")
	}
}

func TestProgressClearOwnRuns(t *testing.T) {
	opts := testOptions(t)
	for _, player := range []string{"alice", "bob"} {
		if _, err := opts.Store.SaveCompletion(storage.Completion{
			LevelID: "classic-01", Player: player, Moves: 1, Pushes: 1, Solution: "R",
		}); err != nil {
			t.Fatalf("SaveCompletion: %v", err)
		}
	}

	m := NewProgressModel(opts, "classic-01")
	model, _ := m.Update(runeKey("x"))
	m = model.(ProgressModel)

	runs := m.Runs()
	if len(runs) != 1 || runs[0].Player != "bob" {
		t.Errorf("runs after clear = %+v, want only bob", runs)
	}
}

func TestMenuStartsOnFirstUnsolved(t *testing.T) {
	opts := testOptions(t)
	for _, id := range []string{"classic-01", "classic-02"} {
		if _, err := opts.Store.SaveCompletion(storage.Completion{LevelID: id, Player: "alice", Moves: 5}); err != nil {
			t.Fatalf("SaveCompletion: %v", err)
		}
	}

	m := NewMenuModel(opts)
	if m.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor())
	}
	if !strings.Contains(m.View(), "best 5") {
		t.Errorf("menu should show best moves:\n%s", m.View())
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(MenuModel)
	if sel := m.Selected(); sel == nil || sel.LevelID != "classic-03" {
		t.Errorf("Selected = %+v, want classic-03", sel)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "de")

	if got, want := RenderScreen(s, DefaultTheme()), s.String(); got != want {
		t.Errorf("RenderScreen = %q, want %q", got, want)
	}

	s.DrawTextColor(3, 0, "##", core.ColorGray)
	if got := RenderScreen(s, DefaultTheme()); !strings.Contains(got, "##") {
		t.Errorf("colored run missing from %q", got)
	}
}

func TestThemes(t *testing.T) {
	for _, name := range []string{"default", "neon", "pastel", "mono"} {
		theme, ok := ThemeByName(name)
		if !ok || theme.Name != name {
			t.Errorf("ThemeByName(%q) = %q, %v", name, theme.Name, ok)
		}
	}
	if theme, ok := ThemeByName("sepia"); ok || theme.Name != "default" {
		t.Errorf("unknown theme = %q, %v, want default fallback", theme.Name, ok)
	}

	base := DefaultTheme()
	custom := base.WithOverrides(map[string]string{"red": "#ff0000", "nope": "1"})
	if got := custom.Style(core.ColorRed).GetForeground(); got != lipgloss.Color("#ff0000") {
		t.Errorf("red override = %v", got)
	}
	if got := base.Style(core.ColorRed).GetForeground(); got == lipgloss.Color("#ff0000") {
		t.Error("WithOverrides must not modify the receiver")
	}
}
