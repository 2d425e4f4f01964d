package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// Options carries the dependencies shared by every screen.
type Options struct {
	Env    registry.Env
	Store  *storage.Store // nil disables progress tracking
	Player string         // progress owner; empty means storage.LocalPlayer
	Theme  Theme
	Mode   string // registry id of the play mode
	Config core.RuntimeConfig
}

func (o Options) player() string {
	if o.Player == "" {
		return storage.LocalPlayer
	}
	return o.Player
}

func (o Options) logger() *log.Logger {
	if o.Env.Logger == nil {
		return log.Default()
	}
	return o.Env.Logger
}

// GameModel is the Bubble Tea model for playing one mode.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // quit the program on back instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. A standalone model ends the
// program when the player backs out.
func NewGameModel(game registry.Game, opts Options, standalone bool) GameModel {
	return GameModel{
		game:       game,
		screen:     core.NewScreen(opts.Config.ScreenW, opts.Config.ScreenH),
		opts:       opts,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		standalone: standalone,
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.opts.Config)
	return tickCmd(m.opts.Config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Config.ScreenW = msg.Width
		m.opts.Config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if action, _ := m.keyMapper.MapKey(msg); action == core.ActionBack {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		// The session swaps this model out; stop ticking.
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if c := result.Completed; c != nil {
		m.saveCompletion(*c)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.opts.Config.TickRate)
}

// saveCompletion records a solved level. Failures are logged and play
// continues.
func (m GameModel) saveCompletion(c core.Completion) {
	logger := m.opts.logger()
	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveCompletion(storage.Completion{
		LevelID:  c.LevelID,
		Player:   m.opts.player(),
		Moves:    c.Moves,
		Pushes:   c.Pushes,
		Solution: c.Solution,
	})
	if err != nil {
		logger.Error("could not save completion", "level", c.LevelID, "err", err)
		return
	}
	logger.Debug("completion saved", "level", c.LevelID, "player", m.opts.player(), "moves", c.Moves)
}

// saveScreenshot saves the current screen to ~/.sokoban/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.UserDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.gameState.LevelID, timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.opts.Theme)
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one mode in the local terminal until the player quits or
// backs out.
func Run(game registry.Game, opts Options) error {
	model := NewGameModel(game, opts, true)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
