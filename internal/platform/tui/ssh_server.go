package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

// shutdownTimeout bounds how long Shutdown waits for open sessions.
const shutdownTimeout = 10 * time.Second

// SSHServer serves the level select and play screens over SSH with Wish.
// All sessions share one level pack and one progress store; each SSH user
// name gets its own progress.
type SSHServer struct {
	config config.ServerConfig
	opts   Options
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a server. opts supplies the shared pack, store,
// theme and mode; its Player and screen size are replaced per session.
func NewSSHServer(cfg config.ServerConfig, opts Options) (*SSHServer, error) {
	srv := &SSHServer{
		config: cfg,
		opts:   opts,
		logger: opts.logger().WithPrefix("ssh"),
	}

	hostKeyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	// Ensure host key directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	sshOpts := []ssh.Option{
		wish.WithAddress(cfg.Address()),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		sshOpts = append(sshOpts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}
	if cfg.MaxTimeout > 0 {
		sshOpts = append(sshOpts, wish.WithMaxTimeout(cfg.MaxTimeout))
	}

	server, err := wish.NewServer(sshOpts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKeyPath expands ~ and falls back to ~/.sokoban/host_ed25519.
func resolveHostKeyPath(p string) (string, error) {
	if p == "" {
		return filepath.Join(config.UserDir(), "host_ed25519"), nil
	}
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		return filepath.Join(home, p[2:]), nil
	}
	return p, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	opts := s.opts
	opts.Player = sshSession.User()
	opts.Config.ScreenW = pty.Window.Width
	opts.Config.ScreenH = pty.Window.Height
	opts.Config.LevelID = ""

	return NewSessionModel(opts), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.Addr())

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		return fmt.Errorf("ssh server: %w", err)
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. The store belongs to the caller.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address()
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenProgress
)

// SessionModel manages the full flow: menu -> game -> menu, with the
// progress board reachable from the menu. It is the top-level model for
// SSH sessions and the local menu command.
type SessionModel struct {
	opts      Options
	screen    sessionScreen
	menu      MenuModel
	gameModel *GameModel
	progress  ProgressModel
	lastLevel string
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options) SessionModel {
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Config.ScreenW = wsm.Width
		m.opts.Config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenProgress:
		return m.updateProgress(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. The menu ends its own
// program on select, so its command is dropped on a screen change.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsProgress() {
		m.screen = screenProgress
		m.progress = NewProgressModel(m.opts, m.cursorLevel())
		return m, m.progress.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		return m.startGame(selected.LevelID)
	}

	return m, cmd
}

// startGame creates a fresh game at levelID.
func (m SessionModel) startGame(levelID string) (tea.Model, tea.Cmd) {
	env := m.opts.Env
	env.Logger = m.opts.logger().With("player", m.opts.player())

	game, err := registry.Create(m.opts.Mode, env)
	if err != nil {
		m.opts.logger().Error("could not start game", "mode", m.opts.Mode, "err", err)
		m.menu = NewMenuModel(m.opts)
		return m, nil
	}

	opts := m.opts
	opts.Config.LevelID = levelID
	gameModel := NewGameModel(game, opts, false)
	m.gameModel = &gameModel
	m.lastLevel = levelID
	m.screen = screenGame

	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		if id := m.gameModel.State().LevelID; id != "" {
			m.lastLevel = id
		}
		m.gameModel = nil
		return m.showMenu()
	}

	return m, cmd
}

// updateProgress handles updates on the progress board.
func (m SessionModel) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.progress.Update(msg)
	if progressModel, ok := newModel.(ProgressModel); ok {
		m.progress = progressModel
	}

	if m.progress.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.progress.IsGoingBack() {
		return m.showMenu()
	}

	return m, cmd
}

// showMenu rebuilds the menu so solved marks are current.
func (m SessionModel) showMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.opts)
	m.menu.focus(m.lastLevel)
	return m, m.menu.Init()
}

// cursorLevel returns the level highlighted in the menu.
func (m SessionModel) cursorLevel() string {
	lvls := m.opts.Env.Pack.Levels()
	if i := m.menu.Cursor(); i >= 0 && i < len(lvls) {
		return lvls[i].ID
	}
	return ""
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenProgress:
		return m.progress.View()
	default:
		return m.menu.View()
	}
}

// IsQuitting reports whether the session has ended.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// RunSession runs the menu, game and progress flow in the local terminal.
func RunSession(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
