package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// app holds what every command needs: config, logger, levels and the
// progress store.
type app struct {
	cfg     config.SokobanConfig
	logger  *log.Logger
	pack    *levels.Pack
	store   *storage.Store // nil when the database could not be opened
	logFile *os.File
}

// appOptions selects optional setup steps.
type appOptions struct {
	// logToFile sends logs to ~/.sokoban/sokoban.log so they do not draw
	// over a full-screen UI.
	logToFile bool
	// requireStore fails instead of continuing without a progress store.
	requireStore bool
}

// newApp loads config, applies flags, loads levels and opens the store.
func newApp(o appOptions) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	config.Overrides{
		DBPath:    flagDBPath,
		LevelDirs: flagLevelDirs,
		LogLevel:  flagLogLevel,
		Glyphs:    flagGlyphs,
	}.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfg.Source, err)
	}

	a := &app{cfg: cfg}
	a.logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sokoban",
		Level:           cfg.LogLevel(),
	})
	if o.logToFile {
		a.redirectLog()
	}
	a.logger.Debug("config loaded", "source", cfg.Source)

	a.pack, err = levels.LoadPack(levels.Sources{
		Builtin: cfg.Levels.Builtin,
		Dirs:    cfg.Levels.Dirs,
	}, a.logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.logger.Debug("levels loaded", "count", a.pack.Len())

	a.store, err = storage.Open(cfg.Storage.DBPath)
	if err != nil {
		if o.requireStore {
			a.Close()
			return nil, fmt.Errorf("opening progress database: %w", err)
		}
		// Continue without storage - the game still works
		a.logger.Warn("could not open progress database", "path", cfg.Storage.DBPath, "err", err)
		a.store = nil
	}

	return a, nil
}

// redirectLog points the logger at the log file, or silences it when the
// file cannot be created.
func (a *app) redirectLog() {
	var out io.Writer = io.Discard
	if dir := config.UserDir(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "sokoban.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err == nil {
				a.logFile = f
				out = f
			}
		}
	}
	a.logger.SetOutput(out)
}

// Close releases the store and log file.
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("closing progress database", "err", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// env returns the game environment built from config.
func (a *app) env() registry.Env {
	return registry.Env{
		Pack:        a.pack,
		UndoLimit:   a.cfg.Gameplay.UndoLimit,
		AutoAdvance: a.cfg.Gameplay.AutoAdvance,
		Glyphs:      a.cfg.Theme.Glyphs,
		Logger:      a.logger,
	}
}

// theme returns the configured theme with color overrides applied.
func (a *app) theme() tui.Theme {
	theme, ok := tui.ThemeByName(a.cfg.Theme.Name)
	if !ok {
		a.logger.Warn("unknown theme, using default", "theme", a.cfg.Theme.Name)
	}
	return theme.WithOverrides(a.cfg.Theme.Colors)
}

// uiOptions returns UI options sized to the local terminal.
func (a *app) uiOptions(mode string) tui.Options {
	if mode == "" {
		mode = a.cfg.Gameplay.Mode
	}
	return tui.Options{
		Env:    a.env(),
		Store:  a.store,
		Player: storage.LocalPlayer,
		Theme:  a.theme(),
		Mode:   mode,
		Config: a.runtimeConfig(),
	}
}

// runtimeConfig reads the terminal size, falling back to 80x24.
func (a *app) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = a.cfg.Gameplay.TickRate
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}
