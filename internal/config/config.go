// Package config provides YAML-based configuration loading for the
// Sokoban platform.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// SokobanConfig contains all configuration for the game and its front ends.
type SokobanConfig struct {
	Levels   LevelsConfig   `yaml:"levels"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Theme    ThemeConfig    `yaml:"theme"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`

	// Source is the file the configuration was read from, or "embedded".
	Source string `yaml:"-"`
}

// LevelsConfig selects level sources.
type LevelsConfig struct {
	Builtin bool     `yaml:"builtin"` // include the levels compiled into the binary
	Dirs    []string `yaml:"dirs"`    // extra directories of .yaml/.xsb levels
}

// GameplayConfig tunes play.
type GameplayConfig struct {
	UndoLimit   int    `yaml:"undo_limit"` // 0 = unlimited
	AutoAdvance bool   `yaml:"auto_advance"`
	TickRate    int    `yaml:"tick_rate"` // ticks per second
	Mode        string `yaml:"mode"`      // registry id started by "play"
}

// ThemeConfig selects colors and glyphs.
type ThemeConfig struct {
	Name   string            `yaml:"name"`   // default, neon, pastel, mono
	Glyphs string            `yaml:"glyphs"` // unicode or ascii
	Colors map[string]string `yaml:"colors"` // color name -> lipgloss color override
}

// StorageConfig locates the progress database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // empty = ~/.sokoban/progress.db
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxTimeout  time.Duration `yaml:"max_timeout"`
}

// Address returns host:port.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Known theme and glyph names.
var (
	ThemeNames  = []string{"default", "neon", "pastel", "mono"}
	GlyphNames  = []string{"unicode", "ascii"}
	knownLevels = []string{"debug", "info", "warn", "error"}
)

// Validate checks values a typo could break.
func (c SokobanConfig) Validate() error {
	if c.Gameplay.UndoLimit < 0 {
		return fmt.Errorf("config: gameplay.undo_limit must be >= 0, got %d", c.Gameplay.UndoLimit)
	}
	if c.Gameplay.TickRate < 1 || c.Gameplay.TickRate > 120 {
		return fmt.Errorf("config: gameplay.tick_rate must be in 1..120, got %d", c.Gameplay.TickRate)
	}
	if !oneOf(c.Theme.Name, ThemeNames) {
		return fmt.Errorf("config: unknown theme %q (want one of %s)", c.Theme.Name, strings.Join(ThemeNames, ", "))
	}
	if !oneOf(c.Theme.Glyphs, GlyphNames) {
		return fmt.Errorf("config: unknown glyph set %q (want one of %s)", c.Theme.Glyphs, strings.Join(GlyphNames, ", "))
	}
	for name := range c.Theme.Colors {
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("config: theme.colors: unknown color %q", name)
		}
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil || !oneOf(c.Log.Level, knownLevels) {
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port out of range: %d", c.Server.Port)
	}
	if !c.Levels.Builtin && len(c.Levels.Dirs) == 0 {
		return fmt.Errorf("config: no level sources (levels.builtin is false and levels.dirs is empty)")
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c SokobanConfig) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if strings.EqualFold(v, o) {
			return true
		}
	}
	return false
}
