package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/sokoban.yaml
var defaultSokobanYAML []byte

// DefaultSokobanConfig returns the hard-coded default configuration.
// defaults/sokoban.yaml mirrors it.
func DefaultSokobanConfig() SokobanConfig {
	return SokobanConfig{
		Levels: LevelsConfig{
			Builtin: true,
		},
		Gameplay: GameplayConfig{
			UndoLimit:   0,
			AutoAdvance: false,
			TickRate:    30,
			Mode:        "sokoban",
		},
		Theme: ThemeConfig{
			Name:   "default",
			Glyphs: "unicode",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        2222,
			HostKeyPath: ".ssh/sokoban_ed25519",
			IdleTimeout: 10 * time.Minute,
			MaxTimeout:  2 * time.Hour,
		},
		Source: "default",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSokobanYAML
}
