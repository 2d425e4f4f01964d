package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.sokoban/config.yaml -> ./configs/sokoban.yaml -> embedded default.
// Keys missing from a file keep their default values.
func Load(customPath string) (SokobanConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SokobanConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return SokobanConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, nil
	}

	// Try user config directory, then the local configs directory.
	// Unreadable or malformed files fall through to the next candidate.
	for _, path := range []string{userConfigPath(fileName), filepath.Join("configs", "sokoban.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			cfg.Source = path
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultSokobanYAML)
	if err != nil {
		return DefaultSokobanConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Source = "embedded"
	return cfg, nil
}

// parse decodes data on top of the hard-coded defaults.
func parse(data []byte) (SokobanConfig, error) {
	cfg := DefaultSokobanConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SokobanConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}

// UserDir returns ~/.sokoban, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sokoban")
}

// DefaultDBPath returns ~/.sokoban/progress.db, or progress.db in the
// working directory if home is unavailable.
func DefaultDBPath() string {
	if dir := UserDir(); dir != "" {
		return filepath.Join(dir, "progress.db")
	}
	return "progress.db"
}

// Overrides holds command-line values that win over the file.
type Overrides struct {
	DBPath    string
	LevelDirs []string
	LogLevel  string
	Glyphs    string
}

// Apply merges non-empty overrides into cfg and resolves the database path.
func (o Overrides) Apply(cfg *SokobanConfig) {
	if o.DBPath != "" {
		cfg.Storage.DBPath = o.DBPath
	}
	if len(o.LevelDirs) > 0 {
		cfg.Levels.Dirs = append(cfg.Levels.Dirs, o.LevelDirs...)
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.Glyphs != "" {
		cfg.Theme.Glyphs = o.Glyphs
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = DefaultDBPath()
	}
}
