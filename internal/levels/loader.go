// Package levels loads puzzle levels from YAML tile maps and XSB text
// files. This package depends on sokoban but sokoban does not depend on
// levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/levels/formats"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

//go:embed builtin
var builtinFS embed.FS

// ErrNotFound is returned when a level ID is unknown.
var ErrNotFound = errors.New("level not found")

// Level represents a loaded and validated level.
type Level struct {
	ID       string
	Name     string
	Author   string
	Source   string // file path inside the loader's file system
	Metadata map[string]string
	Puzzle   *sokoban.Level
}

// Solution returns the stored LURD solution, if the level has one.
func (l Level) Solution() (string, bool) {
	s, ok := l.Metadata["solution"]
	return s, ok && s != ""
}

// Loader loads levels from a file system.
type Loader struct {
	fsys   fs.FS
	logger *log.Logger
}

// NewLoader creates a loader over fsys. A nil logger uses the default one.
func NewLoader(fsys fs.FS, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{fsys: fsys, logger: logger}
}

// NewDirLoader creates a loader for a directory on disk.
func NewDirLoader(root string, logger *log.Logger) *Loader {
	return NewLoader(os.DirFS(root), logger)
}

// Builtin returns a loader for the level pack compiled into the binary.
func Builtin(logger *log.Logger) *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// embed paths are fixed at compile time
		panic(err)
	}
	return NewLoader(sub, logger)
}

// LoadAll recursively scans and loads all level files. Invalid files are
// skipped with a warning. Returns levels sorted by ID for deterministic
// ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var (
		tilesetPaths []string
		levelPaths   []string
	)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := strings.ToLower(d.Name())
		switch {
		case strings.HasSuffix(name, formats.ExtTileset):
			tilesetPaths = append(tilesetPaths, p)
		case isSupportedExtension(path.Ext(name)):
			levelPaths = append(levelPaths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking level directory: %w", err)
	}

	tilesets := make(map[string]*sokoban.Catalog)
	for _, p := range tilesetPaths {
		name, cat, err := l.loadTileset(p)
		if err != nil {
			l.logger.Warn("skipping tileset", "path", p, "err", err)
			continue
		}
		tilesets[name] = cat
	}

	var levels []Level
	seen := make(map[string]string)
	for _, p := range levelPaths {
		loaded, err := l.loadFile(p, tilesets)
		if err != nil {
			l.logger.Warn("skipping level file", "path", p, "err", err)
			continue
		}
		for _, lvl := range loaded {
			if prev, dup := seen[lvl.ID]; dup {
				l.logger.Warn("duplicate level id", "id", lvl.ID, "path", p, "first", prev)
				continue
			}
			seen[lvl.ID] = p
			levels = append(levels, lvl)
		}
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads every level of a single file. Shared tilesets it refers
// to are loaded from the same file system.
func (l *Loader) LoadFile(p string) ([]Level, error) {
	tilesets := make(map[string]*sokoban.Catalog)
	matches, err := fs.Glob(l.fsys, path.Join(path.Dir(p), "*"+formats.ExtTileset))
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	for _, tp := range matches {
		name, cat, err := l.loadTileset(tp)
		if err != nil {
			l.logger.Warn("skipping tileset", "path", tp, "err", err)
			continue
		}
		tilesets[name] = cat
	}
	return l.loadFile(p, tilesets)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: %w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func (l *Loader) loadTileset(p string) (string, *sokoban.Catalog, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return "", nil, fmt.Errorf("reading tileset %s: %w", p, err)
	}
	ts, err := formats.ParseTileset(data)
	if err != nil {
		return "", nil, fmt.Errorf("parsing tileset %s: %w", p, err)
	}
	cat, err := sokoban.NewCatalog(ts.Tiles)
	if err != nil {
		return "", nil, fmt.Errorf("tileset %s: %w", p, err)
	}
	return ts.Name, cat, nil
}

func (l *Loader) loadFile(p string, tilesets map[string]*sokoban.Catalog) ([]Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, p)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", p, err)
	}

	out := make([]Level, 0, len(parsed))
	for _, pl := range parsed {
		cat, err := catalogFor(pl, tilesets)
		if err != nil {
			return nil, fmt.Errorf("level %s in %s: %w", pl.ID, p, err)
		}
		puzzle, err := sokoban.Load(pl.Map, cat)
		if err != nil {
			return nil, fmt.Errorf("level %s in %s: %w", pl.ID, p, err)
		}
		out = append(out, Level{
			ID:       pl.ID,
			Name:     pl.Name,
			Author:   pl.Author,
			Source:   p,
			Metadata: pl.Metadata,
			Puzzle:   puzzle,
		})
	}
	return out, nil
}

func catalogFor(pl formats.Level, tilesets map[string]*sokoban.Catalog) (*sokoban.Catalog, error) {
	if pl.Tileset != "" {
		cat, ok := tilesets[pl.Tileset]
		if !ok {
			return nil, fmt.Errorf("%w: unknown tileset %q", sokoban.ErrMalformedLevel, pl.Tileset)
		}
		return cat, nil
	}
	return sokoban.NewCatalog(pl.Tiles)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, p string) ([]formats.Level, error) {
	ext := strings.ToLower(path.Ext(p))
	switch ext {
	case ".yaml", ".yml":
		lvl, err := formats.ParseYAML(data)
		if err != nil {
			return nil, err
		}
		return []formats.Level{lvl}, nil
	case formats.ExtXSB, ".sok":
		prefix := strings.TrimSuffix(path.Base(p), path.Ext(p))
		return formats.ParseXSB(data, prefix)
	default:
		return nil, fmt.Errorf("%w: unsupported extension: %s", sokoban.ErrMalformedLevel, ext)
	}
}
