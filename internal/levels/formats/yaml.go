// Package formats provides level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// Level is a parsed level file, not yet validated against its tileset.
type Level struct {
	ID       string
	Name     string
	Author   string
	Tileset  string            // name of a shared tileset, empty when Tiles is inline
	Tiles    []sokoban.TileDef // inline tileset
	Map      sokoban.TileMap
	Metadata map[string]string
}

// Tileset is a shared, named list of tile definitions.
type Tileset struct {
	Name  string
	Tiles []sokoban.TileDef
}

// YAMLTile represents one tile definition.
type YAMLTile struct {
	ID         int            `yaml:"id"`
	Type       string         `yaml:"type,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
	Animation  []int          `yaml:"animation,omitempty"`
}

// YAMLLayer is a named grid of tile ids.
type YAMLLayer struct {
	Name string  `yaml:"name"`
	Data [][]int `yaml:"data"`
}

// YAMLTilesetRef is either a tileset name or an inline tile list.
type YAMLTilesetRef struct {
	Name  string
	Tiles []YAMLTile
}

// UnmarshalYAML accepts a scalar name or a sequence of tiles.
func (r *YAMLTilesetRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&r.Name)
	case yaml.SequenceNode:
		return node.Decode(&r.Tiles)
	default:
		return fmt.Errorf("line %d: tileset must be a name or a list of tiles", node.Line)
	}
}

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Author   string            `yaml:"author,omitempty"`
	Tileset  YAMLTilesetRef    `yaml:"tileset"`
	Layers   []YAMLLayer       `yaml:"layers"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLTileset represents a shared tileset file.
type YAMLTileset struct {
	Name  string     `yaml:"name"`
	Tiles []YAMLTile `yaml:"tiles"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("%w: yaml unmarshal: %v", sokoban.ErrMalformedLevel, err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("%w: level has no id", sokoban.ErrMalformedLevel)
	}
	if yl.Tileset.Name == "" && len(yl.Tileset.Tiles) == 0 {
		return Level{}, fmt.Errorf("%w: level %s has no tileset", sokoban.ErrMalformedLevel, yl.ID)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Author:   yl.Author,
		Tileset:  yl.Tileset.Name,
		Tiles:    tileDefs(yl.Tileset.Tiles),
		Metadata: yl.Metadata,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}

	for _, l := range yl.Layers {
		level.Map.Layers = append(level.Map.Layers, sokoban.Layer{Name: l.Name, Tiles: l.Data})
	}
	// The first layer defines the size; the core validates the rest.
	if len(yl.Layers) > 0 {
		level.Map.Height = len(yl.Layers[0].Data)
		if level.Map.Height > 0 {
			level.Map.Width = len(yl.Layers[0].Data[0])
		}
	}

	return level, nil
}

// ParseTileset parses a shared tileset file.
func ParseTileset(data []byte) (Tileset, error) {
	var yt YAMLTileset
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return Tileset{}, fmt.Errorf("%w: yaml unmarshal: %v", sokoban.ErrMalformedLevel, err)
	}
	if yt.Name == "" {
		return Tileset{}, fmt.Errorf("%w: tileset has no name", sokoban.ErrMalformedLevel)
	}
	return Tileset{Name: yt.Name, Tiles: tileDefs(yt.Tiles)}, nil
}

func tileDefs(tiles []YAMLTile) []sokoban.TileDef {
	if len(tiles) == 0 {
		return nil
	}
	defs := make([]sokoban.TileDef, len(tiles))
	for i, t := range tiles {
		defs[i] = sokoban.TileDef{
			ID:         t.ID,
			Type:       t.Type,
			Properties: t.Properties,
			Animation:  t.Animation,
		}
	}
	return defs
}

// Supported file extensions.
const (
	ExtTileset = ".tileset.yaml"
	ExtXSB     = ".xsb"
)

// FormatExtensions returns supported level file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ExtXSB, ".sok"}
}
