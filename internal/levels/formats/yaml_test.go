package formats

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

func TestParseYAMLInlineTileset(t *testing.T) {
	data := []byte(`
id: lvl01
name: Intro
author: me
tileset:
  - id: 1
  - id: 2
    type: crate
    properties:
      style: 3
layers:
  - name: ground
    data:
      - [1, 1]
      - [1, 2]
metadata:
  solution: R
`)

	lvl, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lvl.ID != "lvl01" || lvl.Name != "Intro" || lvl.Author != "me" {
		t.Errorf("unexpected header: %+v", lvl)
	}
	if lvl.Tileset != "" {
		t.Errorf("expected inline tileset, got name %q", lvl.Tileset)
	}
	if len(lvl.Tiles) != 2 {
		t.Fatalf("expected 2 tiles, got %d", len(lvl.Tiles))
	}
	if lvl.Tiles[1].Type != "crate" || lvl.Tiles[1].Properties["style"] != 3 {
		t.Errorf("unexpected tile: %+v", lvl.Tiles[1])
	}
	if lvl.Map.Width != 2 || lvl.Map.Height != 2 || len(lvl.Map.Layers) != 1 {
		t.Errorf("unexpected map: %+v", lvl.Map)
	}
	if lvl.Metadata["solution"] != "R" {
		t.Errorf("expected solution metadata, got %v", lvl.Metadata)
	}
}

func TestParseYAMLNamedTileset(t *testing.T) {
	lvl, err := ParseYAML([]byte("id: a\ntileset: default\nlayers: []\n"))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lvl.Tileset != "default" {
		t.Errorf("expected tileset 'default', got %q", lvl.Tileset)
	}
	if lvl.Name != "a" {
		t.Errorf("expected name to default to id, got %q", lvl.Name)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "id: [oops"},
		{"no id", "tileset: default\n"},
		{"no tileset", "id: a\n"},
		{"tileset map", "id: a\ntileset: {name: x}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			if !errors.Is(err, sokoban.ErrMalformedLevel) {
				t.Errorf("expected ErrMalformedLevel, got %v", err)
			}
		})
	}
}

func TestParseTileset(t *testing.T) {
	ts, err := ParseTileset([]byte("name: mini\ntiles:\n  - {id: 1, type: solid, animation: [1]}\n"))
	if err != nil {
		t.Fatalf("ParseTileset failed: %v", err)
	}
	if ts.Name != "mini" || len(ts.Tiles) != 1 || ts.Tiles[0].Type != "solid" {
		t.Errorf("unexpected tileset: %+v", ts)
	}

	if _, err := ParseTileset([]byte("tiles: []\n")); err == nil {
		t.Error("expected error for unnamed tileset")
	}
}
