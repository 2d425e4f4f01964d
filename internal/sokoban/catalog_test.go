package sokoban_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

func TestNewCatalogClassify(t *testing.T) {
	cat, err := sokoban.NewCatalog([]sokoban.TileDef{
		{ID: 1},
		{ID: 2, Type: "solid"},
		{ID: 3, Type: "spawn"},
		{ID: 4, Type: "crate", Properties: map[string]any{"style": 2}},
		{ID: 5, Type: "goal", Properties: map[string]any{"accepts": 2}},
		{ID: 6, Type: "hole"},
		{ID: 7, Type: "Crate"},
		{ID: 8, Type: "goal", Animation: []int{8, 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, cat.Len())

	tests := []struct {
		id     int
		kind   sokoban.TileKind
		style  sokoban.StyleID
		accept sokoban.StyleID
	}{
		{1, sokoban.TileFloor, 0, 0},
		{2, sokoban.TileSolid, 0, 0},
		{3, sokoban.TileSpawn, 0, 0},
		{4, sokoban.TileCrate, 2, 0},
		{5, sokoban.TileGoal, 0, 2},
		{6, sokoban.TileHole, 0, 0},
		{7, sokoban.TileCrate, sokoban.AnyStyle, 0},
		{8, sokoban.TileGoal, 0, sokoban.AnyStyle},
	}

	for _, tt := range tests {
		kind, ok := cat.Classify(tt.id)
		require.True(t, ok, "tile %d", tt.id)
		assert.Equal(t, tt.kind, kind, "tile %d", tt.id)
		assert.Equal(t, tt.style, cat.CrateStyle(tt.id), "tile %d style", tt.id)
		assert.Equal(t, tt.accept, cat.GoalAccept(tt.id), "tile %d accepts", tt.id)
	}

	_, ok := cat.Classify(42)
	assert.False(t, ok)
}

func TestNewCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		defs []sokoban.TileDef
		err  error
	}{
		{
			name: "zero id",
			defs: []sokoban.TileDef{{ID: 0}},
			err:  sokoban.ErrMalformedLevel,
		},
		{
			name: "duplicate id",
			defs: []sokoban.TileDef{{ID: 1}, {ID: 1, Type: "solid"}},
			err:  sokoban.ErrMalformedLevel,
		},
		{
			name: "unknown type",
			defs: []sokoban.TileDef{{ID: 1, Type: "lava"}},
			err:  sokoban.ErrMalformedLevel,
		},
		{
			name: "missing animation frame",
			defs: []sokoban.TileDef{{ID: 1, Type: "goal", Animation: []int{1, 9}}},
			err:  sokoban.ErrMalformedLevel,
		},
		{
			name: "style out of range",
			defs: []sokoban.TileDef{{ID: 1, Type: "crate", Properties: map[string]any{"style": 6}}},
			err:  sokoban.ErrInvalidStyle,
		},
		{
			name: "negative accepts",
			defs: []sokoban.TileDef{{ID: 1, Type: "goal", Properties: map[string]any{"accepts": -1}}},
			err:  sokoban.ErrInvalidStyle,
		},
		{
			name: "style type mismatch",
			defs: []sokoban.TileDef{{ID: 1, Type: "crate", Properties: map[string]any{"style": "red"}}},
			err:  sokoban.ErrInvalidStyle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sokoban.NewCatalog(tt.defs)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestStyleAccepts(t *testing.T) {
	assert.True(t, sokoban.StyleID(1).Accepts(1))
	assert.False(t, sokoban.StyleID(1).Accepts(2))
	assert.True(t, sokoban.AnyStyle.Accepts(3))
	assert.True(t, sokoban.StyleID(4).Accepts(sokoban.AnyStyle))
}
