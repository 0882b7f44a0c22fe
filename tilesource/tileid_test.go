package tilesource

import (
	"testing"

	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTileID(t *testing.T) {
	tile, err := ParseTileID("14/8716/5686")
	require.NoError(t, err)
	assert.Equal(t, maptile.New(8716, 5686, 14), tile)

	for _, bad := range []string{"", "14/8716", "a/b/c", "14/-1/2", "14/1/2/3", "99999999999/0/0"} {
		t.Run(bad, func(t *testing.T) {
			_, err := ParseTileID(bad)
			assert.Error(t, err)
		})
	}
	assert.True(t, IsTileID("0/0/0"))
	assert.False(t, IsTileID("tiles/0.pbf"))
}

func TestTileIDFromPath(t *testing.T) {
	tests := []struct {
		path string
		want maptile.Tile
		ok   bool
	}{
		{"tiles/14/8716/5686.pbf", maptile.New(8716, 5686, 14), true},
		{"/data/3/4/2.mvt.gz", maptile.New(4, 2, 3), true},
		{"https://tiles.example.com/v1/2/1/3.pbf?key=abc", maptile.New(1, 3, 2), true},
		{"0/0/0", maptile.New(0, 0, 0), true},
		{"tile.pbf", maptile.Tile{}, false},
		{"tiles/14/abc/5686.pbf", maptile.Tile{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := TileIDFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
