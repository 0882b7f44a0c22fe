package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/mvt-to-geojson/internal/tiletest"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/vectortile"
)

func TestBuildJSON(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Point{12.5, -3.25})
	f.Properties["name"] = "X"
	fc.Append(f)

	compact, err := BuildJSON(fc, false)
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")
	assert.JSONEq(t, `{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [12.5, -3.25]},
			"properties": {"name": "X"}
		}]
	}`, string(compact))

	pretty, err := BuildJSON(fc, true)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(pretty), "\n  \"features\""), "expected two-space indentation:\n%s", pretty)
	assert.JSONEq(t, string(compact), string(pretty))
}

func TestBuildJSON_Nil(t *testing.T) {
	b, err := BuildJSON(nil, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(b))
}

func TestBuildDecodedJSON(t *testing.T) {
	buf := tiletest.Tile(
		tiletest.Layer{
			Name: "roads", Version: 2, Extent: 4096,
			Keys:   []string{"class"},
			Values: [][]byte{tiletest.StringValue("primary")},
			Features: [][]byte{
				tiletest.Feature{
					ID: 5, HasID: true, Type: 2, Tags: []uint32{0, 0},
					Geometry: tiletest.NewGeom().MoveTo([2]int32{1, 2}).LineTo([2]int32{3, 4}).Commands(),
				}.Encode(),
				tiletest.Feature{Type: 0}.Encode(),
			},
		}.Encode(),
		tiletest.Layer{Name: "empty", Version: 1}.Encode(),
	)
	tile, err := vectortile.Decode(buf, vectortile.DefaultOptions())
	require.NoError(t, err)

	b, err := BuildDecodedJSON(tile, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"layers": [
			{
				"name": "roads", "version": 2, "extent": 4096,
				"features": [
					{
						"id": 5, "type": "LINESTRING",
						"geometry": {"type": "LineString", "coordinates": [[1, 2], [3, 4]]},
						"properties": {"class": "primary"}
					},
					{"type": "UNKNOWN", "geometry": null, "properties": {}}
				]
			},
			{"name": "empty", "version": 1, "extent": 4096, "features": []}
		]
	}`, string(b))

	var probe map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &probe))
	assert.Contains(t, probe, "layers")
}

func TestBuildDecodedJSON_GeometryError(t *testing.T) {
	buf := tiletest.Tile(tiletest.Layer{
		Name: "bad", Version: 2, Extent: 4096,
		Features: [][]byte{tiletest.Feature{Type: 1, Geometry: []uint32{10, 2, 2}}.Encode()},
	}.Encode())
	tile, err := vectortile.Decode(buf, vectortile.DefaultOptions())
	require.NoError(t, err)

	_, err = BuildDecodedJSON(tile, true)
	assert.ErrorIs(t, err, vectortile.ErrMalformedGeometry)
}
