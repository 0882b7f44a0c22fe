package mvtgeojson

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/mvt-to-geojson/config"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/converter"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/internal/tiletest"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/projection"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/tilesource"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/vectortile"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/wire"
)

// memSource serves tiles from memory keyed by "z/x/y".
type memSource struct {
	tiles map[string][]byte
	calls int
}

func (m *memSource) Fetch(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	m.calls++
	key := fmt.Sprintf("%d/%d/%d", tile.Z, tile.X, tile.Y)
	data, ok := m.tiles[key]
	if !ok {
		return nil, fmt.Errorf("%w: HTTP 404 for %s", tilesource.ErrNetwork, key)
	}
	return data, nil
}

func pointLayer(name string, x, y int32, props ...string) []byte {
	var keys []string
	var values [][]byte
	var tags []uint32
	for i := 0; i+1 < len(props); i += 2 {
		keys = append(keys, props[i])
		values = append(values, tiletest.StringValue(props[i+1]))
		tags = append(tags, uint32(len(keys)-1), uint32(len(values)-1))
	}
	return tiletest.Layer{
		Name:    name,
		Version: 2,
		Extent:  4096,
		Keys:    keys,
		Values:  values,
		Features: [][]byte{tiletest.Feature{
			Type:     uint32(vectortile.GeomPoint),
			Tags:     tags,
			Geometry: tiletest.NewGeom().MoveTo([2]int32{x, y}).Commands(),
		}.Encode()},
	}.Encode()
}

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func testSource(t *testing.T) *memSource {
	return &memSource{tiles: map[string][]byte{
		"0/0/0": tiletest.Tile(pointLayer("places", 2048, 2048, "name", "X")),
		"1/0/0": gzipped(t, tiletest.Tile(
			pointLayer("water", 4096, 4096),
			pointLayer("roads", 0, 0, "kind", "primary"),
		)),
		"2/1/1": []byte{0x1a, 0x05, 0x0a},
		"3/0/0": {},
	}}
}

func TestPipeline_Convert(t *testing.T) {
	p := NewPipeline(testSource(t), converter.Options{})

	fc, err := p.Convert(context.Background(), maptile.New(0, 0, 0))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	pt := fc.Features[0].Geometry.(orb.Point)
	assert.InDelta(t, 0, pt.Lon(), 1e-9)
	assert.InDelta(t, 0, pt.Lat(), 1e-9)
	assert.Equal(t, "X", fc.Features[0].Properties["name"])
}

func TestPipeline_ConvertGzip(t *testing.T) {
	p := NewPipeline(testSource(t), converter.Options{Layers: []string{"roads"}, LayerProperty: "layer"})

	fc, err := p.Convert(context.Background(), maptile.New(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	pt := fc.Features[0].Geometry.(orb.Point)
	assert.InDelta(t, -180, pt.Lon(), 1e-9)
	assert.InDelta(t, projection.MaxLatitude, pt.Lat(), 1e-9)
	assert.Equal(t, "roads", fc.Features[0].Properties["layer"])
}

func TestPipeline_EmptyTile(t *testing.T) {
	p := NewPipeline(testSource(t), converter.Options{})
	fc, err := p.Convert(context.Background(), maptile.New(0, 0, 3))
	require.NoError(t, err)
	assert.Empty(t, fc.Features)
}

func TestPipeline_Errors(t *testing.T) {
	src := testSource(t)
	p := NewPipeline(src, converter.Options{})
	ctx := context.Background()

	_, err := p.Convert(ctx, maptile.New(5, 5, 3))
	assert.True(t, errors.Is(err, ErrFetch))
	assert.True(t, errors.Is(err, tilesource.ErrNetwork))

	_, err = p.Convert(ctx, maptile.New(1, 1, 2))
	assert.True(t, errors.Is(err, ErrDecode))
	assert.True(t, errors.Is(err, wire.ErrMalformedTile) || errors.Is(err, wire.ErrTruncatedInput))

	calls := src.calls
	_, err = p.Convert(ctx, maptile.New(4, 0, 1))
	assert.True(t, errors.Is(err, projection.ErrInvalidTile))
	assert.Equal(t, calls, src.calls, "invalid tiles are not fetched")
}

func TestPipeline_Decode(t *testing.T) {
	p := NewPipeline(testSource(t), converter.Options{})
	tile, err := p.Decode(context.Background(), maptile.New(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"water", "roads"}, tile.LayerNames())
}

func TestNewPipelineFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Source.URLTemplate = "tiles/{z}/{x}/{y}.mvt"
	cfg.Output.Layers = []string{"water"}
	cfg.Output.IncludeID = true
	cfg.Decoder.DefaultExtent = 512

	p, err := NewPipelineFromConfig(cfg)
	require.NoError(t, err)
	assert.IsType(t, &tilesource.FileSource{}, p.source)
	assert.Equal(t, []string{"water"}, p.Options().Layers)
	assert.True(t, p.Options().IncludeID)
	assert.Equal(t, uint32(512), p.Options().Decode.DefaultExtent)

	cfg.Source.URLTemplate = ""
	_, err = NewPipelineFromConfig(cfg)
	assert.Error(t, err)
}

func TestPipeline_DecompressLimit(t *testing.T) {
	src := &memSource{tiles: map[string][]byte{
		"0/0/0": gzipped(t, make([]byte, 256<<10)),
	}}
	p := NewPipeline(src, converter.Options{}).WithMaxBytes(16 << 10)

	_, err := p.Fetch(context.Background(), maptile.New(0, 0, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
	assert.True(t, errors.Is(err, tilesource.ErrIO))

	data, err := NewPipeline(src, converter.Options{}).Fetch(context.Background(), maptile.New(0, 0, 0))
	require.NoError(t, err)
	assert.Len(t, data, 256<<10)
}
