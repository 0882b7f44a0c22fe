package mvtgeojson

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"

	"github.com/theoremus-urban-solutions/mvt-to-geojson/config"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/converter"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/projection"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/tilesource"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/vectortile"
)

var (
	// ErrFetch marks failures to obtain the tile bytes.
	ErrFetch = errors.New("fetch failed")

	// ErrDecode marks tiles whose payload could not be decompressed,
	// decoded or projected.
	ErrDecode = errors.New("decode failed")
)

// Pipeline fetches, decodes and converts tiles.
type Pipeline struct {
	source   tilesource.Source
	opts     converter.Options
	conv     *converter.Converter
	maxBytes int64
}

// NewPipeline creates a pipeline reading from source.
func NewPipeline(source tilesource.Source, opts converter.Options) *Pipeline {
	if opts.Decode == (vectortile.Options{}) {
		opts.Decode = vectortile.DefaultOptions()
	}
	return &Pipeline{
		source:   source,
		opts:     opts,
		conv:     converter.NewConverter(opts),
		maxBytes: tilesource.DefaultMaxDecompressed,
	}
}

// WithMaxBytes bounds the inflated size of fetched tiles. n <= 0 keeps
// tilesource.DefaultMaxDecompressed.
func (p *Pipeline) WithMaxBytes(n int64) *Pipeline {
	if n > 0 {
		p.maxBytes = n
	}
	return p
}

// NewPipelineFromConfig creates a pipeline for the configured source.
func NewPipelineFromConfig(cfg *config.AppConfig) (*Pipeline, error) {
	src, err := tilesource.New(cfg.Source.URLTemplate, SourceOptions(cfg))
	if err != nil {
		return nil, err
	}
	return NewPipeline(src, ConverterOptions(cfg)).WithMaxBytes(cfg.Source.MaxBytes), nil
}

// SourceOptions maps the source section of cfg to tilesource options.
func SourceOptions(cfg *config.AppConfig) tilesource.Options {
	return tilesource.Options{
		Timeout:   time.Duration(cfg.Source.TimeoutMS) * time.Millisecond,
		UserAgent: cfg.Source.UserAgent,
		MaxBytes:  cfg.Source.MaxBytes,
	}
}

// ConverterOptions maps the decoder and output sections of cfg to converter options.
func ConverterOptions(cfg *config.AppConfig) converter.Options {
	return converter.Options{
		Layers:        cfg.Output.Layers,
		LayerProperty: cfg.Output.LayerProperty,
		IncludeID:     cfg.Output.IncludeID,
		Decode: vectortile.Options{
			DefaultExtent:  cfg.Decoder.DefaultExtent,
			DefaultVersion: cfg.Decoder.DefaultVersion,
		},
	}
}

// Options returns the converter options the pipeline was built with.
func (p *Pipeline) Options() converter.Options { return p.opts }

// Fetch returns the decompressed payload of tile.
func (p *Pipeline) Fetch(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	if !projection.ValidTile(tile) {
		return nil, fmt.Errorf("%w: %d/%d/%d", projection.ErrInvalidTile, tile.Z, tile.X, tile.Y)
	}
	raw, err := p.source.Fetch(ctx, tile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	data, err := tilesource.Decompress(raw, p.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return data, nil
}

// Decode fetches tile and decodes it without projecting.
func (p *Pipeline) Decode(ctx context.Context, tile maptile.Tile) (*vectortile.Tile, error) {
	data, err := p.Fetch(ctx, tile)
	if err != nil {
		return nil, err
	}
	t, err := vectortile.Decode(data, p.opts.Decode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return t, nil
}

// Convert fetches tile and converts it to a FeatureCollection.
func (p *Pipeline) Convert(ctx context.Context, tile maptile.Tile) (*geojson.FeatureCollection, error) {
	return p.ConvertWith(ctx, tile, p.conv)
}

// ConvertWith is Convert using a different converter, such as one with a
// per-request layer filter.
func (p *Pipeline) ConvertWith(ctx context.Context, tile maptile.Tile, conv *converter.Converter) (*geojson.FeatureCollection, error) {
	t, err := p.Decode(ctx, tile)
	if err != nil {
		return nil, err
	}
	fc, err := conv.Convert(t, tile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return fc, nil
}
