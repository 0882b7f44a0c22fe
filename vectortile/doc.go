// Package vectortile decodes Mapbox Vector Tiles.
//
// Decode walks the protobuf framing of a tile into layers, features and the
// per-layer key/value dictionaries. Feature geometry is kept as the raw
// command stream and interpreted on demand by Feature.DecodeGeometry, which
// yields orb geometries in tile-local extent units.
//
// Basic use:
//
//	t, err := vectortile.Decode(data, vectortile.DefaultOptions())
//	if err != nil {
//	    // wire.ErrTruncatedInput, wire.ErrMalformedTile, ...
//	}
//	for _, l := range t.Layers {
//	    for _, f := range l.Features {
//	        g, err := f.DecodeGeometry()
//	        ...
//	    }
//	}
//
// Unknown fields are always skipped. Any framing or geometry error is
// terminal for the whole tile.
package vectortile
