// Package converter builds GeoJSON feature collections from decoded vector tiles.
//
// For every kept layer it creates a projection.Projector for the layer's
// extent, decodes each feature's geometry, reprojects every vertex to
// longitude/latitude and attaches the feature's properties. Features keep
// their wire order and geometries are never simplified.
//
// # Usage
//
//	conv := converter.NewConverter(converter.Options{
//	    Layers:        []string{"poi"},
//	    LayerProperty: "layer",
//	    Decode:        vectortile.DefaultOptions(),
//	})
//	fc, err := conv.ConvertBytes(data, maptile.New(x, y, z))
//
// Features of unknown geometry type and features with an empty command
// stream are skipped; the skips are logged once per tile through a
// WarningAggregator. Decode and projection errors abort the whole tile.
package converter
