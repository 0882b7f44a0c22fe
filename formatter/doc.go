// Package formatter serializes conversion results.
//
// BuildJSON writes a GeoJSON FeatureCollection, compact or indented.
// BuildDecodedJSON writes a decoded tile as-is, in tile coordinates, which
// is useful for inspecting a tile before projection.
package formatter
