// Package mvtgeojson wires a tile source, the vector tile decoder and the
// GeoJSON converter into a single pipeline, and serves it over HTTP.
package mvtgeojson
