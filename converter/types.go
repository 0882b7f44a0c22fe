package converter

import "github.com/theoremus-urban-solutions/mvt-to-geojson/vectortile"

// Options controls how decoded layers become GeoJSON features.
type Options struct {
	// Layers limits the output to the named layers. Empty means all layers.
	Layers []string

	// LayerProperty, when set, adds the source layer name to every feature's
	// properties under this key. A feature that already has a property with
	// this key keeps its own value.
	LayerProperty string

	// IncludeID copies the feature id to the GeoJSON feature "id" member.
	IncludeID bool

	// Decode carries the layer defaults used by ConvertBytes.
	Decode vectortile.Options
}
