package formatter

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/theoremus-urban-solutions/mvt-to-geojson/vectortile"
)

type decodedTile struct {
	Layers []decodedLayer `json:"layers"`
}

type decodedLayer struct {
	Name     string           `json:"name"`
	Version  uint32           `json:"version"`
	Extent   uint32           `json:"extent"`
	Features []decodedFeature `json:"features"`
}

type decodedFeature struct {
	ID         *uint64           `json:"id,omitempty"`
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties map[string]any    `json:"properties"`
}

// BuildDecodedJSON serializes a decoded tile with geometry in tile
// coordinates. Layers and features keep their wire order.
func BuildDecodedJSON(t *vectortile.Tile, indent bool) ([]byte, error) {
	out := decodedTile{Layers: make([]decodedLayer, 0, len(t.Layers))}
	for _, l := range t.Layers {
		dl := decodedLayer{
			Name:     l.Name,
			Version:  l.Version,
			Extent:   l.Extent,
			Features: make([]decodedFeature, 0, len(l.Features)),
		}
		for i, f := range l.Features {
			df := decodedFeature{
				Type:       f.Type.String(),
				Properties: f.PropertyMap(),
			}
			if f.HasID {
				id := f.ID
				df.ID = &id
			}
			if f.Type != vectortile.GeomUnknown {
				g, err := f.DecodeGeometry()
				if err != nil {
					return nil, fmt.Errorf("layer %q feature %d: %w", l.Name, i, err)
				}
				if g != nil {
					df.Geometry = geojson.NewGeometry(g)
				}
			}
			dl.Features = append(dl.Features, df)
		}
		out.Layers = append(out.Layers, dl)
	}

	b, err := marshal(out, indent)
	if err != nil {
		return nil, fmt.Errorf("marshal decoded tile: %w", err)
	}
	return b, nil
}
