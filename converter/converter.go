package converter

import (
	"fmt"

	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/mvt-to-geojson/projection"
	"github.com/theoremus-urban-solutions/mvt-to-geojson/vectortile"
)

// Converter turns decoded tiles into GeoJSON feature collections. It holds
// no per-tile state and is safe for concurrent use.
type Converter struct {
	opts   Options
	layers map[string]struct{}
}

// NewConverter creates a new converter instance
func NewConverter(opts Options) *Converter {
	c := &Converter{opts: opts}
	if len(opts.Layers) > 0 {
		c.layers = make(map[string]struct{}, len(opts.Layers))
		for _, name := range opts.Layers {
			c.layers[name] = struct{}{}
		}
	}
	return c
}

// ConvertBytes decodes a tile payload and converts it.
func (c *Converter) ConvertBytes(data []byte, tile maptile.Tile) (*geojson.FeatureCollection, error) {
	t, err := vectortile.Decode(data, c.opts.Decode)
	if err != nil {
		return nil, fmt.Errorf("decode tile %s: %w", tileID(tile), err)
	}
	return c.Convert(t, tile)
}

// Convert projects every feature of t, in layer then feature order, into a
// FeatureCollection. Any geometry or projection error aborts the tile.
func (c *Converter) Convert(t *vectortile.Tile, tile maptile.Tile) (*geojson.FeatureCollection, error) {
	warnings := NewWarningAggregator()
	fc, err := c.convert(t, tile, warnings)
	if err != nil {
		return nil, err
	}
	warnings.LogAll(tileID(tile))
	logrus.WithFields(logrus.Fields{
		"tile":     tileID(tile),
		"layers":   len(t.Layers),
		"features": len(fc.Features),
	}).Debug("converted tile")
	return fc, nil
}

func (c *Converter) convert(t *vectortile.Tile, tile maptile.Tile, warnings *WarningAggregator) (*geojson.FeatureCollection, error) {
	for _, name := range c.opts.Layers {
		if t.Layer(name) == nil {
			warnings.Add(WarningLayerNotFound, name)
		}
	}

	fc := geojson.NewFeatureCollection()
	for _, l := range t.Layers {
		if !c.wantLayer(l.Name) {
			continue
		}
		p, err := projection.New(tile, l.Extent)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", l.Name, err)
		}
		for i, f := range l.Features {
			ref := fmt.Sprintf("%s#%d", l.Name, i)
			if f.Type == vectortile.GeomUnknown {
				warnings.Add(WarningUnknownGeometry, ref)
				continue
			}
			g, err := f.DecodeGeometry()
			if err != nil {
				return nil, fmt.Errorf("layer %q feature %d: %w", l.Name, i, err)
			}
			if g == nil {
				warnings.Add(WarningEmptyGeometry, ref)
				continue
			}
			projected, err := p.Geometry(g)
			if err != nil {
				return nil, fmt.Errorf("layer %q feature %d: %w", l.Name, i, err)
			}

			out := geojson.NewFeature(projected)
			for _, prop := range f.Properties {
				switch {
				case prop.Value.Type == vectortile.ValueUnknown:
					warnings.Add(WarningUnknownValue, ref+"."+prop.Key)
					out.Properties[prop.Key] = nil
				case !prop.Value.Finite():
					warnings.Add(WarningNonFiniteValue, ref+"."+prop.Key)
					out.Properties[prop.Key] = nil
				default:
					out.Properties[prop.Key] = prop.Value.Interface()
				}
			}
			if c.opts.LayerProperty != "" {
				if _, taken := out.Properties[c.opts.LayerProperty]; taken {
					warnings.Add(WarningLayerPropertyConflict, ref)
				} else {
					out.Properties[c.opts.LayerProperty] = l.Name
				}
			}
			if c.opts.IncludeID && f.HasID {
				out.ID = f.ID
			}
			fc.Append(out)
		}
	}
	return fc, nil
}

func (c *Converter) wantLayer(name string) bool {
	if c.layers == nil {
		return true
	}
	_, ok := c.layers[name]
	return ok
}

func tileID(t maptile.Tile) string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}
