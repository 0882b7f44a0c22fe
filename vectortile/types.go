package vectortile

// Wire field numbers of the vector tile messages.
const (
	tileLayers = 3

	layerVersion  = 15
	layerName     = 1
	layerFeatures = 2
	layerKeys     = 3
	layerValues   = 4
	layerExtent   = 5

	featureID       = 1
	featureTags     = 2
	featureType     = 3
	featureGeometry = 4
)

// GeomType is the geometry type of a feature.
type GeomType uint32

const (
	GeomUnknown    GeomType = 0
	GeomPoint      GeomType = 1
	GeomLineString GeomType = 2
	GeomPolygon    GeomType = 3
)

func (t GeomType) String() string {
	switch t {
	case GeomPoint:
		return "POINT"
	case GeomLineString:
		return "LINESTRING"
	case GeomPolygon:
		return "POLYGON"
	default:
		return "UNKNOWN"
	}
}

// Options carries the defaults applied to layers that omit optional fields.
type Options struct {
	DefaultExtent  uint32
	DefaultVersion uint32
}

// DefaultOptions returns extent 4096 and version 1.
func DefaultOptions() Options {
	return Options{DefaultExtent: 4096, DefaultVersion: 1}
}

// Tile is a decoded tile. Layers keep their wire order.
type Tile struct {
	Layers []*Layer
}

// Layer returns the layer with the given name, or nil.
func (t *Tile) Layer(name string) *Layer {
	for _, l := range t.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// LayerNames returns the layer names in wire order.
func (t *Tile) LayerNames() []string {
	names := make([]string, 0, len(t.Layers))
	for _, l := range t.Layers {
		names = append(names, l.Name)
	}
	return names
}

// Layer is one named layer of a tile.
type Layer struct {
	Name     string
	Version  uint32
	Extent   uint32
	Keys     []string
	Values   []Value
	Features []*Feature
}

// Feature is one feature of a layer. Properties are resolved against the
// layer dictionaries; Geometry is the raw command stream.
type Feature struct {
	ID         uint64
	HasID      bool
	Type       GeomType
	Properties []Property
	Geometry   []uint32

	version uint32
}

// Property is one key/value pair of a feature, in wire order.
type Property struct {
	Key   string
	Value Value
}

// PropertyMap returns the feature properties keyed by name. Non-finite
// floats map to nil so the result is always JSON-encodable.
func (f *Feature) PropertyMap() map[string]any {
	m := make(map[string]any, len(f.Properties))
	for _, p := range f.Properties {
		if !p.Value.Finite() {
			m[p.Key] = nil
			continue
		}
		m[p.Key] = p.Value.Interface()
	}
	return m
}
