package vectortile

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/theoremus-urban-solutions/mvt-to-geojson/wire"
)

// Decode parses a whole tile. Top-level fields other than layers are skipped.
func Decode(buf []byte, opts Options) (*Tile, error) {
	if opts.DefaultExtent == 0 {
		opts.DefaultExtent = DefaultOptions().DefaultExtent
	}
	if opts.DefaultVersion == 0 {
		opts.DefaultVersion = DefaultOptions().DefaultVersion
	}

	t := &Tile{}
	seen := map[string]struct{}{}
	r := wire.NewReader(buf)
	for !r.Done() {
		num, typ, err := r.Tag()
		if err != nil {
			return nil, err
		}
		if num != tileLayers || typ != protowire.BytesType {
			if err := r.Skip(num, typ); err != nil {
				return nil, err
			}
			continue
		}
		b, err := r.Bytes()
		if err != nil {
			return nil, err
		}
		l, err := decodeLayer(b, opts)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", len(t.Layers), err)
		}
		if _, dup := seen[l.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate layer name %q", wire.ErrMalformedTile, l.Name)
		}
		seen[l.Name] = struct{}{}
		t.Layers = append(t.Layers, l)
	}
	return t, nil
}

// rawFeature holds dictionary indexes until the whole layer has been read;
// keys and values may follow the features on the wire.
type rawFeature struct {
	f    *Feature
	tags []uint32
}

func decodeLayer(buf []byte, opts Options) (*Layer, error) {
	var (
		l          = &Layer{}
		raw        []rawFeature
		hasName    bool
		hasExtent  bool
		hasVersion bool
	)

	r := wire.NewReader(buf)
	for !r.Done() {
		num, typ, err := r.Tag()
		if err != nil {
			return nil, err
		}
		switch {
		case num == layerVersion && typ == protowire.VarintType:
			v, err := r.Uint32()
			if err != nil {
				return nil, err
			}
			l.Version = v
			hasVersion = true
		case num == layerName && typ == protowire.BytesType:
			if l.Name, err = r.String(); err != nil {
				return nil, err
			}
			hasName = true
		case num == layerFeatures && typ == protowire.BytesType:
			b, err := r.Bytes()
			if err != nil {
				return nil, err
			}
			rf, err := decodeFeature(b)
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", len(raw), err)
			}
			raw = append(raw, rf)
		case num == layerKeys && typ == protowire.BytesType:
			k, err := r.String()
			if err != nil {
				return nil, err
			}
			l.Keys = append(l.Keys, k)
		case num == layerValues && typ == protowire.BytesType:
			b, err := r.Bytes()
			if err != nil {
				return nil, err
			}
			v, err := decodeValue(b)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", len(l.Values), err)
			}
			l.Values = append(l.Values, v)
		case num == layerExtent && typ == protowire.VarintType:
			v, err := r.Uint32()
			if err != nil {
				return nil, err
			}
			l.Extent = v
			hasExtent = true
		default:
			if err := r.Skip(num, typ); err != nil {
				return nil, err
			}
		}
	}

	if !hasName {
		return nil, fmt.Errorf("%w: layer has no name", wire.ErrMalformedTile)
	}
	if !hasVersion {
		l.Version = opts.DefaultVersion
	}
	if l.Version != 1 && l.Version != 2 {
		return nil, fmt.Errorf("%w: layer %q has unsupported version %d", wire.ErrMalformedTile, l.Name, l.Version)
	}
	if !hasExtent {
		if l.Version >= 2 {
			return nil, fmt.Errorf("%w: layer %q (version %d) has no extent", wire.ErrMalformedTile, l.Name, l.Version)
		}
		l.Extent = opts.DefaultExtent
	}
	if l.Extent == 0 {
		return nil, fmt.Errorf("%w: layer %q has zero extent", wire.ErrMalformedTile, l.Name)
	}

	l.Features = make([]*Feature, 0, len(raw))
	for i, rf := range raw {
		if err := l.resolveTags(rf); err != nil {
			return nil, fmt.Errorf("layer %q feature %d: %w", l.Name, i, err)
		}
		rf.f.version = l.Version
		l.Features = append(l.Features, rf.f)
	}
	return l, nil
}

func decodeFeature(buf []byte) (rawFeature, error) {
	rf := rawFeature{f: &Feature{}}
	r := wire.NewReader(buf)
	for !r.Done() {
		num, typ, err := r.Tag()
		if err != nil {
			return rf, err
		}
		switch {
		case num == featureID && typ == protowire.VarintType:
			if rf.f.ID, err = r.Varint(); err != nil {
				return rf, err
			}
			rf.f.HasID = true
		case num == featureTags && (typ == protowire.BytesType || typ == protowire.VarintType):
			if rf.tags, err = r.Uint32s(typ, rf.tags); err != nil {
				return rf, err
			}
		case num == featureType && typ == protowire.VarintType:
			v, err := r.Varint()
			if err != nil {
				return rf, err
			}
			rf.f.Type = GeomType(v)
			if v > uint64(GeomPolygon) {
				rf.f.Type = GeomUnknown
			}
		case num == featureGeometry && (typ == protowire.BytesType || typ == protowire.VarintType):
			if rf.f.Geometry, err = r.Uint32s(typ, rf.f.Geometry); err != nil {
				return rf, err
			}
		default:
			if err := r.Skip(num, typ); err != nil {
				return rf, err
			}
		}
	}
	return rf, nil
}

// resolveTags pairs (key index, value index) references into properties.
// On a repeated key the first pair wins.
func (l *Layer) resolveTags(rf rawFeature) error {
	if len(rf.tags)%2 != 0 {
		return fmt.Errorf("%w: odd tag count %d", wire.ErrMalformedTile, len(rf.tags))
	}
	if len(rf.tags) == 0 {
		return nil
	}
	props := make([]Property, 0, len(rf.tags)/2)
	seen := make(map[string]struct{}, len(rf.tags)/2)
	for i := 0; i < len(rf.tags); i += 2 {
		ki, vi := rf.tags[i], rf.tags[i+1]
		if int(ki) >= len(l.Keys) {
			return fmt.Errorf("%w: key index %d out of range (%d keys)", wire.ErrMalformedTile, ki, len(l.Keys))
		}
		if int(vi) >= len(l.Values) {
			return fmt.Errorf("%w: value index %d out of range (%d values)", wire.ErrMalformedTile, vi, len(l.Values))
		}
		key := l.Keys[ki]
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		props = append(props, Property{Key: key, Value: l.Values[vi]})
	}
	rf.f.Properties = props
	return nil
}
