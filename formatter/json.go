package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb/geojson"
)

const indentUnit = "  "

// BuildJSON serializes a feature collection to GeoJSON
func BuildJSON(fc *geojson.FeatureCollection, indent bool) ([]byte, error) {
	if fc == nil {
		fc = geojson.NewFeatureCollection()
	}
	b, err := marshal(fc, indent)
	if err != nil {
		return nil, fmt.Errorf("marshal feature collection: %w", err)
	}
	return b, nil
}

func marshal(v any, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(v, "", indentUnit)
	}
	return json.Marshal(v)
}
