package converter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Warning type constants
const (
	WarningUnknownGeometry = "unknown_geometry"
	WarningEmptyGeometry   = "empty_geometry"
	WarningLayerNotFound   = "layer_not_found"
	WarningUnknownValue    = "unknown_value"

	WarningNonFiniteValue        = "non_finite_value"
	WarningLayerPropertyConflict = "layer_property_conflict"
)

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects warnings during conversion and outputs consolidated summaries
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example ID
func (w *WarningAggregator) Add(warningType, exampleID string) {
	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := w.warnings[warningType]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		info.examples = append(info.examples, exampleID)
	}
}

// Count returns how often a warning type was recorded
func (w *WarningAggregator) Count(warningType string) int {
	if info := w.warnings[warningType]; info != nil {
		return info.count
	}
	return 0
}

// Len returns the number of distinct warning types recorded
func (w *WarningAggregator) Len() int { return len(w.warnings) }

// LogAll outputs all collected warnings in consolidated format, one line per type
func (w *WarningAggregator) LogAll(tileID string) {
	if len(w.warnings) == 0 {
		return
	}

	types := make([]string, 0, len(w.warnings))
	for warningType := range w.warnings {
		types = append(types, warningType)
	}
	sort.Strings(types)

	for _, warningType := range types {
		info := w.warnings[warningType]
		logrus.WithFields(logrus.Fields{
			"tile":     tileID,
			"warning":  warningType,
			"count":    info.count,
			"examples": strings.Join(info.examples, ", "),
		}).Warn(w.formatWarningMessage(warningType, tileID, info))
	}
}

// formatWarningMessage creates a human-readable warning message
func (w *WarningAggregator) formatWarningMessage(warningType, tileID string, info *warningInfo) string {
	var description, action string

	switch warningType {
	case WarningUnknownGeometry:
		description = "features with unknown geometry type"
		action = "Skipping those features"
	case WarningEmptyGeometry:
		description = "features with an empty geometry command stream"
		action = "Skipping those features"
	case WarningLayerNotFound:
		description = "requested layers that are not present"
		action = "Building output from the remaining layers"
	case WarningUnknownValue:
		description = "property values of an unknown type"
		action = "Writing them as null"
	case WarningNonFiniteValue:
		description = "NaN or infinite property values"
		action = "Writing them as null"
	case WarningLayerPropertyConflict:
		description = "features that already carry the layer name property"
		action = "Keeping the feature's own value"
	default:
		description = "unknown issue"
		action = "Building output with fallback behavior"
	}

	return fmt.Sprintf("Tile %s has %s (%d occurrences). %s. Examples: %s",
		tileID, description, info.count, action, strings.Join(info.examples, ", "))
}
