package vectortile

import "errors"

var (
	// ErrMalformedGeometry is returned when a command stream cannot be interpreted.
	ErrMalformedGeometry = errors.New("malformed geometry")

	// ErrUnknownGeometry is returned when decoding the geometry of a feature of unknown type.
	ErrUnknownGeometry = errors.New("unknown geometry type")
)
