package wire

import "errors"

var (
	// ErrTruncatedInput is returned when the buffer ends inside a varint or fixed-width value.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrOverflow is returned when a varint does not fit in 64 bits.
	ErrOverflow = errors.New("varint overflows 64 bits")

	// ErrMalformedTile is returned when framing is inconsistent: a declared
	// length past the end of the buffer, an invalid field number or wire type,
	// or a missing required field.
	ErrMalformedTile = errors.New("malformed tile")
)
