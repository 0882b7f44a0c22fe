// Package wire reads the protobuf framing used by binary vector tiles.
//
// It decodes base-128 varints, field tags, fixed-width scalars and
// length-delimited sub-messages from an in-memory buffer, and implements
// the skip rule for fields a decoder does not recognise. The low-level
// primitives come from protowire; this package adds a cursor and maps
// failures onto ErrTruncatedInput, ErrOverflow and ErrMalformedTile.
package wire
