// Package tiletest hand-encodes vector tiles for tests.
package tiletest

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Layer describes a layer message. Zero Version or Extent leaves the field out.
type Layer struct {
	Name     string
	NoName   bool
	Version  uint32
	Extent   uint32
	Keys     []string
	Values   [][]byte
	Features [][]byte
	Extra    []byte
}

// Feature describes a feature message.
type Feature struct {
	ID       uint64
	HasID    bool
	Type     uint32
	Tags     []uint32
	Geometry []uint32
	Extra    []byte
}

// Tile wraps encoded layers in a tile message.
func Tile(layers ...[]byte) []byte {
	var b []byte
	for _, l := range layers {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, l)
	}
	return b
}

// Encode returns the layer message bytes.
func (l Layer) Encode() []byte {
	var b []byte
	if l.Version != 0 {
		b = protowire.AppendTag(b, 15, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(l.Version))
	}
	if !l.NoName {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, l.Name)
	}
	for _, f := range l.Features {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, f)
	}
	for _, k := range l.Keys {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendString(b, k)
	}
	for _, v := range l.Values {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, v)
	}
	if l.Extent != 0 {
		b = protowire.AppendTag(b, 5, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(l.Extent))
	}
	return append(b, l.Extra...)
}

// Encode returns the feature message bytes with packed tags and geometry.
func (f Feature) Encode() []byte {
	var b []byte
	if f.HasID {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, f.ID)
	}
	if len(f.Tags) > 0 {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, packed(f.Tags))
	}
	if f.Type != 0 {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(f.Type))
	}
	if len(f.Geometry) > 0 {
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, packed(f.Geometry))
	}
	return append(b, f.Extra...)
}

func packed(vs []uint32) []byte {
	var b []byte
	for _, v := range vs {
		b = protowire.AppendVarint(b, uint64(v))
	}
	return b
}

// StringValue encodes a value message holding a string.
func StringValue(s string) []byte {
	return protowire.AppendString(protowire.AppendTag(nil, 1, protowire.BytesType), s)
}

// FloatValue encodes a value message holding a float32.
func FloatValue(f float32) []byte {
	return protowire.AppendFixed32(protowire.AppendTag(nil, 2, protowire.Fixed32Type), math.Float32bits(f))
}

// DoubleValue encodes a value message holding a float64.
func DoubleValue(f float64) []byte {
	return protowire.AppendFixed64(protowire.AppendTag(nil, 3, protowire.Fixed64Type), math.Float64bits(f))
}

// IntValue encodes a value message holding an int64.
func IntValue(i int64) []byte {
	return protowire.AppendVarint(protowire.AppendTag(nil, 4, protowire.VarintType), uint64(i))
}

// UintValue encodes a value message holding a uint64.
func UintValue(u uint64) []byte {
	return protowire.AppendVarint(protowire.AppendTag(nil, 5, protowire.VarintType), u)
}

// SintValue encodes a value message holding a zigzag sint64.
func SintValue(i int64) []byte {
	return protowire.AppendVarint(protowire.AppendTag(nil, 6, protowire.VarintType), protowire.EncodeZigZag(i))
}

// BoolValue encodes a value message holding a bool.
func BoolValue(v bool) []byte {
	return protowire.AppendVarint(protowire.AppendTag(nil, 7, protowire.VarintType), protowire.EncodeBool(v))
}

// VarintField encodes an arbitrary varint field, typically one a decoder does not know.
func VarintField(num protowire.Number, v uint64) []byte {
	return protowire.AppendVarint(protowire.AppendTag(nil, num, protowire.VarintType), v)
}

// BytesField encodes an arbitrary length-delimited field.
func BytesField(num protowire.Number, v []byte) []byte {
	return protowire.AppendBytes(protowire.AppendTag(nil, num, protowire.BytesType), v)
}
