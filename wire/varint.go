package wire

import (
	"errors"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

// ConsumeVarint decodes one varint from the start of b and returns the value
// and the number of bytes consumed.
func ConsumeVarint(b []byte) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, varintError(n)
	}
	return v, n, nil
}

// AppendVarint appends the varint encoding of v to b.
func AppendVarint(b []byte, v uint64) []byte {
	return protowire.AppendVarint(b, v)
}

// DecodeZigZag maps an unsigned zigzag value back to its signed value.
func DecodeZigZag(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// EncodeZigZag interleaves the sign bit of v into the low bit.
func EncodeZigZag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// DecodeZigZag32 is DecodeZigZag for the 32-bit parameters of geometry commands.
func DecodeZigZag32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// EncodeZigZag32 is EncodeZigZag for 32-bit values.
func EncodeZigZag32(v int32) uint32 {
	return uint32(v<<1) ^ uint32(v>>31)
}

func varintError(n int) error {
	if errors.Is(protowire.ParseError(n), io.ErrUnexpectedEOF) {
		return ErrTruncatedInput
	}
	return ErrOverflow
}
