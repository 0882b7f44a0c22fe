package wire

import (
	"errors"
	"fmt"
	"io"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Reader walks the (tag, value) pairs of one message. A Reader is not safe
// for concurrent use; each decode owns its own.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the cursor offset into the buffer.
func (r *Reader) Pos() int { return r.pos }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

// Done reports whether the whole buffer has been consumed.
func (r *Reader) Done() bool { return r.pos >= len(r.buf) }

// Varint reads one varint.
func (r *Reader) Varint() (uint64, error) {
	v, n, err := ConsumeVarint(r.buf[r.pos:])
	if err != nil {
		return 0, fmt.Errorf("%w at offset %d", err, r.pos)
	}
	r.pos += n
	return v, nil
}

// Uint32 reads one varint that must fit in 32 bits. Larger values are
// ErrMalformedTile rather than being truncated.
func (r *Reader) Uint32() (uint32, error) {
	start := r.pos
	v, err := r.Varint()
	if err != nil {
		return 0, err
	}
	return narrow(v, start)
}

func narrow(v uint64, offset int) (uint32, error) {
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("%w: uint32 value %d at offset %d", ErrMalformedTile, v, offset)
	}
	return uint32(v), nil
}

// Tag reads a field tag: the low 3 bits are the wire type, the rest the field number.
func (r *Reader) Tag() (protowire.Number, protowire.Type, error) {
	start := r.pos
	v, err := r.Varint()
	if err != nil {
		return 0, 0, err
	}
	num, typ := protowire.DecodeTag(v)
	if num < protowire.MinValidNumber {
		return 0, 0, fmt.Errorf("%w: invalid field number %d at offset %d", ErrMalformedTile, num, start)
	}
	return num, typ, nil
}

// Fixed32 reads a little-endian 32-bit value.
func (r *Reader) Fixed32() (uint32, error) {
	v, n := protowire.ConsumeFixed32(r.buf[r.pos:])
	if n < 0 {
		return 0, fmt.Errorf("%w: fixed32 at offset %d", ErrTruncatedInput, r.pos)
	}
	r.pos += n
	return v, nil
}

// Fixed64 reads a little-endian 64-bit value.
func (r *Reader) Fixed64() (uint64, error) {
	v, n := protowire.ConsumeFixed64(r.buf[r.pos:])
	if n < 0 {
		return 0, fmt.Errorf("%w: fixed64 at offset %d", ErrTruncatedInput, r.pos)
	}
	r.pos += n
	return v, nil
}

// Bytes reads a length-delimited value. The returned slice aliases the
// underlying buffer.
func (r *Reader) Bytes() ([]byte, error) {
	start := r.pos
	l, err := r.Varint()
	if err != nil {
		return nil, err
	}
	if l > uint64(r.Len()) {
		r.pos = start
		return nil, fmt.Errorf("%w: length %d at offset %d exceeds remaining %d bytes",
			ErrMalformedTile, l, start, len(r.buf)-start)
	}
	b := r.buf[r.pos : r.pos+int(l)]
	r.pos += int(l)
	return b, nil
}

// String reads a length-delimited value as a string.
func (r *Reader) String() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Skip discards the value of a field the caller does not recognise.
func (r *Reader) Skip(num protowire.Number, typ protowire.Type) error {
	var err error
	switch typ {
	case protowire.VarintType:
		_, err = r.Varint()
	case protowire.Fixed32Type:
		_, err = r.Fixed32()
	case protowire.Fixed64Type:
		_, err = r.Fixed64()
	case protowire.BytesType:
		_, err = r.Bytes()
	case protowire.StartGroupType:
		n := protowire.ConsumeFieldValue(num, typ, r.buf[r.pos:])
		if n < 0 {
			if errors.Is(protowire.ParseError(n), io.ErrUnexpectedEOF) {
				return fmt.Errorf("%w: group %d at offset %d", ErrTruncatedInput, num, r.pos)
			}
			return fmt.Errorf("%w: group %d at offset %d", ErrMalformedTile, num, r.pos)
		}
		r.pos += n
	default:
		return fmt.Errorf("%w: wire type %d for field %d at offset %d", ErrMalformedTile, typ, num, r.pos)
	}
	return err
}

// Uint32s reads one occurrence of a repeated uint32 field and appends it to
// dst. Both the packed (length-delimited) and the unpacked (single varint)
// encodings are accepted.
func (r *Reader) Uint32s(typ protowire.Type, dst []uint32) ([]uint32, error) {
	switch typ {
	case protowire.VarintType:
		v, err := r.Uint32()
		if err != nil {
			return dst, err
		}
		return append(dst, v), nil
	case protowire.BytesType:
		b, err := r.Bytes()
		if err != nil {
			return dst, err
		}
		base := r.pos - len(b)
		sub := NewReader(b)
		for !sub.Done() {
			v, err := sub.Uint32()
			if err != nil {
				return dst, fmt.Errorf("packed field at offset %d: %w", base, err)
			}
			dst = append(dst, v)
		}
		return dst, nil
	default:
		return dst, fmt.Errorf("%w: wire type %d for repeated uint32 at offset %d", ErrMalformedTile, typ, r.pos)
	}
}
