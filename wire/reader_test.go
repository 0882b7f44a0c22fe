package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestReader_Tag(t *testing.T) {
	buf := protowire.AppendTag(nil, 15, protowire.VarintType)
	buf = protowire.AppendVarint(buf, 2)
	buf = protowire.AppendTag(buf, 3, protowire.BytesType)
	buf = protowire.AppendBytes(buf, []byte("abc"))

	r := NewReader(buf)
	num, typ, err := r.Tag()
	require.NoError(t, err)
	assert.Equal(t, protowire.Number(15), num)
	assert.Equal(t, protowire.VarintType, typ)

	v, err := r.Varint()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)

	num, typ, err = r.Tag()
	require.NoError(t, err)
	assert.Equal(t, protowire.Number(3), num)
	assert.Equal(t, protowire.BytesType, typ)

	s, err := r.String()
	require.NoError(t, err)
	assert.Equal(t, "abc", s)
	assert.True(t, r.Done())
}

func TestReader_TagFieldZero(t *testing.T) {
	r := NewReader([]byte{0x02, 0x00})
	_, _, err := r.Tag()
	assert.ErrorIs(t, err, ErrMalformedTile)
}

func TestReader_BytesLengthPastEnd(t *testing.T) {
	buf := protowire.AppendVarint(nil, 10)
	buf = append(buf, 'a', 'b')

	r := NewReader(buf)
	_, err := r.Bytes()
	assert.ErrorIs(t, err, ErrMalformedTile)
	assert.Equal(t, 0, r.Pos())
}

func TestReader_FixedTruncated(t *testing.T) {
	_, err := NewReader([]byte{1, 2, 3}).Fixed32()
	assert.ErrorIs(t, err, ErrTruncatedInput)

	_, err = NewReader([]byte{1, 2, 3, 4, 5, 6, 7}).Fixed64()
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestReader_Skip(t *testing.T) {
	tests := []struct {
		name string
		typ  protowire.Type
		buf  []byte
	}{
		{name: "varint", typ: protowire.VarintType, buf: protowire.AppendVarint(nil, 1<<40)},
		{name: "fixed32", typ: protowire.Fixed32Type, buf: protowire.AppendFixed32(nil, 7)},
		{name: "fixed64", typ: protowire.Fixed64Type, buf: protowire.AppendFixed64(nil, 7)},
		{name: "bytes", typ: protowire.BytesType, buf: protowire.AppendBytes(nil, []byte("skip me"))},
		{
			name: "group",
			typ:  protowire.StartGroupType,
			buf: protowire.AppendTag(
				protowire.AppendVarint(protowire.AppendTag(nil, 1, protowire.VarintType), 5),
				9, protowire.EndGroupType),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := append(append([]byte{}, tt.buf...), 0x08, 0x01)
			r := NewReader(buf)
			require.NoError(t, r.Skip(9, tt.typ))
			assert.Equal(t, len(tt.buf), r.Pos())
		})
	}
}

func TestReader_SkipInvalidWireType(t *testing.T) {
	r := NewReader([]byte{0x00})
	assert.ErrorIs(t, r.Skip(4, protowire.EndGroupType), ErrMalformedTile)
	assert.ErrorIs(t, r.Skip(4, protowire.Type(6)), ErrMalformedTile)
}

func TestReader_SkipTruncated(t *testing.T) {
	r := NewReader([]byte{0x80})
	assert.ErrorIs(t, r.Skip(4, protowire.VarintType), ErrTruncatedInput)
}

func TestReader_Uint32s(t *testing.T) {
	var packed []byte
	for _, v := range []uint64{9, 50, 34} {
		packed = protowire.AppendVarint(packed, v)
	}
	buf := protowire.AppendBytes(nil, packed)
	buf = protowire.AppendVarint(buf, 15)

	r := NewReader(buf)
	got, err := r.Uint32s(protowire.BytesType, nil)
	require.NoError(t, err)
	got, err = r.Uint32s(protowire.VarintType, got)
	require.NoError(t, err)

	assert.Equal(t, []uint32{9, 50, 34, 15}, got)
	assert.True(t, r.Done())
}

func TestReader_Uint32sTruncatedElement(t *testing.T) {
	buf := protowire.AppendBytes(nil, []byte{0x09, 0x80})
	_, err := NewReader(buf).Uint32s(protowire.BytesType, nil)
	assert.ErrorIs(t, err, ErrTruncatedInput)
}

func TestReader_Uint32sWrongWireType(t *testing.T) {
	_, err := NewReader([]byte{0, 0, 0, 0}).Uint32s(protowire.Fixed32Type, nil)
	assert.ErrorIs(t, err, ErrMalformedTile)
}

func TestReader_Uint32(t *testing.T) {
	buf := protowire.AppendVarint(nil, math.MaxUint32)
	buf = protowire.AppendVarint(buf, math.MaxUint32+1)

	r := NewReader(buf)
	v, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), v)

	_, err = r.Uint32()
	assert.ErrorIs(t, err, ErrMalformedTile)
}

func TestReader_Uint32sRejectsWideValues(t *testing.T) {
	var packed []byte
	for _, v := range []uint64{9, 1<<32 | 4, 2} {
		packed = protowire.AppendVarint(packed, v)
	}
	_, err := NewReader(protowire.AppendBytes(nil, packed)).Uint32s(protowire.BytesType, nil)
	assert.ErrorIs(t, err, ErrMalformedTile)

	_, err = NewReader(protowire.AppendVarint(nil, 1<<40)).Uint32s(protowire.VarintType, nil)
	assert.ErrorIs(t, err, ErrMalformedTile)
}
