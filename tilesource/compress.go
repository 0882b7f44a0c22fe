package tilesource

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Compression names the encoding of a tile payload.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// DetectCompression inspects the leading magic bytes of data.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// DefaultMaxDecompressed bounds inflated tiles when no other limit is set.
const DefaultMaxDecompressed int64 = 32 << 20

// Decompress inflates gzip or zstd payloads. Uncompressed data is returned
// as-is. Inflated output larger than maxBytes is ErrIO; maxBytes <= 0 means
// DefaultMaxDecompressed.
func Decompress(data []byte, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDecompressed
	}
	switch DetectCompression(data) {
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %v", ErrIO, err)
		}
		defer func() { _ = zr.Close() }()
		out, err := io.ReadAll(io.LimitReader(zr, maxBytes+1))
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %v", ErrIO, err)
		}
		if int64(len(out)) > maxBytes {
			return nil, fmt.Errorf("%w: gzip: inflated tile exceeds %d bytes", ErrIO, maxBytes)
		}
		return out, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(maxBytes)))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrIO, err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrIO, err)
		}
		if int64(len(out)) > maxBytes {
			return nil, fmt.Errorf("%w: zstd: inflated tile exceeds %d bytes", ErrIO, maxBytes)
		}
		return out, nil
	default:
		return data, nil
	}
}
