package tilesource

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb/maptile"
)

var (
	// ErrNetwork is returned when a tile cannot be retrieved over HTTP.
	ErrNetwork = errors.New("network error")

	// ErrIO is returned when a tile cannot be read from disk or decompressed.
	ErrIO = errors.New("io error")
)

// Source retrieves the raw bytes of one tile.
type Source interface {
	Fetch(ctx context.Context, tile maptile.Tile) ([]byte, error)
}

// Options configures a Source.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// MaxBytes bounds the size of a fetched tile. Zero means no limit.
	MaxBytes int64
}

// New returns an HTTPSource for http:// and https:// locations and a
// FileSource for everything else.
func New(location string, opts Options) (Source, error) {
	if location == "" {
		return nil, errors.New("tile location is empty")
	}
	if IsURL(location) {
		return NewHTTPSource(location, opts), nil
	}
	return NewFileSource(location), nil
}

// IsURL reports whether location is fetched over HTTP.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// IsTemplate reports whether location contains tile placeholders.
func IsTemplate(location string) bool {
	return strings.Contains(location, "{z}") || strings.Contains(location, "{x}") ||
		strings.Contains(location, "{y}") || strings.Contains(location, "{-y}")
}

// Expand substitutes the tile coordinates into a location template.
func Expand(template string, tile maptile.Tile) string {
	tmsY := (uint64(1) << uint64(tile.Z)) - 1 - uint64(tile.Y)
	r := strings.NewReplacer(
		"{z}", strconv.FormatUint(uint64(tile.Z), 10),
		"{x}", strconv.FormatUint(uint64(tile.X), 10),
		"{-y}", strconv.FormatUint(tmsY, 10),
		"{y}", strconv.FormatUint(uint64(tile.Y), 10),
	)
	return r.Replace(template)
}

func tileID(t maptile.Tile) string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}
