package tilesource

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb/maptile"
)

var (
	tileIDPattern   = regexp.MustCompile(`^(\d+)/(\d+)/(\d+)$`)
	tilePathPattern = regexp.MustCompile(`(?:^|/)(\d+)/(\d+)/(\d+)(?:\.[A-Za-z0-9.]+)?(?:\?.*)?$`)
)

// ParseTileID parses a "z/x/y" tile identifier.
func ParseTileID(s string) (maptile.Tile, error) {
	m := tileIDPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return maptile.Tile{}, fmt.Errorf("invalid tile id %q, want z/x/y", s)
	}
	return tileFromParts(m[1], m[2], m[3])
}

// IsTileID reports whether s looks like a "z/x/y" identifier.
func IsTileID(s string) bool {
	return tileIDPattern.MatchString(strings.TrimSpace(s))
}

// TileIDFromPath extracts the tile from a path or URL ending in z/x/y with an
// optional extension, such as ".../14/8716/5686.pbf".
func TileIDFromPath(p string) (maptile.Tile, bool) {
	m := tilePathPattern.FindStringSubmatch(path.Clean(strings.ReplaceAll(p, "\\", "/")))
	if m == nil {
		m = tilePathPattern.FindStringSubmatch(p)
	}
	if m == nil {
		return maptile.Tile{}, false
	}
	t, err := tileFromParts(m[1], m[2], m[3])
	if err != nil {
		return maptile.Tile{}, false
	}
	return t, true
}

func tileFromParts(zs, xs, ys string) (maptile.Tile, error) {
	z, err := strconv.ParseUint(zs, 10, 32)
	if err != nil {
		return maptile.Tile{}, fmt.Errorf("zoom %q: %w", zs, err)
	}
	x, err := strconv.ParseUint(xs, 10, 32)
	if err != nil {
		return maptile.Tile{}, fmt.Errorf("x %q: %w", xs, err)
	}
	y, err := strconv.ParseUint(ys, 10, 32)
	if err != nil {
		return maptile.Tile{}, fmt.Errorf("y %q: %w", ys, err)
	}
	return maptile.New(uint32(x), uint32(y), maptile.Zoom(z)), nil
}
