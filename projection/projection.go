// Package projection maps tile-local coordinates to WGS84 longitude/latitude
// with the inverse spherical Web Mercator projection.
package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// MaxLatitude is the latitude of the top edge of the Web Mercator square.
const MaxLatitude = 85.05112877980659

var (
	// ErrInvalidCoordinate is returned for non-finite input or output coordinates.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidTile is returned when x or y is outside the tile grid of the zoom level.
	ErrInvalidTile = errors.New("invalid tile")
)

// Projector converts coordinates in a layer's extent units for one tile.
type Projector struct {
	tile   maptile.Tile
	extent float64
	n      float64
}

// New returns a Projector for tile with the given layer extent.
func New(tile maptile.Tile, extent uint32) (*Projector, error) {
	if !ValidTile(tile) {
		return nil, fmt.Errorf("%w: %d/%d/%d", ErrInvalidTile, tile.Z, tile.X, tile.Y)
	}
	if extent == 0 {
		return nil, fmt.Errorf("%w: zero extent", ErrInvalidCoordinate)
	}
	return &Projector{
		tile:   tile,
		extent: float64(extent),
		n:      math.Exp2(float64(tile.Z)),
	}, nil
}

// MaxZoom is the deepest zoom level whose tile indexes fit in uint32.
const MaxZoom maptile.Zoom = 32

// ValidTile reports whether x and y lie inside the 2^z grid.
func ValidTile(t maptile.Tile) bool {
	if t.Z > MaxZoom {
		return false
	}
	n := uint64(1) << uint64(t.Z)
	return uint64(t.X) < n && uint64(t.Y) < n
}

// Tile returns the tile the projector was built for.
func (p *Projector) Tile() maptile.Tile { return p.tile }

// Point projects one tile-local coordinate to [lon, lat].
//
// Longitude beyond ±180 is wrapped into [-180, 180); the eastern edge of
// the last tile column stays at 180 so rings touching it remain closed
// shapes. Latitude is clamped to
// ±MaxLatitude only when the coordinate lies outside [0, extent].
func (p *Projector) Point(lx, ly float64) (orb.Point, error) {
	if !finite(lx) || !finite(ly) {
		return orb.Point{}, fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinate, lx, ly)
	}

	mx := float64(p.tile.X) + lx/p.extent
	my := float64(p.tile.Y) + ly/p.extent

	lon := normalizeLongitude(mx/p.n*360 - 180)
	lat := Latitude(my, p.n)
	if outside(lx, p.extent) || outside(ly, p.extent) {
		lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	}

	if !finite(lon) || !finite(lat) {
		return orb.Point{}, fmt.Errorf("%w: (%v, %v) projects to (%v, %v)", ErrInvalidCoordinate, lx, ly, lon, lat)
	}
	return orb.Point{lon, lat}, nil
}

// Latitude is the inverse Mercator latitude of tile-fraction row my on a
// grid n tiles wide.
func Latitude(my, n float64) float64 {
	return math.Atan(math.Sinh(math.Pi*(1-2*my/n))) * 180 / math.Pi
}

// LatitudeGudermannian computes the same latitude as Latitude with the
// 90 - 360·atan(exp(-y·2π))/π form, y measured from the equator upwards.
// Rows grow downwards, so the tile row is flipped to π - my/n·2π first;
// the unflipped 90 - 360·atan(exp(-(my/n·2π - π)))/π expression yields the
// mirrored (negated) latitude.
func LatitudeGudermannian(my, n float64) float64 {
	return 90 - 360*math.Atan(math.Exp(-(math.Pi-my/n*2*math.Pi)))/math.Pi
}

// TileToLonLat projects one coordinate without building a Projector.
func TileToLonLat(z maptile.Zoom, x, y, extent uint32, lx, ly float64) (orb.Point, error) {
	p, err := New(maptile.New(x, y, z), extent)
	if err != nil {
		return orb.Point{}, err
	}
	return p.Point(lx, ly)
}

func normalizeLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

func outside(v, extent float64) bool {
	return v < 0 || v > extent
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
