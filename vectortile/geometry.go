package vectortile

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/mvt-to-geojson/wire"
)

// Geometry command ids.
const (
	cmdMoveTo    = 1
	cmdLineTo    = 2
	cmdClosePath = 7
)

func commandName(id uint32) string {
	switch id {
	case cmdMoveTo:
		return "MoveTo"
	case cmdLineTo:
		return "LineTo"
	case cmdClosePath:
		return "ClosePath"
	default:
		return fmt.Sprintf("command(%d)", id)
	}
}

// DecodeGeometry interprets the feature's command stream in tile units.
// An empty stream yields a nil geometry and no error.
func (f *Feature) DecodeGeometry() (orb.Geometry, error) {
	return DecodeGeometry(f.Type, f.Geometry, f.version)
}

// DecodeGeometry interprets a command stream of the given type. version is
// the layer version; it decides how polygon rings are classified.
func DecodeGeometry(t GeomType, cmds []uint32, version uint32) (orb.Geometry, error) {
	c := &commandReader{cmds: cmds}
	switch t {
	case GeomPoint:
		return c.points()
	case GeomLineString:
		return c.lines()
	case GeomPolygon:
		return c.polygons(version)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownGeometry, uint32(t))
	}
}

// commandReader walks one command stream. The cursor starts at the origin
// and every MoveTo/LineTo parameter pair moves it by a zigzag delta.
type commandReader struct {
	cmds  []uint32
	pos   int
	x, y  int64
	moved bool
}

func (c *commandReader) done() bool { return c.pos >= len(c.cmds) }

func (c *commandReader) next() (id, count uint32, err error) {
	at := c.pos
	h := c.cmds[c.pos]
	c.pos++
	id, count = h&0x7, h>>3

	switch id {
	case cmdMoveTo, cmdLineTo:
		if left := len(c.cmds) - c.pos; uint64(count)*2 > uint64(left) {
			return 0, 0, fmt.Errorf("%w: %s at %d needs %d parameters, %d left",
				ErrMalformedGeometry, commandName(id), at, uint64(count)*2, left)
		}
		if id == cmdMoveTo {
			c.moved = true
		}
	case cmdClosePath:
		if !c.moved {
			return 0, 0, fmt.Errorf("%w: ClosePath at %d before any MoveTo", ErrMalformedGeometry, at)
		}
		if count != 1 {
			return 0, 0, fmt.Errorf("%w: ClosePath at %d has count %d", ErrMalformedGeometry, at, count)
		}
	default:
		return 0, 0, fmt.Errorf("%w: unknown command id %d at %d", ErrMalformedGeometry, id, at)
	}
	return id, count, nil
}

func (c *commandReader) point() orb.Point {
	c.x += int64(wire.DecodeZigZag32(c.cmds[c.pos]))
	c.y += int64(wire.DecodeZigZag32(c.cmds[c.pos+1]))
	c.pos += 2
	return orb.Point{float64(c.x), float64(c.y)}
}

func (c *commandReader) points() (orb.Geometry, error) {
	var mp orb.MultiPoint
	for !c.done() {
		id, count, err := c.next()
		if err != nil {
			return nil, err
		}
		if id != cmdMoveTo {
			return nil, fmt.Errorf("%w: %s in point geometry", ErrMalformedGeometry, commandName(id))
		}
		for i := uint32(0); i < count; i++ {
			mp = append(mp, c.point())
		}
	}
	switch len(mp) {
	case 0:
		return nil, nil
	case 1:
		return mp[0], nil
	default:
		return mp, nil
	}
}

func (c *commandReader) lines() (orb.Geometry, error) {
	var (
		mls orb.MultiLineString
		cur orb.LineString
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		if len(cur) < 2 {
			return fmt.Errorf("%w: line %d has %d point(s)", ErrMalformedGeometry, len(mls), len(cur))
		}
		mls = append(mls, cur)
		cur = nil
		return nil
	}

	for !c.done() {
		id, count, err := c.next()
		if err != nil {
			return nil, err
		}
		switch id {
		case cmdMoveTo:
			if count != 1 {
				return nil, fmt.Errorf("%w: MoveTo with count %d in linestring geometry", ErrMalformedGeometry, count)
			}
			if err := flush(); err != nil {
				return nil, err
			}
			cur = orb.LineString{c.point()}
		case cmdLineTo:
			if cur == nil {
				return nil, fmt.Errorf("%w: LineTo before MoveTo", ErrMalformedGeometry)
			}
			for i := uint32(0); i < count; i++ {
				cur = append(cur, c.point())
			}
		default:
			return nil, fmt.Errorf("%w: %s in linestring geometry", ErrMalformedGeometry, commandName(id))
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	switch len(mls) {
	case 0:
		return nil, nil
	case 1:
		return mls[0], nil
	default:
		return mls, nil
	}
}

func (c *commandReader) polygons(version uint32) (orb.Geometry, error) {
	var (
		rings []orb.Ring
		cur   orb.Ring
	)
	for !c.done() {
		id, count, err := c.next()
		if err != nil {
			return nil, err
		}
		switch id {
		case cmdMoveTo:
			if count != 1 {
				return nil, fmt.Errorf("%w: MoveTo with count %d in polygon geometry", ErrMalformedGeometry, count)
			}
			if cur != nil {
				return nil, fmt.Errorf("%w: ring %d not closed before MoveTo", ErrMalformedGeometry, len(rings))
			}
			cur = orb.Ring{c.point()}
		case cmdLineTo:
			if cur == nil {
				return nil, fmt.Errorf("%w: LineTo outside an open ring", ErrMalformedGeometry)
			}
			for i := uint32(0); i < count; i++ {
				cur = append(cur, c.point())
			}
		case cmdClosePath:
			if cur == nil {
				return nil, fmt.Errorf("%w: ClosePath without an open ring", ErrMalformedGeometry)
			}
			if len(cur) < 3 {
				return nil, fmt.Errorf("%w: ring %d has %d point(s)", ErrMalformedGeometry, len(rings), len(cur))
			}
			cur = append(cur, cur[0])
			rings = append(rings, cur)
			cur = nil
		}
	}
	if cur != nil {
		return nil, fmt.Errorf("%w: ring %d not closed", ErrMalformedGeometry, len(rings))
	}
	return assemblePolygons(rings, version)
}

// assemblePolygons groups rings by winding: a ring with the exterior sign
// starts a new polygon, rings of the opposite sign are holes of the current
// one. Version 2 fixes the exterior sign to positive area; version 1 takes
// it from the first ring. Zero-area rings are dropped.
func assemblePolygons(rings []orb.Ring, version uint32) (orb.Geometry, error) {
	var (
		mp        orb.MultiPolygon
		outerSign int
	)
	for i, ring := range rings {
		sign := windingSign(RingArea(ring))
		if sign == 0 {
			continue
		}
		if outerSign == 0 {
			outerSign = sign
			if version >= 2 {
				outerSign = 1
			}
		}
		if sign == outerSign {
			mp = append(mp, orb.Polygon{ring})
			continue
		}
		if len(mp) == 0 {
			return nil, fmt.Errorf("%w: interior ring %d before any exterior ring", ErrMalformedGeometry, i)
		}
		mp[len(mp)-1] = append(mp[len(mp)-1], ring)
	}

	switch len(mp) {
	case 0:
		return nil, nil
	case 1:
		return mp[0], nil
	default:
		return mp, nil
	}
}

// RingArea returns the signed area of a ring by the shoelace sum in tile
// coordinates (y down). Exterior rings are positive, holes negative.
func RingArea(r orb.Ring) float64 {
	var sum float64
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += r[i][0]*r[j][1] - r[j][0]*r[i][1]
	}
	return sum / 2
}

// IsExterior reports whether the ring winds as an exterior ring.
func IsExterior(r orb.Ring) bool {
	return RingArea(r) > 0
}

func windingSign(a float64) int {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}
