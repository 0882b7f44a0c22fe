package projection

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Geometry projects every vertex of g and keeps its structure. The input is
// not modified.
func (p *Projector) Geometry(g orb.Geometry) (orb.Geometry, error) {
	switch g := g.(type) {
	case nil:
		return nil, nil
	case orb.Point:
		return p.Point(g[0], g[1])
	case orb.MultiPoint:
		return p.points(g)
	case orb.LineString:
		pts, err := p.points(g)
		return orb.LineString(pts), err
	case orb.MultiLineString:
		out := make(orb.MultiLineString, 0, len(g))
		for _, ls := range g {
			pts, err := p.points(ls)
			if err != nil {
				return nil, err
			}
			out = append(out, orb.LineString(pts))
		}
		return out, nil
	case orb.Ring:
		pts, err := p.points(g)
		return orb.Ring(pts), err
	case orb.Polygon:
		return p.polygon(g)
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, 0, len(g))
		for _, poly := range g {
			pp, err := p.polygon(poly)
			if err != nil {
				return nil, err
			}
			out = append(out, pp)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported geometry %T", g)
	}
}

func (p *Projector) polygon(poly orb.Polygon) (orb.Polygon, error) {
	out := make(orb.Polygon, 0, len(poly))
	for _, r := range poly {
		pts, err := p.points(r)
		if err != nil {
			return nil, err
		}
		out = append(out, orb.Ring(pts))
	}
	return out, nil
}

func (p *Projector) points(in []orb.Point) (orb.MultiPoint, error) {
	out := make(orb.MultiPoint, 0, len(in))
	for _, pt := range in {
		q, err := p.Point(pt[0], pt[1])
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}
