package tiletest

import "google.golang.org/protobuf/encoding/protowire"

// Geometry command ids.
const (
	MoveTo    = 1
	LineTo    = 2
	ClosePath = 7
)

// Command builds a command header.
func Command(id, count uint32) uint32 {
	return (id & 0x7) | (count << 3)
}

// Param zigzag-encodes one delta parameter.
func Param(d int32) uint32 {
	return uint32(protowire.EncodeZigZag(int64(d)))
}

// Geom builds a command stream from absolute tile coordinates.
type Geom struct {
	cmds   []uint32
	cx, cy int32
}

// NewGeom starts an empty command stream with the cursor at the origin.
func NewGeom() *Geom { return &Geom{} }

// MoveTo appends one MoveTo command with a parameter pair per point.
func (g *Geom) MoveTo(pts ...[2]int32) *Geom { return g.cmd(MoveTo, pts) }

// LineTo appends one LineTo command with a parameter pair per point.
func (g *Geom) LineTo(pts ...[2]int32) *Geom { return g.cmd(LineTo, pts) }

// ClosePath appends a ClosePath command.
func (g *Geom) ClosePath() *Geom {
	g.cmds = append(g.cmds, Command(ClosePath, 1))
	return g
}

// Ring appends MoveTo, LineTo and ClosePath for a ring given without its closing point.
func (g *Geom) Ring(pts ...[2]int32) *Geom {
	return g.MoveTo(pts[0]).LineTo(pts[1:]...).ClosePath()
}

// Commands returns the encoded stream.
func (g *Geom) Commands() []uint32 { return g.cmds }

func (g *Geom) cmd(id uint32, pts [][2]int32) *Geom {
	g.cmds = append(g.cmds, Command(id, uint32(len(pts))))
	for _, p := range pts {
		g.cmds = append(g.cmds, Param(p[0]-g.cx), Param(p[1]-g.cy))
		g.cx, g.cy = p[0], p[1]
	}
	return g
}
