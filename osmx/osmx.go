// Package osmx builds multipolygons from OpenStreetMap multipolygon
// relations.
package osmx

import (
	"fmt"

	"github.com/bsm/georegion/geo"
	osm "github.com/glaslos/go-osm"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// memberPath is a chain of nodes taken from one or more ways of the same
// role. It may or may not be closed.
type memberPath struct {
	Role string
	Path []*osm.Node
}

func (p *memberPath) first() *osm.Node { return p.Path[0] }
func (p *memberPath) last() *osm.Node  { return p.Path[len(p.Path)-1] }
func (p *memberPath) firstID() int64   { return p.first().ID }
func (p *memberPath) lastID() int64    { return p.last().ID }

// IsClosed returns true if the path ends where it starts.
func (p *memberPath) IsClosed() bool { return p.firstID() == p.lastID() }

// IsValid returns true if the path has at least two nodes and an outer or
// inner role.
func (p *memberPath) IsValid() bool {
	_, ok := geo.ParseRole(p.Role)
	return ok && len(p.Path) > 1
}

// EdgeMerge joins o onto p if both share an end node. It returns true
// on success.
func (p *memberPath) EdgeMerge(o *memberPath) bool {
	if p.Role != o.Role {
		return false
	}

	switch {
	case p.lastID() == o.firstID():
		// p: a b c d, o: d e f g => a b c d e f g
		p.Path = append(p.Path, o.Path[1:]...)
	case p.firstID() == o.lastID():
		// p: d e f g, o: a b c d => a b c d e f g
		p.Path = append(o.Path, p.Path[1:]...)
	case p.firstID() == o.firstID():
		// p: d c b a, o: d e f g => a b c d e f g
		p.Path = append(p.reverse(), o.Path[1:]...)
	case p.lastID() == o.lastID():
		// p: a b c d, o: g f e d => a b c d e f g
		p.Path = append(p.Path, o.reverse()[1:]...)
	default:
		return false
	}
	return true
}

// mergeMode selects how ForceMerge joins two paths:
//
//	p: a b c, o: d e f
//
//	appendPath  => a b c d e f
//	prependPath => d e f a b c
//	reverseHead => c b a d e f
//	reverseTail => a b c f e d
type mergeMode int

const (
	appendPath mergeMode = iota + 1
	prependPath
	reverseHead
	reverseTail
)

// ForceMerge joins o onto p, regardless of shared nodes.
func (p *memberPath) ForceMerge(o *memberPath, mode mergeMode) {
	if p.Role != o.Role {
		return
	}

	switch mode {
	case appendPath:
		p.Path = append(p.Path, o.Path...)
	case prependPath:
		p.Path = append(o.Path, p.Path...)
	case reverseHead:
		p.Path = append(p.reverse(), o.Path...)
	case reverseTail:
		p.Path = append(p.Path, o.reverse()...)
	}
}

// MinEdgeDistance returns the smallest angular distance between the end
// nodes of p and o along with the merge mode that bridges it.
func (p *memberPath) MinEdgeDistance(o *memberPath) (min s1.Angle, mode mergeMode) {
	min = s1.InfAngle()
	if p.Role != o.Role {
		return min, mode
	}

	p1, p2 := nodePoint(p.first()), nodePoint(p.last())
	o1, o2 := nodePoint(o.first()), nodePoint(o.last())

	if d := p2.Distance(o1); d < min {
		min, mode = d, appendPath
	}
	if d := p1.Distance(o2); d < min {
		min, mode = d, prependPath
	}
	if d := p1.Distance(o1); d < min {
		min, mode = d, reverseHead
	}
	if d := p2.Distance(o2); d < min {
		min, mode = d, reverseTail
	}
	return min, mode
}

// Ring converts a closed path into a ring with X as the longitude and Y as
// the latitude. Outer rings are oriented counter-clockwise, inner rings
// clockwise.
func (p *memberPath) Ring() (geo.Ring, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("osmx: cannot build ring from an invalid path")
	} else if !p.IsClosed() {
		return nil, fmt.Errorf("osmx: cannot build ring from an open path")
	}

	pts := make([]r2.Point, 0, len(p.Path))
	for _, nd := range p.Path {
		pts = append(pts, r2.Point{X: nd.Lng, Y: nd.Lat})
	}

	ring := geo.RingFromPoints(pts...)
	if err := geo.ValidateRing(ring); err != nil {
		return nil, fmt.Errorf("osmx: node #%d: %w", p.firstID(), err)
	}

	if outer := p.Role == geo.RoleOuter.String(); outer != ring.IsCCW() {
		ring = ring.Reverse()
	}
	return ring, nil
}

// reverse reverses the node order in place.
func (p *memberPath) reverse() []*osm.Node {
	for i, j := 0, len(p.Path)-1; i < j; i, j = i+1, j-1 {
		p.Path[i], p.Path[j] = p.Path[j], p.Path[i]
	}
	return p.Path
}

func nodePoint(nd *osm.Node) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(nd.Lat, nd.Lng))
}

// --------------------------------------------------------------------

type pathSlice []*memberPath

// Reduce joins paths into closed chains. Paths sharing end nodes are
// joined first, the remaining open ones are bridged to their nearest
// neighbour and finally closed. Destructive!
func (s pathSlice) Reduce() pathSlice {
	for i, p := range s {
		if p != nil {
			s.mergeEdges(p, i+1)
		}
	}
	s = s.compact(false)

	for i, p := range s {
		if p != nil && !p.IsClosed() {
			s.mergeOpen(p, i+1)
		}
	}
	return s.compact(true)
}

// Rings converts all paths into rings, split by role.
func (s pathSlice) Rings() (outers, inners []geo.Ring, err error) {
	for _, p := range s {
		ring, err := p.Ring()
		if err != nil {
			return nil, nil, err
		}

		if p.Role == geo.RoleOuter.String() {
			outers = append(outers, ring)
		} else {
			inners = append(inners, ring)
		}
	}
	return outers, inners, nil
}

// compact removes nils and optionally closes open paths.
func (s pathSlice) compact(close bool) pathSlice {
	clean := s[:0]
	for _, p := range s {
		if p == nil {
			continue
		}
		if close && !p.IsClosed() {
			p.Path = append(p.Path, p.Path[0])
		}
		clean = append(clean, p)
	}
	return clean
}

func (s pathSlice) mergeEdges(p *memberPath, off int) {
	merged := false
	for i, x := range s[off:] {
		if x != nil && p.EdgeMerge(x) {
			s[i+off] = nil
			merged = true
		}
	}

	if merged {
		s.mergeEdges(p, off)
	}
}

func (s pathSlice) mergeOpen(p *memberPath, off int) {
	var (
		pos      = -1
		mode     mergeMode
		distance = s1.InfAngle()
	)

	for i, x := range s[off:] {
		if x == nil || x.IsClosed() {
			continue
		}
		if d, m := p.MinEdgeDistance(x); d < distance {
			distance, mode, pos = d, m, i
		}
	}

	if pos > -1 {
		p.ForceMerge(s[off+pos], mode)
		s[off+pos] = nil
		s.mergeOpen(p, off)
	}
}
