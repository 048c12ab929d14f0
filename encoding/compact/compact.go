// Package compact encodes and decodes multipolygons in a compact string
// form:
//
//	x,y:x,y:x,y&x,y:x,y:x,y#x,y:x,y:x,y
//
// Polygons are separated by '#'. Each polygon is a sequence of rings
// separated by '&', the first being the outer and all others its inners.
// Points are separated by ':'.
package compact

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bsm/georegion/geo"
	"github.com/golang/geo/r2"
)

const (
	polygonSep = "#"
	ringSep    = "&"
	pointSep   = ":"
	coordSep   = ","
)

// Marshal returns the compact representation of m.
func Marshal(m *geo.MultiPolygon) string {
	return m.CompactString()
}

// Unmarshal parses a compact string. Inners of repeated outers are
// accumulated.
func Unmarshal(s string) (*geo.MultiPolygon, error) {
	rings := geo.NewRingMap()

	s = strings.TrimSpace(s)
	if s == "" {
		return geo.New(rings), nil
	}

	for _, poly := range strings.Split(s, polygonSep) {
		parts := strings.Split(poly, ringSep)

		outer, err := parseRing(parts[0])
		if err != nil {
			return nil, err
		}

		inners := make([]geo.Ring, 0, len(parts)-1)
		for _, part := range parts[1:] {
			inner, err := parseRing(part)
			if err != nil {
				return nil, err
			}
			inners = append(inners, inner)
		}
		rings.Add(outer, inners...)
	}
	return geo.New(rings), nil
}

// UnmarshalRing parses a single ring.
func UnmarshalRing(s string) (geo.Ring, error) {
	return parseRing(strings.TrimSpace(s))
}

func parseRing(s string) (geo.Ring, error) {
	tokens := strings.Split(s, pointSep)
	pts := make([]r2.Point, 0, len(tokens))
	for _, tok := range tokens {
		p, err := parsePoint(tok)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}

	ring := geo.RingFromPoints(pts...)
	if err := geo.ValidateRing(ring); err != nil {
		return nil, fmt.Errorf("compact: bad ring %q: %w", s, err)
	}
	return ring, nil
}

func parsePoint(s string) (r2.Point, error) {
	xs, ys, ok := strings.Cut(s, coordSep)
	if !ok {
		return r2.Point{}, fmt.Errorf("compact: bad point %q", s)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return r2.Point{}, fmt.Errorf("compact: bad point %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return r2.Point{}, fmt.Errorf("compact: bad point %q", s)
	}
	return r2.Point{X: x, Y: y}, nil
}
