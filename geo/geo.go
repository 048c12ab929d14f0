// Package geo implements multi-ring polygons: sets of outer rings, each
// paired with zero or more inner rings (holes).
//
// Rings are planar. Where a geographic interpretation is required, for
// example when covering a ring with s2 cells, X is treated as the longitude
// and Y as the latitude, both in degrees.
package geo

import (
	"errors"
	"math"

	"github.com/golang/geo/r2"
)

var (
	// ErrShortRing is returned when a ring has fewer than three distinct points.
	ErrShortRing = errors.New("geo: ring must have at least three distinct points")
	// ErrOrphanHole is returned when an inner ring is not enclosed by any outer.
	ErrOrphanHole = errors.New("geo: inner ring is not enclosed by any outer ring")
)

// epsilon used by the orientation predicates.
const epsilon = 1e-12

// cross returns the z component of (b-a) x (c-a).
func cross(a, b, c r2.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func orientation(a, b, c r2.Point) int {
	switch v := cross(a, b, c); {
	case v > epsilon:
		return 1
	case v < -epsilon:
		return -1
	}
	return 0
}

// onSegment reports whether p lies on the closed segment ab.
func onSegment(p, a, b r2.Point) bool {
	if math.Abs(cross(a, b, p)) > epsilon {
		return false
	}
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// segmentsIntersect reports whether the closed segments ab and cd share at
// least one point.
func segmentsIntersect(a, b, c, d r2.Point) bool {
	o1, o2 := orientation(a, b, c), orientation(a, b, d)
	o3, o4 := orientation(c, d, a), orientation(c, d, b)

	if o1 != o2 && o3 != o4 {
		return true
	}
	return (o1 == 0 && onSegment(c, a, b)) ||
		(o2 == 0 && onSegment(d, a, b)) ||
		(o3 == 0 && onSegment(a, c, d)) ||
		(o4 == 0 && onSegment(b, c, d))
}

func boundsOf(pts []r2.Point) r2.Rect {
	rect := r2.EmptyRect()
	for _, p := range pts {
		rect = rect.AddPoint(p)
	}
	return rect
}
