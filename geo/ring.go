package geo

import (
	"encoding/binary"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/golang/geo/r2"
)

// Ring is a closed ring of points. The closing edge between the last and
// the first point is implicit, the first point is never repeated.
// Rings are values: once built they are shared, never modified.
type Ring []r2.Point

// RingFromPoints creates a ring from points, dropping a trailing point
// that repeats the first one.
func RingFromPoints(pts ...r2.Point) Ring {
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}

	r := make(Ring, len(pts))
	copy(r, pts)
	return r
}

// ValidateRing returns ErrShortRing unless r has at least three distinct points.
func ValidateRing(r Ring) error {
	seen := make(map[r2.Point]struct{}, len(r))
	for _, p := range r {
		if seen[p] = struct{}{}; len(seen) == 3 {
			return nil
		}
	}
	return ErrShortRing
}

// ContainsPoint returns true if p is inside the ring or on its boundary.
func (r Ring) ContainsPoint(p r2.Point) bool {
	if len(r) < 3 {
		return false
	}

	in := false
	for i, a := range r {
		b := r[(i+1)%len(r)]
		if onSegment(p, a, b) {
			return true
		}
		// https://wrf.ecse.rpi.edu/Research/Short_Notes/pnpoly.html
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

// Overlaps returns true if the polyline shares at least one point with the
// area enclosed by the ring.
func (r Ring) Overlaps(pl Polyline) bool {
	for _, p := range pl {
		if r.ContainsPoint(p) {
			return true
		}
	}

	found := false
	pl.doSegments(func(a, b r2.Point) bool {
		r.doEdges(func(c, d r2.Point) bool {
			found = segmentsIntersect(a, b, c, d)
			return !found
		})
		return !found
	})
	return found
}

// ContainsPolyline returns true if every point and every segment of the
// polyline lies within the ring (boundary included).
func (r Ring) ContainsPolyline(pl Polyline) bool {
	if len(pl) == 0 || len(r) < 3 {
		return false
	}

	for _, p := range pl {
		if !r.ContainsPoint(p) {
			return false
		}
	}

	ok := true
	pl.doSegments(func(a, b r2.Point) bool {
		ok = r.containsSegment(a, b)
		return ok
	})
	return ok
}

// containsSegment splits ab wherever it meets an edge or a vertex of the
// ring and checks the midpoint of each piece. Both ends must be contained.
func (r Ring) containsSegment(a, b r2.Point) bool {
	ab := b.Sub(a)
	norm2 := ab.Dot(ab)
	if norm2 == 0 {
		return true
	}

	ts := []float64{0, 1}
	r.doEdges(func(c, d r2.Point) bool {
		for _, v := range [2]r2.Point{c, d} {
			if onSegment(v, a, b) {
				ts = append(ts, v.Sub(a).Dot(ab)/norm2)
			}
		}

		cd := d.Sub(c)
		if denom := ab.Cross(cd); math.Abs(denom) > epsilon {
			ac := c.Sub(a)
			t, u := ac.Cross(cd)/denom, ac.Cross(ab)/denom
			if t >= 0 && t <= 1 && u >= 0 && u <= 1 {
				ts = append(ts, t)
			}
		}
		return true
	})
	sort.Float64s(ts)

	for i := 1; i < len(ts); i++ {
		if ts[i]-ts[i-1] <= epsilon {
			continue
		}
		if !r.ContainsPoint(a.Add(ab.Mul((ts[i-1] + ts[i]) / 2))) {
			return false
		}
	}
	return true
}

// ContainsRing returns true if o is strictly smaller than r and all of its
// points are within r.
func (r Ring) ContainsRing(o Ring) bool {
	if len(o) == 0 || o.Area() >= r.Area() {
		return false
	}
	for _, p := range o {
		if !r.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// SignedArea returns the signed area of the ring, which is positive for
// counter-clockwise rings and negative for clockwise ones.
func (r Ring) SignedArea() float64 {
	var sum float64
	for i, a := range r {
		b := r[(i+1)%len(r)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area returns the unsigned area.
func (r Ring) Area() float64 { return math.Abs(r.SignedArea()) }

// IsCCW returns true if the ring is oriented counter-clockwise.
func (r Ring) IsCCW() bool { return r.SignedArea() > 0 }

// Reverse returns a copy of r with reversed point order.
func (r Ring) Reverse() Ring {
	rev := make(Ring, len(r))
	for i, p := range r {
		rev[len(r)-1-i] = p
	}
	return rev
}

// Bounds returns the bounding rectangle.
func (r Ring) Bounds() r2.Rect { return boundsOf(r) }

// Equal returns true if both rings have the same ordered sequence of points.
func (r Ring) Equal(o Ring) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if r[i] != o[i] {
			return false
		}
	}
	return true
}

// Hash returns a hash of the point sequence. Equal rings have equal hashes.
func (r Ring) Hash() uint64 {
	var buf [16]byte

	d := xxhash.New()
	for _, p := range r {
		binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(p.X+0)) // +0 folds -0 into 0
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Y+0))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// String returns the compact representation: "x,y:x,y:...".
func (r Ring) String() string {
	var b strings.Builder
	r.appendCompact(&b)
	return b.String()
}

func (r Ring) appendCompact(b *strings.Builder) {
	for i, p := range r {
		if i != 0 {
			b.WriteByte(':')
		}
		b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
}

// doEdges iterates over the edges of the ring, including the closing one.
// Return false in the iterator to stop.
func (r Ring) doEdges(fn func(a, b r2.Point) bool) {
	for i, a := range r {
		if !fn(a, r[(i+1)%len(r)]) {
			return
		}
	}
}

// --------------------------------------------------------------------

// Polyline is an open sequence of points.
type Polyline []r2.Point

// Bounds returns the bounding rectangle.
func (pl Polyline) Bounds() r2.Rect { return boundsOf(pl) }

// String returns the compact representation: "x,y:x,y:...".
func (pl Polyline) String() string { return Ring(pl).String() }

func (pl Polyline) doSegments(fn func(a, b r2.Point) bool) {
	for i := 1; i < len(pl); i++ {
		if !fn(pl[i-1], pl[i]) {
			return
		}
	}
}
