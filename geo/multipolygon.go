package geo

import (
	"strings"
	"sync/atomic"

	"github.com/golang/geo/r2"
)

// MultiPolygon is a set of outer rings, each with zero or more inner rings
// (holes). The area it covers is the outers minus the inners.
//
// MultiPolygons are immutable: combining two always yields a new instance.
type MultiPolygon struct {
	rings  *RingMap
	bounds atomic.Pointer[r2.Rect]
}

// New wraps rings. The map is owned by the MultiPolygon from here on and
// must not be modified by the caller.
func New(rings *RingMap) *MultiPolygon {
	if rings == nil {
		rings = NewRingMap()
	}
	return &MultiPolygon{rings: rings}
}

// ForRing returns a MultiPolygon with a single outer and no holes.
func ForRing(outer Ring) *MultiPolygon {
	rings := NewRingMap()
	rings.Put(outer, nil)
	return New(rings)
}

// Maximum returns a MultiPolygon that covers the whole lng/lat plane.
func Maximum() *MultiPolygon {
	return ForRing(Ring{
		{X: -180, Y: -90},
		{X: 180, Y: -90},
		{X: 180, Y: 90},
		{X: -180, Y: 90},
	})
}

// Outers returns the outer rings.
func (m *MultiPolygon) Outers() []Ring { return m.rings.Keys() }

// Inners returns the inner rings of all outers.
func (m *MultiPolygon) Inners() []Ring { return m.rings.AllValues() }

// InnersOf returns the inner rings of a particular outer. It returns an
// empty result if outer is not part of m.
func (m *MultiPolygon) InnersOf(outer Ring) []Ring { return m.rings.ValuesFor(outer) }

// NumOuters returns the number of outer rings.
func (m *MultiPolygon) NumOuters() int { return m.rings.Len() }

// NumInners returns the number of inner rings.
func (m *MultiPolygon) NumInners() int {
	var n int
	for _, hs := range m.rings.holes {
		n += len(hs)
	}
	return n
}

// IsEmpty returns true if there are no outer rings.
func (m *MultiPolygon) IsEmpty() bool { return m.rings.Len() == 0 }

// Rings returns a copy of the underlying ring map.
func (m *MultiPolygon) Rings() *RingMap { return m.rings.Clone() }

// Bounds returns the smallest rectangle enclosing all points of all rings,
// inner rings included. It is calculated once.
func (m *MultiPolygon) Bounds() r2.Rect {
	if rect := m.bounds.Load(); rect != nil {
		return *rect
	}

	rect := r2.EmptyRect()
	m.Do(func(r Ring, _ Role) {
		rect = rect.Union(r.Bounds())
	})
	m.bounds.Store(&rect)
	return rect
}

// Surface returns the sum of the outer areas minus the sum of the inner areas.
func (m *MultiPolygon) Surface() float64 {
	var sum float64
	m.Do(func(r Ring, role Role) {
		if role == RoleOuter {
			sum += r.Area()
		} else {
			sum -= r.Area()
		}
	})
	return sum
}

// ContainsPoint returns true if p is within an outer ring and not within
// any of the inner rings. Inner rings are checked first and apply
// regardless of the outer they belong to.
func (m *MultiPolygon) ContainsPoint(p r2.Point) bool {
	if !m.Bounds().ContainsPoint(p) {
		return false
	}

	for _, hs := range m.rings.holes {
		for _, inner := range hs {
			if inner.ContainsPoint(p) {
				return false
			}
		}
	}
	for _, outer := range m.rings.outers {
		if outer.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// Overlaps returns true if at least one point of the polyline is contained
// by m, see ContainsPoint.
func (m *MultiPolygon) Overlaps(pl Polyline) bool {
	for _, p := range pl {
		if m.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// ContainsPolyline returns true if no inner ring overlaps the polyline and
// at least one outer ring contains it entirely.
func (m *MultiPolygon) ContainsPolyline(pl Polyline) bool {
	for _, hs := range m.rings.holes {
		for _, inner := range hs {
			if inner.Overlaps(pl) {
				return false
			}
		}
	}
	for _, outer := range m.rings.outers {
		if outer.ContainsPolyline(pl) {
			return true
		}
	}
	return false
}

// Merge returns a new MultiPolygon with the rings of m and other. Outers
// present in both keep the inners of both.
func (m *MultiPolygon) Merge(other *MultiPolygon) *MultiPolygon {
	rings := m.rings.Clone()
	rings.AddAll(other.rings)
	return New(rings)
}

// Concatenate returns a new MultiPolygon with the rings of m and other.
// Outers present in both keep the inners of other only.
func (m *MultiPolygon) Concatenate(other *MultiPolygon) *MultiPolygon {
	rings := m.rings.Clone()
	rings.PutAll(other.rings)
	return New(rings)
}

// Clip returns a clip request of m against clipping. Use Clip.Resolve to
// obtain the result.
func (m *MultiPolygon) Clip(clipping *MultiPolygon, t ClipType) *Clip {
	return NewClip(t, m, clipping)
}

// Equal returns true if both have the same outers and every outer has the
// same number of inners, each of which is found in the other.
func (m *MultiPolygon) Equal(other *MultiPolygon) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.rings.Len() != other.rings.Len() {
		return false
	}

	for i, outer := range m.rings.outers {
		pos, ok := other.rings.find(outer)
		if !ok {
			return false
		}

		mine, theirs := m.rings.holes[i], other.rings.holes[pos]
		if len(mine) != len(theirs) {
			return false
		}
		for _, inner := range mine {
			if !containsEqual(theirs, inner) {
				return false
			}
		}
	}
	return true
}

// Hash returns the sum of the hashes of all rings.
func (m *MultiPolygon) Hash() uint64 {
	var sum uint64
	m.Do(func(r Ring, _ Role) { sum += r.Hash() })
	return sum
}

// Iterate returns an iterator over all rings, outers first.
func (m *MultiPolygon) Iterate() *Iterator { return &Iterator{rings: m.rings} }

// Do calls fn for each ring, outers first.
func (m *MultiPolygon) Do(fn func(Ring, Role)) {
	for it := m.Iterate(); it.Next(); {
		fn(it.Ring(), it.Role())
	}
}

// Features returns the rings with their roles, outers first.
func (m *MultiPolygon) Features() []Feature {
	res := make([]Feature, 0, m.NumOuters()+m.NumInners())
	for it := m.Iterate(); it.Next(); {
		res = append(res, it.Feature())
	}
	return res
}

// CompactString returns the compact representation. Polygons are separated
// by '#', the rings of a polygon by '&' (outer first), points by ':'.
func (m *MultiPolygon) CompactString() string {
	var b strings.Builder
	for i, outer := range m.rings.outers {
		if i != 0 {
			b.WriteByte('#')
		}
		outer.appendCompact(&b)
		for _, inner := range m.rings.holes[i] {
			b.WriteByte('&')
			inner.appendCompact(&b)
		}
	}
	return b.String()
}

const simpleStringLen = 200

// SimpleString returns the compact representation, truncated to 200
// characters.
func (m *MultiPolygon) SimpleString() string {
	s := m.CompactString()
	if len(s) > simpleStringLen+1 {
		return s[:simpleStringLen] + "..."
	}
	return s
}

// ReadableString returns a multi-line representation, one outer per line
// followed by its inners.
func (m *MultiPolygon) ReadableString() string {
	outers := make([]string, 0, m.rings.Len())
	for i, outer := range m.rings.outers {
		inners := make([]string, 0, len(m.rings.holes[i]))
		for _, inner := range m.rings.holes[i] {
			inners = append(inners, "Inner: "+inner.String())
		}
		outers = append(outers, "Outer: "+outer.String()+"\n\t\t"+strings.Join(inners, "\n\t\t"))
	}
	return strings.Join(outers, "\n\t")
}

// String implements fmt.Stringer.
func (m *MultiPolygon) String() string { return m.ReadableString() }

func containsEqual(rings []Ring, r Ring) bool {
	for _, x := range rings {
		if x.Equal(r) {
			return true
		}
	}
	return false
}
