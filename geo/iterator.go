package geo

// Role denotes whether a ring is an outer or an inner ring.
type Role uint8

const (
	RoleOuter Role = iota + 1
	RoleInner
)

// String implements fmt.Stringer.
func (r Role) String() string {
	switch r {
	case RoleOuter:
		return "outer"
	case RoleInner:
		return "inner"
	}
	return "unknown"
}

// ParseRole parses a role name, as returned by Role.String.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "outer":
		return RoleOuter, true
	case "inner":
		return RoleInner, true
	}
	return 0, false
}

// Feature is a ring along with its role and optional tags, as exposed to
// encoders.
type Feature struct {
	Ring Ring
	Role Role
	Tags map[string]string
}

// Iterator iterates over the rings of a MultiPolygon: first all outers in
// insertion order, then the inners of each outer, in the same order.
type Iterator struct {
	rings *RingMap

	outer int // next outer position
	hkey  int // current key position of the inner phase
	hpos  int // next inner position within hkey

	ring Ring
	role Role
}

// Next advances the cursor to the next ring.
func (it *Iterator) Next() bool {
	if it.outer < it.rings.Len() {
		it.ring, it.role = it.rings.outers[it.outer], RoleOuter
		it.outer++
		return true
	}

	for it.hkey < it.rings.Len() {
		if hs := it.rings.holes[it.hkey]; it.hpos < len(hs) {
			it.ring, it.role = hs[it.hpos], RoleInner
			it.hpos++
			return true
		}
		it.hkey++
		it.hpos = 0
	}

	it.ring, it.role = nil, 0
	return false
}

// Ring returns the current ring.
func (it *Iterator) Ring() Ring { return it.ring }

// Role returns the role of the current ring.
func (it *Iterator) Role() Role { return it.role }

// Feature returns the current ring as a Feature with empty tags.
func (it *Iterator) Feature() Feature {
	return Feature{Ring: it.ring, Role: it.role, Tags: map[string]string{}}
}

// Reset rewinds the iterator to the first outer ring.
func (it *Iterator) Reset() {
	*it = Iterator{rings: it.rings}
}
