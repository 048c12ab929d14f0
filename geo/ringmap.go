package geo

import "slices"

// RingMap is an ordered mapping of outer rings to their holes. Outer rings
// are compared by value and keep their insertion order.
// The zero value is ready to use.
type RingMap struct {
	outers []Ring
	holes  [][]Ring
	index  map[uint64][]int // ring hash -> positions
}

// NewRingMap inits an empty RingMap.
func NewRingMap() *RingMap {
	return &RingMap{index: make(map[uint64][]int)}
}

// Len returns the number of outer rings.
func (m *RingMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.outers)
}

// Contains returns true if outer is a key.
func (m *RingMap) Contains(outer Ring) bool {
	_, ok := m.find(outer)
	return ok
}

// Put sets the holes of outer, replacing any existing ones.
func (m *RingMap) Put(outer Ring, holes []Ring) {
	if holes == nil {
		holes = []Ring{}
	}

	if pos, ok := m.find(outer); ok {
		m.holes[pos] = holes
		return
	}
	m.insert(outer, holes)
}

// Add appends holes to outer, inserting outer if it is not yet a key.
func (m *RingMap) Add(outer Ring, holes ...Ring) {
	if pos, ok := m.find(outer); ok {
		m.holes[pos] = append(slices.Clip(m.holes[pos]), holes...)
		return
	}
	m.insert(outer, append([]Ring{}, holes...))
}

// AddAll accumulates other into m: holes of outers present in both are
// appended to m's, without removing duplicates.
func (m *RingMap) AddAll(other *RingMap) {
	for i := 0; i < other.Len(); i++ {
		m.Add(other.outers[i], other.holes[i]...)
	}
}

// PutAll overlays other onto m: holes of outers present in both are
// replaced with other's.
func (m *RingMap) PutAll(other *RingMap) {
	for i := 0; i < other.Len(); i++ {
		m.Put(other.outers[i], slices.Clip(other.holes[i]))
	}
}

// Keys returns the outer rings in insertion order.
func (m *RingMap) Keys() []Ring {
	if m == nil {
		return nil
	}
	return slices.Clone(m.outers)
}

// ValuesFor returns the holes of outer. It returns an empty result if outer
// is not a key.
func (m *RingMap) ValuesFor(outer Ring) []Ring {
	if pos, ok := m.find(outer); ok {
		return slices.Clone(m.holes[pos])
	}
	return nil
}

// AllValues returns the holes of all outers, flattened in key order.
func (m *RingMap) AllValues() []Ring {
	var n int
	for i := 0; i < m.Len(); i++ {
		n += len(m.holes[i])
	}

	res := make([]Ring, 0, n)
	for i := 0; i < m.Len(); i++ {
		res = append(res, m.holes[i]...)
	}
	return res
}

// Clone returns a copy of m. Adding to the copy never affects m.
func (m *RingMap) Clone() *RingMap {
	c := NewRingMap()
	if m == nil {
		return c
	}

	c.outers = slices.Clone(m.outers)
	c.holes = make([][]Ring, len(m.holes))
	for i, hs := range m.holes {
		c.holes[i] = slices.Clip(hs)
	}
	for h, pos := range m.index {
		c.index[h] = slices.Clone(pos)
	}
	return c
}

func (m *RingMap) find(outer Ring) (int, bool) {
	if m == nil {
		return -1, false
	}

	for _, pos := range m.index[outer.Hash()] {
		if m.outers[pos].Equal(outer) {
			return pos, true
		}
	}
	return -1, false
}

func (m *RingMap) insert(outer Ring, holes []Ring) {
	if m.index == nil {
		m.index = make(map[uint64][]int)
	}

	h := outer.Hash()
	m.index[h] = append(m.index[h], len(m.outers))
	m.outers = append(m.outers, outer)
	m.holes = append(m.holes, holes)
}
