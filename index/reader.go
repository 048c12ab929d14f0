package index

import (
	"encoding/binary"

	"github.com/bsm/georegion/encoding/compact"
	"github.com/bsm/georegion/geo"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/s2"
)

// Reader queries an index.
type Reader struct {
	store    StoreReader
	maxLevel int
}

// NewReader wraps a store written by a Writer.
func NewReader(store StoreReader) (*Reader, error) {
	meta, err := store.Get([]byte(metaKey))
	if err != nil {
		return nil, err
	}

	maxLevel, sz := binary.Uvarint(meta)
	if sz <= 0 || maxLevel > s2.MaxLevel {
		return nil, errBadMeta
	}
	return &Reader{store: store, maxLevel: int(maxLevel)}, nil
}

// MaxLevel returns the maximum level of the covering cells.
func (r *Reader) MaxLevel() int { return r.maxLevel }

// Region returns a region by name.
func (r *Reader) Region(name string) (*geo.MultiPolygon, error) {
	val, err := r.store.Get(regionKey(name))
	if err != nil {
		return nil, err
	} else if val == nil {
		return nil, ErrNotFound
	}

	s, err := decodeRegion(val)
	if err != nil {
		return nil, err
	}
	return compact.Unmarshal(s)
}

// Candidates returns the names of all regions covering the cell of p,
// with X as the longitude and Y as the latitude. Candidates may not
// contain p.
func (r *Reader) Candidates(p r2.Point) ([]string, error) {
	leaf := s2.CellIDFromLatLng(s2.LatLngFromDegrees(p.Y, p.X))

	var names []string
	seen := make(map[string]struct{})
	for level := 0; level <= r.maxLevel; level++ {
		val, err := r.store.Get(cellKey(leaf.Parent(level)))
		if err != nil {
			return nil, err
		} else if val == nil {
			continue
		}

		found, err := decodeNames(val)
		if err != nil {
			return nil, err
		}
		for _, name := range found {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// Lookup returns the names of all regions containing p, see
// geo.MultiPolygon.ContainsPoint.
func (r *Reader) Lookup(p r2.Point) ([]string, error) {
	candidates, err := r.Candidates(p)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, name := range candidates {
		m, err := r.Region(name)
		if err != nil {
			return nil, err
		}
		if m.ContainsPoint(p) {
			names = append(names, name)
		}
	}
	return names, nil
}

// Close closes the underlying store.
func (r *Reader) Close() error { return r.store.Close() }
