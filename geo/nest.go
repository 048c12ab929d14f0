package geo

// NestRings builds a RingMap from unclassified rings. Rings enclosed by an
// even number of other rings become outers, oriented counter-clockwise;
// the others become inners, oriented clockwise and attached to the
// smallest ring enclosing them. Rings with less than three distinct points
// are skipped.
func NestRings(rings []Ring) *RingMap {
	valid := make([]Ring, 0, len(rings))
	for _, r := range rings {
		if ValidateRing(r) == nil {
			valid = append(valid, r)
		}
	}

	depth := make([]int, len(valid))
	parent := make([]int, len(valid))
	for i, r := range valid {
		parent[i] = -1
		for j, o := range valid {
			if i == j || !o.ContainsRing(r) {
				continue
			}
			depth[i]++
			if p := parent[i]; p < 0 || o.Area() < valid[p].Area() {
				parent[i] = j
			}
		}
	}

	oriented := make([]Ring, len(valid))
	for i, r := range valid {
		if outer := depth[i]%2 == 0; outer != r.IsCCW() {
			r = r.Reverse()
		}
		oriented[i] = r
	}

	res := NewRingMap()
	for i, r := range oriented {
		if depth[i]%2 == 0 {
			res.Add(r)
		}
	}
	for i, r := range oriented {
		if depth[i]%2 == 1 {
			res.Add(oriented[parent[i]], r)
		}
	}
	return res
}

// AttachHoles builds a RingMap from classified rings. Each inner is
// attached to the smallest outer that encloses it. It returns
// ErrOrphanHole if an inner is not enclosed by any outer.
func AttachHoles(outers, inners []Ring) (*RingMap, error) {
	res := NewRingMap()
	for _, outer := range outers {
		res.Add(outer)
	}

	for _, inner := range inners {
		pos := -1
		for i, outer := range outers {
			if outer.ContainsRing(inner) && (pos < 0 || outer.Area() < outers[pos].Area()) {
				pos = i
			}
		}
		if pos < 0 {
			return nil, ErrOrphanHole
		}
		res.Add(outers[pos], inner)
	}
	return res, nil
}
