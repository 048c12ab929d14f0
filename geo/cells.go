package geo

import (
	"github.com/golang/geo/s2"
)

// Loop converts r into an s2.Loop, treating X as the longitude and Y as
// the latitude in degrees. Clockwise rings are reversed, as s2 expects the
// interior of a loop to be on its left.
func (r Ring) Loop() *s2.Loop {
	if !r.IsCCW() {
		r = r.Reverse()
	}

	pts := make([]s2.Point, 0, len(r))
	for _, p := range r {
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(p.Y, p.X)))
	}
	return s2.LoopFromPoints(pts)
}

// Fit appends the cells approximating the surface covered by the ring to
// acc, with the smallest cell being maxLevel. The result is not normalised.
func (r Ring) Fit(acc s2.CellUnion, maxLevel int) s2.CellUnion {
	FitLoopDo(r.Loop(), maxLevel, func(cellID s2.CellID) bool {
		acc = append(acc, cellID)
		return true
	})
	return acc
}

// Cells returns a normalised union of cells approximating the outer rings,
// with the smallest cell being maxLevel. Inner rings are not subtracted.
func (m *MultiPolygon) Cells(maxLevel int) s2.CellUnion {
	var acc s2.CellUnion
	for _, outer := range m.rings.outers {
		acc = outer.Fit(acc, maxLevel)
	}
	acc.Normalize()
	return acc
}

// FitLoopDo iterates over the cells covering a loop, with the smallest
// cell being maxLevel. Return false in the iterator to stop.
func FitLoopDo(loop *s2.Loop, maxLevel int, fn func(s2.CellID) bool) {
	for face := 0; face < 6; face++ {
		if !fitLoopDo(loop, s2.CellIDFromFace(face), maxLevel, fn) {
			return
		}
	}
}

func fitLoopDo(loop *s2.Loop, cellID s2.CellID, maxLevel int, fn func(s2.CellID) bool) bool {
	cell := s2.CellFromCellID(cellID)

	switch {
	case loop.ContainsCell(cell):
		return fn(cellID)
	case !loop.IntersectsCell(cell):
		return true
	case cell.Level() >= maxLevel:
		return fn(cellID)
	}

	for _, childID := range cellID.Children() {
		if !fitLoopDo(loop, childID, maxLevel, fn) {
			return false
		}
	}
	return true
}
