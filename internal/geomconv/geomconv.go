// Package geomconv converts between geo.MultiPolygon and go-geom types.
package geomconv

import (
	"fmt"

	"github.com/bsm/georegion/geo"
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"
)

// ToGeom converts m into a go-geom MultiPolygon with closed rings. Each
// outer becomes a polygon, followed by its inners.
func ToGeom(m *geo.MultiPolygon) (*geom.MultiPolygon, error) {
	outers := m.Outers()
	coords := make([][][]geom.Coord, 0, len(outers))
	for _, outer := range outers {
		inners := m.InnersOf(outer)
		poly := make([][]geom.Coord, 0, 1+len(inners))
		poly = append(poly, closedCoords(outer))
		for _, inner := range inners {
			poly = append(poly, closedCoords(inner))
		}
		coords = append(coords, poly)
	}
	return geom.NewMultiPolygon(geom.XY).SetCoords(coords)
}

// FromGeom converts a go-geom Polygon or MultiPolygon. The first ring of
// each polygon is the outer, subsequent rings are its inners. Inners of
// repeated outers are accumulated.
func FromGeom(g geom.T) (*geo.MultiPolygon, error) {
	rings := geo.NewRingMap()
	switch t := g.(type) {
	case *geom.Polygon:
		if err := addPolygon(rings, t); err != nil {
			return nil, err
		}
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			if err := addPolygon(rings, t.Polygon(i)); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("unsupported geometry type %T", g)
	}
	return geo.New(rings), nil
}

func addPolygon(rings *geo.RingMap, p *geom.Polygon) error {
	if p.NumLinearRings() == 0 {
		return nil
	}

	outer, err := ringFromCoords(p.LinearRing(0).Coords())
	if err != nil {
		return err
	}

	inners := make([]geo.Ring, 0, p.NumLinearRings()-1)
	for i := 1; i < p.NumLinearRings(); i++ {
		inner, err := ringFromCoords(p.LinearRing(i).Coords())
		if err != nil {
			return err
		}
		inners = append(inners, inner)
	}
	rings.Add(outer, inners...)
	return nil
}

func ringFromCoords(coords []geom.Coord) (geo.Ring, error) {
	pts := make([]r2.Point, 0, len(coords))
	for _, c := range coords {
		pts = append(pts, r2.Point{X: c.X(), Y: c.Y()})
	}

	ring := geo.RingFromPoints(pts...)
	if err := geo.ValidateRing(ring); err != nil {
		return nil, err
	}
	return ring, nil
}

func closedCoords(r geo.Ring) []geom.Coord {
	coords := make([]geom.Coord, 0, len(r)+1)
	for _, p := range r {
		coords = append(coords, geom.Coord{p.X, p.Y})
	}
	if len(r) != 0 {
		coords = append(coords, geom.Coord{r[0].X, r[0].Y})
	}
	return coords
}
