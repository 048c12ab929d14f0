// Package clip implements boolean operations on multipolygons on top of
// github.com/ctessum/polyclip-go.
package clip

import (
	"errors"

	"github.com/bsm/georegion/geo"
	"github.com/ctessum/polyclip-go"
	"github.com/golang/geo/r2"
)

// ErrUnknownClipType is returned for unsupported clip types.
var ErrUnknownClipType = errors.New("clip: unknown clip type")

var ops = map[geo.ClipType]polyclip.Op{
	geo.ClipUnion:        polyclip.UNION,
	geo.ClipIntersection: polyclip.INTERSECTION,
	geo.ClipDifference:   polyclip.DIFFERENCE,
	geo.ClipXOR:          polyclip.XOR,
}

// Engine is a geo.Clipper. Rings of both operands are treated with the
// even-odd rule. In the results, outers are counter-clockwise and inners
// are clockwise and attached to the smallest outer enclosing them.
type Engine struct{}

// Clip implements geo.Clipper.
func (Engine) Clip(req *geo.Clip) (*geo.RingMap, error) {
	op, ok := ops[req.Type]
	if !ok {
		return nil, ErrUnknownClipType
	}

	subject := toPolyclip(req.Subject)
	clipping := toPolyclip(req.Clipping)
	return fromPolyclip(subject.Construct(op, clipping)), nil
}

// Apply resolves a clip of subject against clipping.
func Apply(subject, clipping *geo.MultiPolygon, t geo.ClipType) (*geo.MultiPolygon, error) {
	return subject.Clip(clipping, t).Resolve(Engine{})
}

func toPolyclip(m *geo.MultiPolygon) polyclip.Polygon {
	if m == nil {
		return nil
	}

	poly := make(polyclip.Polygon, 0, m.NumOuters()+m.NumInners())
	m.Do(func(r geo.Ring, _ geo.Role) {
		contour := make(polyclip.Contour, 0, len(r))
		for _, p := range r {
			contour = append(contour, polyclip.Point{X: p.X, Y: p.Y})
		}
		poly = append(poly, contour)
	})
	return poly
}

func fromPolyclip(poly polyclip.Polygon) *geo.RingMap {
	rings := make([]geo.Ring, 0, len(poly))
	for _, contour := range poly {
		pts := make([]r2.Point, 0, len(contour))
		for _, p := range contour {
			pts = append(pts, r2.Point{X: p.X, Y: p.Y})
		}
		rings = append(rings, geo.RingFromPoints(pts...))
	}
	return geo.NestRings(rings)
}
