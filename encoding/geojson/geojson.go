// Package geojson encodes multipolygons as GeoJSON feature collections with
// one Polygon feature per ring.
package geojson

import (
	"errors"
	"fmt"

	"github.com/bsm/georegion/geo"
	"github.com/golang/geo/r2"
	geojson "github.com/paulmach/go.geojson"
)

// RoleProperty is the feature property holding the ring role.
const RoleProperty = "MultiPolygon"

var errNoGeometry = errors.New("geojson: feature without geometry")

// Option configures Marshal.
type Option func(*options)

type options struct {
	roles bool
}

// WithRoles tags each feature with its role, see RoleProperty.
func WithRoles() Option {
	return func(o *options) { o.roles = true }
}

// Marshal encodes m as a FeatureCollection. Outers are emitted first.
func Marshal(m *geo.MultiPolygon, opts ...Option) ([]byte, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	fc := geojson.NewFeatureCollection()
	for _, feat := range m.Features() {
		f := geojson.NewPolygonFeature([][][]float64{closedCoords(feat.Ring)})
		for k, v := range feat.Tags {
			f.SetProperty(k, v)
		}
		if o.roles {
			f.SetProperty(RoleProperty, feat.Role.String())
		}
		fc.AddFeature(f)
	}
	return fc.MarshalJSON()
}

// Unmarshal decodes a FeatureCollection.
//
// Polygon features with more than one ring and all MultiPolygon features
// contribute an outer ring followed by its inners. Single-ring Polygon
// features tagged with a role are attached by containment, untagged ones
// are classified by nesting depth.
func Unmarshal(data []byte) (*geo.MultiPolygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}

	var (
		rings    = geo.NewRingMap()
		outers   []geo.Ring
		inners   []geo.Ring
		untagged []geo.Ring
	)
	for _, f := range fc.Features {
		g := f.Geometry
		if g == nil {
			return nil, errNoGeometry
		}

		switch {
		case g.IsPolygon() && len(g.Polygon) == 1:
			ring, err := parseRing(g.Polygon[0])
			if err != nil {
				return nil, err
			}

			name, _ := f.PropertyString(RoleProperty)
			switch role, _ := geo.ParseRole(name); role {
			case geo.RoleOuter:
				outers = append(outers, ring)
			case geo.RoleInner:
				inners = append(inners, ring)
			default:
				untagged = append(untagged, ring)
			}
		case g.IsPolygon():
			outer, err := addPolygon(rings, g.Polygon)
			if err != nil {
				return nil, err
			}
			if outer != nil {
				outers = append(outers, outer)
			}
		case g.IsMultiPolygon():
			for _, poly := range g.MultiPolygon {
				outer, err := addPolygon(rings, poly)
				if err != nil {
					return nil, err
				}
				if outer != nil {
					outers = append(outers, outer)
				}
			}
		default:
			return nil, fmt.Errorf("geojson: unsupported geometry type %q", g.Type)
		}
	}

	attached, err := geo.AttachHoles(outers, inners)
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	rings.AddAll(attached)
	rings.AddAll(geo.NestRings(untagged))
	return geo.New(rings), nil
}

func addPolygon(rings *geo.RingMap, poly [][][]float64) (geo.Ring, error) {
	if len(poly) == 0 {
		return nil, nil
	}

	outer, err := parseRing(poly[0])
	if err != nil {
		return nil, err
	}

	holes := make([]geo.Ring, 0, len(poly)-1)
	for _, coords := range poly[1:] {
		hole, err := parseRing(coords)
		if err != nil {
			return nil, err
		}
		holes = append(holes, hole)
	}
	rings.Add(outer, holes...)
	return outer, nil
}

func parseRing(coords [][]float64) (geo.Ring, error) {
	pts := make([]r2.Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("geojson: bad position %v", c)
		}
		pts = append(pts, r2.Point{X: c[0], Y: c[1]})
	}

	ring := geo.RingFromPoints(pts...)
	if err := geo.ValidateRing(ring); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	return ring, nil
}

func closedCoords(r geo.Ring) [][]float64 {
	coords := make([][]float64, 0, len(r)+1)
	for _, p := range r {
		coords = append(coords, []float64{p.X, p.Y})
	}
	if len(r) != 0 {
		coords = append(coords, []float64{r[0].X, r[0].Y})
	}
	return coords
}
