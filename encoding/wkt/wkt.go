// Package wkt encodes and decodes multipolygons as Well Known Text.
package wkt

import (
	"fmt"

	"github.com/bsm/georegion/geo"
	"github.com/bsm/georegion/internal/geomconv"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// Marshal returns the MULTIPOLYGON representation of m.
func Marshal(m *geo.MultiPolygon) (string, error) {
	g, err := geomconv.ToGeom(m)
	if err != nil {
		return "", fmt.Errorf("wkt: %w", err)
	}
	return wkt.Marshal(g)
}

// Unmarshal parses a POLYGON or MULTIPOLYGON.
func Unmarshal(s string) (*geo.MultiPolygon, error) {
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}

	m, err := geomconv.FromGeom(g)
	if err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}
	return m, nil
}
