// Package wkb encodes and decodes multipolygons as Well Known Binary.
package wkb

import (
	"encoding/binary"
	"fmt"

	"github.com/bsm/georegion/geo"
	"github.com/bsm/georegion/internal/geomconv"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// Marshal returns the MULTIPOLYGON representation of m, using the given
// byte order (binary.LittleEndian for NDR, binary.BigEndian for XDR).
func Marshal(m *geo.MultiPolygon, byteOrder binary.ByteOrder) ([]byte, error) {
	g, err := geomconv.ToGeom(m)
	if err != nil {
		return nil, fmt.Errorf("wkb: %w", err)
	}
	return wkb.Marshal(g, byteOrder)
}

// Unmarshal parses a POLYGON or MULTIPOLYGON.
func Unmarshal(data []byte) (*geo.MultiPolygon, error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("wkb: %w", err)
	}

	m, err := geomconv.FromGeom(g)
	if err != nil {
		return nil, fmt.Errorf("wkb: %w", err)
	}
	return m, nil
}
