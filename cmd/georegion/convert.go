package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/bsm/georegion/clip"
	"github.com/bsm/georegion/encoding/compact"
	"github.com/bsm/georegion/encoding/geojson"
	"github.com/bsm/georegion/encoding/wkb"
	"github.com/bsm/georegion/encoding/wkt"
	"github.com/bsm/georegion/geo"
	"github.com/bsm/georegion/index"
	"github.com/bsm/georegion/index/lsst"
)

const (
	formatCompact = "compact"
	formatGeoJSON = "geojson"
	formatWKB     = "wkb"
	formatWKT     = "wkt"
	formatInfo    = "info"
)

var errUnknownFormat = errors.New("unknown format")

func decode(format string, data []byte) (*geo.MultiPolygon, error) {
	switch format {
	case formatCompact:
		return compact.Unmarshal(string(data))
	case formatGeoJSON:
		return geojson.Unmarshal(data)
	case formatWKB:
		return wkb.Unmarshal(data)
	case formatWKT:
		return wkt.Unmarshal(strings.TrimSpace(string(data)))
	}
	return nil, fmt.Errorf("%w %q", errUnknownFormat, format)
}

func encode(format string, m *geo.MultiPolygon, roles bool) ([]byte, error) {
	switch format {
	case formatCompact:
		return []byte(compact.Marshal(m) + "\n"), nil
	case formatGeoJSON:
		var opts []geojson.Option
		if roles {
			opts = append(opts, geojson.WithRoles())
		}
		return geojson.Marshal(m, opts...)
	case formatWKB:
		return wkb.Marshal(m, binary.LittleEndian)
	case formatWKT:
		s, err := wkt.Marshal(m)
		if err != nil {
			return nil, err
		}
		return []byte(s + "\n"), nil
	case formatInfo:
		return []byte(info(m)), nil
	}
	return nil, fmt.Errorf("%w %q", errUnknownFormat, format)
}

func combine(subject, clipping *geo.MultiPolygon, op string) (*geo.MultiPolygon, error) {
	t, ok := geo.ParseClipType(op)
	if !ok {
		return nil, fmt.Errorf("%w %q", clip.ErrUnknownClipType, op)
	}
	return clip.Apply(subject, clipping, t)
}

func info(m *geo.MultiPolygon) string {
	var b strings.Builder
	fmt.Fprintf(&b, "outers:  %d\n", m.NumOuters())
	fmt.Fprintf(&b, "inners:  %d\n", m.NumInners())
	fmt.Fprintf(&b, "surface: %g\n", m.Surface())
	if rect := m.Bounds(); !rect.IsEmpty() {
		fmt.Fprintf(&b, "bounds:  %g,%g:%g,%g\n", rect.X.Lo, rect.Y.Lo, rect.X.Hi, rect.Y.Hi)
	}
	return b.String()
}

func writeIndex(fname, name string, m *geo.MultiPolygon) error {
	var (
		store index.StoreWriter
		err   error
	)
	if strings.HasSuffix(fname, ".tab") || strings.HasSuffix(fname, ".tab.gz") {
		store, err = index.CreateTab(fname)
	} else {
		store, err = lsst.CreateFile(fname, nil)
	}
	if err != nil {
		return err
	}

	w := index.NewWriter(store, nil)
	if err := w.Add(name, m); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
