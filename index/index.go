// Package index maps s2 cells to named regions and answers which regions
// contain a point.
//
// Regions are covered with s2 cells. Each covering cell is stored along
// with the names of the regions it belongs to, each region is stored in
// its compact form. Lookups collect the candidates of all cells enclosing
// the point and check containment against the stored regions.
package index

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/golang/snappy"
)

var (
	// ErrNotFound is returned when a region does not exist.
	ErrNotFound = errors.New("index: region not found")

	errClosed             = errors.New("index: is closed")
	errBlankName          = errors.New("index: blank region name")
	errInvalidCompression = errors.New("index: invalid compression setting")
	errBadMeta            = errors.New("index: bad meta section")
)

// Compression is the compression applied to stored regions.
type Compression byte

func (c Compression) isValid() bool {
	return c >= NoCompression && c < unknownCompression
}

const (
	NoCompression Compression = iota + 1
	SnappyCompression
	unknownCompression
)

// Options configure Writer.
type Options struct {
	// The maximum level of covering cells. Must be within 1..30. Default: 12.
	MaxLevel int

	// The compression algorithm to use. Default: SnappyCompression.
	Compression Compression
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	if oo.MaxLevel < 1 || oo.MaxLevel > s2.MaxLevel {
		oo.MaxLevel = 12
	}
	if !oo.Compression.isValid() {
		oo.Compression = SnappyCompression
	}
	return &oo
}

// --------------------------------------------------------------------

// Keys are prefixed so that cells sort before the meta section, which sorts
// before the regions.
const (
	cellPrefix   = 'c'
	metaKey      = "m"
	regionPrefix = 'r'
)

func cellKey(cellID s2.CellID) []byte {
	key := make([]byte, 9)
	key[0] = cellPrefix
	binary.BigEndian.PutUint64(key[1:], uint64(cellID))
	return key
}

func regionKey(name string) []byte {
	key := make([]byte, 0, 1+len(name))
	key = append(key, regionPrefix)
	return append(key, name...)
}

func encodeNames(names []string) []byte {
	var buf []byte
	for _, name := range names {
		buf = binary.AppendUvarint(buf, uint64(len(name)))
		buf = append(buf, name...)
	}
	return buf
}

func decodeNames(buf []byte) ([]string, error) {
	var names []string
	for len(buf) != 0 {
		n, sz := binary.Uvarint(buf)
		if sz <= 0 || uint64(len(buf)-sz) < n {
			return nil, fmt.Errorf("index: bad cell value")
		}
		names = append(names, string(buf[sz:sz+int(n)]))
		buf = buf[sz+int(n):]
	}
	return names, nil
}

func encodeRegion(s string, c Compression) []byte {
	if c == SnappyCompression {
		enc := snappy.Encode(nil, []byte(s))
		return append([]byte{byte(c)}, enc...)
	}
	return append([]byte{byte(c)}, s...)
}

func decodeRegion(buf []byte) (string, error) {
	if len(buf) == 0 {
		return "", fmt.Errorf("index: bad region value")
	}

	switch Compression(buf[0]) {
	case NoCompression:
		return string(buf[1:]), nil
	case SnappyCompression:
		dec, err := snappy.Decode(nil, buf[1:])
		if err != nil {
			return "", fmt.Errorf("index: %w", err)
		}
		return string(dec), nil
	}
	return "", errInvalidCompression
}
