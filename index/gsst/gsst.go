// Package gsst persists region indices as golang/leveldb table files.
//
// A table maps the index keys (cells, meta, regions) to their values and
// is written once, in key order, by index.Writer.
package gsst

import (
	"errors"
	"os"

	"github.com/bsm/georegion/index"
	"github.com/golang/leveldb/db"
	"github.com/golang/leveldb/table"
)

type reader struct{ *table.Reader }

// Open opens a table file for index.NewReader. The file is closed along
// with the reader.
func Open(fname string) (index.StoreReader, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	return &reader{Reader: table.NewReader(f, nil)}, nil
}

// Get implements index.StoreReader. Absent cells and regions yield nil.
func (r *reader) Get(key []byte) ([]byte, error) {
	val, err := r.Reader.Get(key, nil)
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	return val, err
}

// --------------------------------------------------------------------

type writer struct{ *table.Writer }

// Create creates a table file for index.NewWriter, truncating any
// existing one.
func Create(fname string) (index.StoreWriter, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, err
	}
	return &writer{Writer: table.NewWriter(f, nil)}, nil
}

// Put implements index.StoreWriter. Keys must arrive in ascending order.
func (w *writer) Put(key, value []byte) error {
	return w.Writer.Set(key, value, nil)
}
