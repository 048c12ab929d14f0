// Package lsst stores indices in syndtr/goleveldb tables.
package lsst

import (
	"errors"
	"io"
	"os"

	"github.com/bsm/georegion/index"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/table"
)

type reader struct{ *table.Reader }

// OpenFile opens a table file for reading. The file is closed along with
// the reader.
func OpenFile(fname string, o *opt.Options) (index.StoreReader, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	r, err := open(f, fi.Size(), o)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return r, nil
}

// Open opens a table of sz bytes for reading. If ra is an io.Closer, it is
// closed along with the reader.
func Open(ra io.ReaderAt, sz int64, o *opt.Options) (index.StoreReader, error) {
	return open(ra, sz, o)
}

func open(ra io.ReaderAt, sz int64, o *opt.Options) (*reader, error) {
	fd := storage.FileDesc{Type: storage.TypeTable}
	tr, err := table.NewReader(ra, sz, fd, nil, nil, o)
	if err != nil {
		return nil, err
	}
	return &reader{Reader: tr}, nil
}

// Get implements index.StoreReader.
func (r *reader) Get(key []byte) ([]byte, error) {
	val, err := r.Reader.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	return val, err
}

// Close implements index.StoreReader. Release closes the underlying
// io.ReaderAt, if it can be closed.
func (r *reader) Close() error {
	r.Reader.Release()
	return nil
}

// --------------------------------------------------------------------

type writer struct {
	*table.Writer
	closer io.Closer
}

// CreateFile creates a new table file.
func CreateFile(fname string, o *opt.Options) (index.StoreWriter, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, err
	}
	return &writer{Writer: table.NewWriter(f, o), closer: f}, nil
}

// Create writes a new table to w.
func Create(w io.Writer, o *opt.Options) (index.StoreWriter, error) {
	return &writer{Writer: table.NewWriter(w, o)}, nil
}

// Put implements index.StoreWriter.
func (w *writer) Put(key, value []byte) error {
	return w.Writer.Append(key, value)
}

// Close implements index.StoreWriter.
func (w *writer) Close() error {
	err := w.Writer.Close()
	if w.closer != nil {
		if e := w.closer.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
