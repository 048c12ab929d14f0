package index

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/bsm/georegion/encoding/compact"
	"github.com/bsm/georegion/geo"
	"github.com/golang/geo/s2"
)

// Writer builds an index. Entries are buffered in memory and written to
// the store in key order on Close.
type Writer struct {
	store StoreWriter
	opt   *Options

	cells   map[s2.CellID][]string
	regions map[string]string
	closed  bool
}

// NewWriter wraps a store.
func NewWriter(store StoreWriter, o *Options) *Writer {
	return &Writer{
		store:   store,
		opt:     o.norm(),
		cells:   make(map[s2.CellID][]string),
		regions: make(map[string]string),
	}
}

// Add covers a region with cells and adds it to the index. Adding a
// name twice replaces the region.
func (w *Writer) Add(name string, m *geo.MultiPolygon) error {
	if w.closed {
		return errClosed
	}
	if strings.TrimSpace(name) == "" {
		return errBlankName
	}
	if _, ok := w.regions[name]; ok {
		w.remove(name)
	}

	for _, cellID := range m.Cells(w.opt.MaxLevel) {
		w.cells[cellID] = append(w.cells[cellID], name)
	}
	w.regions[name] = compact.Marshal(m)
	return nil
}

// Len returns the number of regions added.
func (w *Writer) Len() int { return len(w.regions) }

// Close flushes all entries and closes the store.
func (w *Writer) Close() error {
	if w.closed {
		return errClosed
	}
	w.closed = true

	if err := w.flush(); err != nil {
		_ = w.store.Close()
		return err
	}
	return w.store.Close()
}

func (w *Writer) flush() error {
	cellIDs := make([]s2.CellID, 0, len(w.cells))
	for cellID := range w.cells {
		cellIDs = append(cellIDs, cellID)
	}
	sort.Slice(cellIDs, func(i, j int) bool { return cellIDs[i] < cellIDs[j] })

	for _, cellID := range cellIDs {
		if err := w.store.Put(cellKey(cellID), encodeNames(w.cells[cellID])); err != nil {
			return fmt.Errorf("index: write cell %s: %w", cellID, err)
		}
	}

	if err := w.store.Put([]byte(metaKey), binary.AppendUvarint(nil, uint64(w.opt.MaxLevel))); err != nil {
		return fmt.Errorf("index: write meta: %w", err)
	}

	names := make([]string, 0, len(w.regions))
	for name := range w.regions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.store.Put(regionKey(name), encodeRegion(w.regions[name], w.opt.Compression)); err != nil {
			return fmt.Errorf("index: write region %q: %w", name, err)
		}
	}
	return nil
}

func (w *Writer) remove(name string) {
	for cellID, names := range w.cells {
		kept := names[:0]
		for _, n := range names {
			if n != name {
				kept = append(kept, n)
			}
		}
		if len(kept) == 0 {
			delete(w.cells, cellID)
		} else {
			w.cells[cellID] = kept
		}
	}
	delete(w.regions, name)
}
