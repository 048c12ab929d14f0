package index

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"
)

var b64std = base64.StdEncoding

// TabWriter writes tab-separated, base64 encoded key/value lines. It
// implements StoreWriter.
type TabWriter struct {
	f *os.File
	z *gzip.Writer
	w *bufio.Writer
}

// CreateTab creates a tab file. Files with a .gz suffix are compressed.
// The name "-" writes to stdout.
func CreateTab(fname string) (*TabWriter, error) {
	if fname == "-" {
		return &TabWriter{w: bufio.NewWriter(os.Stdout)}, nil
	}

	f, err := os.Create(fname)
	if err != nil {
		return nil, err
	}

	w := &TabWriter{f: f}
	if strings.HasSuffix(fname, ".gz") {
		w.z = gzip.NewWriter(f)
		w.w = bufio.NewWriter(w.z)
	} else {
		w.w = bufio.NewWriter(f)
	}
	return w, nil
}

// Put implements StoreWriter.
func (w *TabWriter) Put(key, value []byte) error {
	nk, nv := b64std.EncodedLen(len(key)), b64std.EncodedLen(len(value))

	line := make([]byte, nk+nv+2)
	b64std.Encode(line, key)
	line[nk] = '\t'
	b64std.Encode(line[nk+1:], value)
	line[nk+nv+1] = '\n'

	_, err := w.w.Write(line)
	return err
}

// Close flushes and closes the writer.
func (w *TabWriter) Close() error {
	err := w.w.Flush()

	if w.z != nil {
		if e := w.z.Close(); e != nil && err == nil {
			err = e
		}
	}
	if w.f != nil {
		if e := w.f.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// --------------------------------------------------------------------

// OpenTab loads a tab file into memory. Files with a .gz suffix are
// decompressed. The name "-" reads from stdin.
func OpenTab(fname string) (*InMemStore, error) {
	if fname == "-" {
		return ReadTab(os.Stdin)
	}

	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !strings.HasSuffix(fname, ".gz") {
		return ReadTab(f)
	}

	z, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer z.Close()

	return ReadTab(z)
}

// ReadTab reads tab-separated key/value lines into memory.
func ReadTab(r io.Reader) (*InMemStore, error) {
	store := NewInMemStore()
	in := bufio.NewReader(r)
	for {
		line, err := in.ReadBytes('\n')
		if err == io.EOF && len(line) == 0 {
			return store, nil
		} else if err != nil && err != io.EOF {
			return nil, err
		}

		key, val, err := parseTabLine(bytes.TrimRight(line, "\n"))
		if err != nil {
			return nil, err
		}
		if err := store.Put(key, val); err != nil {
			return nil, err
		}
	}
}

func parseTabLine(line []byte) (key, val []byte, err error) {
	k, v, ok := bytes.Cut(line, []byte{'\t'})
	if !ok {
		return nil, nil, fmt.Errorf("index: bad input %q", line)
	}

	if key, err = decodeBase64(k); err != nil {
		return nil, nil, fmt.Errorf("index: bad input %q", line)
	}
	if val, err = decodeBase64(v); err != nil {
		return nil, nil, fmt.Errorf("index: bad input %q", line)
	}
	return key, val, nil
}

func decodeBase64(src []byte) ([]byte, error) {
	dst := make([]byte, b64std.DecodedLen(len(src)))
	n, err := b64std.Decode(dst, src)
	return dst[:n], err
}
