package index

import "sync"

// StoreReader provides read access to a written index. Keys are either a
// 'c' followed by a big-endian cell ID, the meta key "m", or an 'r'
// followed by a region name.
type StoreReader interface {
	// Get returns the value stored under key, or nil if there is none.
	Get(key []byte) (value []byte, err error)
	// Close releases the store.
	Close() error
}

// StoreWriter persists an index. Writer puts cells first, then the meta
// key, then regions, each in ascending key order, so table formats that
// require sorted input can be used directly.
type StoreWriter interface {
	// Put stores value under key.
	Put(key, value []byte) error
	// Close flushes and releases the store.
	Close() error
}

// InMemStore keeps an index in memory. It serves as both StoreWriter and
// StoreReader, which is handy for small indices and for tests.
type InMemStore struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewInMemStore inits an InMemStore.
func NewInMemStore() *InMemStore {
	return &InMemStore{data: make(map[string][]byte)}
}

// Len returns the number of stored keys, including the meta key.
func (m *InMemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data)
}

// Get implements StoreReader.
func (m *InMemStore) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.data[string(key)], nil
}

// Put implements StoreWriter. The value is copied.
func (m *InMemStore) Put(key, value []byte) error {
	sk := string(key)
	m.mu.Lock()
	m.data[sk] = append(m.data[sk][:0], value...)
	m.mu.Unlock()
	return nil
}

// Close implements StoreReader + StoreWriter.
func (*InMemStore) Close() error { return nil }
