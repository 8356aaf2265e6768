package helpers

import (
	"context"
	"sync"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
)

// MockImageStore is an in-memory imagecache.Store with error injection
type MockImageStore struct {
	mu      sync.RWMutex
	entries map[string]imagecache.Entry
	closed  bool

	getErr error
	putErr error

	putCalls int
}

// NewMockImageStore creates an empty in-memory store
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{
		entries: make(map[string]imagecache.Entry),
	}
}

// Seed stores an entry without counting it as a Put call
func (m *MockImageStore) Seed(key, url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = imagecache.Entry{Key: key, URL: url}
}

// SetGetError makes every Get fail with err
func (m *MockImageStore) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// SetPutError makes every Put fail with err
func (m *MockImageStore) SetPutError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
}

// Get implements imagecache.Store
func (m *MockImageStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	entry, ok := m.entries[key]
	return entry.URL, ok, nil
}

// Put implements imagecache.Store with insert-if-absent semantics
func (m *MockImageStore) Put(ctx context.Context, entry imagecache.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	if m.putErr != nil {
		return m.putErr
	}
	if _, exists := m.entries[entry.Key]; !exists {
		m.entries[entry.Key] = entry
	}
	return nil
}

// Count implements imagecache.Store
func (m *MockImageStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// Close implements imagecache.Store
func (m *MockImageStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called
func (m *MockImageStore) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// PutCalls returns how many times Put was called
func (m *MockImageStore) PutCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.putCalls
}

// Lookup returns the stored entry for key
func (m *MockImageStore) Lookup(key string) (imagecache.Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	return entry, ok
}
