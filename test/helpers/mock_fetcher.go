package helpers

import (
	"context"
	"sync"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
)

// MockFetcher is a scripted imagecache.Fetcher that counts calls per file name
type MockFetcher struct {
	mu     sync.Mutex
	urls   map[string]string
	errs   map[string]error
	calls  map[string]int
	gate   chan struct{}
	called chan string
}

// NewMockFetcher creates a fetcher that knows no files
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		urls:  make(map[string]string),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// AddImage makes fileName resolve to url
func (m *MockFetcher) AddImage(fileName, url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls[fileName] = url
}

// FailWith makes fileName fail with err
func (m *MockFetcher) FailWith(fileName string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[fileName] = err
}

// Hold blocks every fetch until Release is called. Each blocked fetch
// announces its file name on the returned channel.
func (m *MockFetcher) Hold() <-chan string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gate = make(chan struct{})
	m.called = make(chan string, 1024)
	return m.called
}

// Release unblocks held fetches
func (m *MockFetcher) Release() {
	m.mu.Lock()
	gate := m.gate
	m.gate = nil
	m.mu.Unlock()
	if gate != nil {
		close(gate)
	}
}

// FetchImageURL implements imagecache.Fetcher
func (m *MockFetcher) FetchImageURL(ctx context.Context, fileName string) (string, error) {
	m.mu.Lock()
	m.calls[fileName]++
	gate, called := m.gate, m.called
	m.mu.Unlock()

	if gate != nil {
		called <- fileName
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.errs[fileName]; ok {
		return "", err
	}
	if url, ok := m.urls[fileName]; ok {
		return url, nil
	}
	return "", imagecache.ErrImageNotFound
}

// Calls returns how many times fileName was fetched
func (m *MockFetcher) Calls(fileName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[fileName]
}

// TotalCalls returns the number of fetches across all file names
func (m *MockFetcher) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}
