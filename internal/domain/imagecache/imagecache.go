// Package imagecache defines the persistent file-name to URL cache used for
// wiki image enrichment.
package imagecache

import (
	"context"
	"errors"
	"time"
)

// ErrImageNotFound is returned by a Fetcher when the wiki has no such file
var ErrImageNotFound = errors.New("image not found")

// Entry is one cached resolution. Entries are created on first successful
// resolution and never updated or deleted afterwards.
type Entry struct {
	Key       string
	URL       string
	CreatedAt time.Time
}

// Resolution is the outcome of resolving a file name for an entity.
// URL is empty when the image could not be resolved.
type Resolution struct {
	EntityID int64
	FileName string
	URL      string
}

// Store is the persistent key-value backing of the cache.
// Put must not overwrite an existing key.
type Store interface {
	Get(ctx context.Context, key string) (url string, found bool, err error)
	Put(ctx context.Context, entry Entry) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// Fetcher looks a file name up on the wiki image source
type Fetcher interface {
	FetchImageURL(ctx context.Context, fileName string) (string, error)
}

// Stats are the running counters of a cache
type Stats struct {
	Hits          int64
	Misses        int64
	Fetches       int64
	FetchFailures int64
	StoreErrors   int64
}
