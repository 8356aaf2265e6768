// Package imagecache resolves wiki image file names to URLs, backed by a
// persistent store and filled on miss from the wiki.
package imagecache

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/metrics"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/logging"
	domain "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
)

// Cache resolves file names through the store, falling back to the fetcher.
// Resolve never fails; an unresolvable image yields an empty URL.
type Cache struct {
	store   domain.Store
	fetcher domain.Fetcher
	clock   shared.Clock
	group   singleflight.Group

	hits          atomic.Int64
	misses        atomic.Int64
	fetches       atomic.Int64
	fetchFailures atomic.Int64
	storeErrors   atomic.Int64
}

// NewCache creates a cache over store and fetcher. A nil clock uses the real clock.
func NewCache(store domain.Store, fetcher domain.Fetcher, clock shared.Clock) *Cache {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Cache{
		store:   store,
		fetcher: fetcher,
		clock:   clock,
	}
}

// Resolve returns the URL for fileName on behalf of entityID
func (c *Cache) Resolve(ctx context.Context, fileName string, entityID int64) domain.Resolution {
	res := domain.Resolution{EntityID: entityID, FileName: fileName}
	if fileName == "" {
		return res
	}

	logger := logging.LoggerFromContext(ctx)

	url, found, err := c.store.Get(ctx, fileName)
	if err != nil {
		c.storeErrors.Add(1)
		metrics.RecordImageStoreError("get")
		logger.Log("WARNING", "image cache read failed, treating as miss", map[string]interface{}{
			"file":  fileName,
			"error": err.Error(),
		})
	}
	if err == nil && found {
		c.hits.Add(1)
		metrics.RecordImageLookup("hit")
		res.URL = url
		return res
	}

	c.misses.Add(1)
	metrics.RecordImageLookup("miss")

	v, _, _ := c.group.Do(fileName, func() (interface{}, error) {
		return c.fill(ctx, fileName), nil
	})
	res.URL = v.(string)
	return res
}

// fill fetches fileName and writes a successful result through to the store.
// Failures are not cached.
func (c *Cache) fill(ctx context.Context, fileName string) string {
	logger := logging.LoggerFromContext(ctx)

	c.fetches.Add(1)
	started := c.clock.Now()
	url, err := c.fetcher.FetchImageURL(ctx, fileName)
	elapsed := c.clock.Now().Sub(started).Seconds()

	if err != nil || url == "" {
		c.fetchFailures.Add(1)
		metrics.RecordImageFetch(false, elapsed)
		if err != nil && !errors.Is(err, domain.ErrImageNotFound) {
			logger.Log("WARNING", "image fetch failed", map[string]interface{}{
				"file":  fileName,
				"error": err.Error(),
			})
		}
		return ""
	}
	metrics.RecordImageFetch(true, elapsed)

	entry := domain.Entry{Key: fileName, URL: url, CreatedAt: c.clock.Now()}
	if err := c.store.Put(ctx, entry); err != nil {
		c.storeErrors.Add(1)
		metrics.RecordImageStoreError("put")
		logger.Log("WARNING", "image cache write failed", map[string]interface{}{
			"file":  fileName,
			"error": err.Error(),
		})
	}
	return url
}

// Entries returns the number of persisted resolutions
func (c *Cache) Entries(ctx context.Context) (int, error) {
	return c.store.Count(ctx)
}

// Stats returns a snapshot of the running counters
func (c *Cache) Stats() domain.Stats {
	return domain.Stats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Fetches:       c.fetches.Load(),
		FetchFailures: c.fetchFailures.Load(),
		StoreErrors:   c.storeErrors.Load(),
	}
}
