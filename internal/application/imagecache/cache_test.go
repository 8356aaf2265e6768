package imagecache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/test/helpers"
)

func newCache() (*imagecache.Cache, *helpers.MockImageStore, *helpers.MockFetcher) {
	store := helpers.NewMockImageStore()
	fetcher := helpers.NewMockFetcher()
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return imagecache.NewCache(store, fetcher, clock), store, fetcher
}

func TestResolve_HitDoesNotFetch(t *testing.T) {
	// Arrange
	cache, store, fetcher := newCache()
	store.Seed("Spock_Head.png", "https://stt.wiki/spock_head.png")

	// Act
	res := cache.Resolve(context.Background(), "Spock_Head.png", 10)

	// Assert
	assert.Equal(t, int64(10), res.EntityID)
	assert.Equal(t, "Spock_Head.png", res.FileName)
	assert.Equal(t, "https://stt.wiki/spock_head.png", res.URL)
	assert.Equal(t, 0, fetcher.TotalCalls())
	assert.Equal(t, int64(1), cache.Stats().Hits)
}

func TestResolve_MissFetchesAndWritesThrough(t *testing.T) {
	// Arrange
	cache, store, fetcher := newCache()
	fetcher.AddImage("Kirk.png", "https://stt.wiki/kirk.png")
	ctx := context.Background()

	// Act
	first := cache.Resolve(ctx, "Kirk.png", 20)
	second := cache.Resolve(ctx, "Kirk.png", 21)

	// Assert
	assert.Equal(t, "https://stt.wiki/kirk.png", first.URL)
	assert.Equal(t, "https://stt.wiki/kirk.png", second.URL)
	assert.Equal(t, 1, fetcher.Calls("Kirk.png"))

	entry, ok := store.Lookup("Kirk.png")
	require.True(t, ok)
	assert.Equal(t, "https://stt.wiki/kirk.png", entry.URL)
	assert.False(t, entry.CreatedAt.IsZero())

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Hits)
}

func TestResolve_AbsentImageYieldsEmptyURLAndIsNotCached(t *testing.T) {
	cache, store, fetcher := newCache()
	ctx := context.Background()

	first := cache.Resolve(ctx, "Nobody.png", 1)
	second := cache.Resolve(ctx, "Nobody.png", 1)

	assert.Empty(t, first.URL)
	assert.Empty(t, second.URL)
	assert.Equal(t, 2, fetcher.Calls("Nobody.png"), "failures must not be cached")
	assert.Equal(t, 0, store.PutCalls())
	assert.Equal(t, int64(2), cache.Stats().FetchFailures)
}

func TestResolve_FetchErrorNeverRejects(t *testing.T) {
	cache, _, fetcher := newCache()
	fetcher.FailWith("Broken.png", errors.New("connection reset"))

	res := cache.Resolve(context.Background(), "Broken.png", 5)

	assert.Empty(t, res.URL)
	assert.Equal(t, int64(5), res.EntityID)
}

func TestResolve_StoreReadErrorTreatedAsMiss(t *testing.T) {
	cache, store, fetcher := newCache()
	store.SetGetError(errors.New("disk gone"))
	fetcher.AddImage("Data.png", "https://stt.wiki/data.png")

	res := cache.Resolve(context.Background(), "Data.png", 3)

	assert.Equal(t, "https://stt.wiki/data.png", res.URL)
	assert.Equal(t, int64(1), cache.Stats().StoreErrors)
}

func TestResolve_StoreWriteErrorStillReturnsURL(t *testing.T) {
	cache, store, fetcher := newCache()
	store.SetPutError(errors.New("read-only"))
	fetcher.AddImage("Worf.png", "https://stt.wiki/worf.png")

	res := cache.Resolve(context.Background(), "Worf.png", 4)

	assert.Equal(t, "https://stt.wiki/worf.png", res.URL)
	assert.Equal(t, int64(1), cache.Stats().StoreErrors)
}

func TestResolve_EmptyFileName(t *testing.T) {
	cache, _, fetcher := newCache()

	res := cache.Resolve(context.Background(), "", 9)

	assert.Empty(t, res.URL)
	assert.Equal(t, 0, fetcher.TotalCalls())
}

func TestResolve_ConcurrentSameKeyFetchesOnce(t *testing.T) {
	// Arrange
	cache, _, fetcher := newCache()
	fetcher.AddImage("Picard.png", "https://stt.wiki/picard.png")
	started := fetcher.Hold()
	const callers = 20

	// Act
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Resolve(context.Background(), "Picard.png", int64(i)).URL
		}(i)
	}

	<-started
	require.Eventually(t, func() bool {
		return cache.Stats().Misses == callers
	}, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	fetcher.Release()
	wg.Wait()

	// Assert
	assert.Equal(t, 1, fetcher.Calls("Picard.png"))
	for _, url := range results {
		assert.Equal(t, "https://stt.wiki/picard.png", url)
	}
}

func TestResolve_ConcurrentDifferentKeysAreIndependent(t *testing.T) {
	cache, _, fetcher := newCache()
	fetcher.AddImage("A.png", "https://stt.wiki/a.png")
	fetcher.FailWith("B.png", errors.New("timeout"))

	var wg sync.WaitGroup
	var a, b string
	wg.Add(2)
	go func() { defer wg.Done(); a = cache.Resolve(context.Background(), "A.png", 1).URL }()
	go func() { defer wg.Done(); b = cache.Resolve(context.Background(), "B.png", 2).URL }()
	wg.Wait()

	assert.Equal(t, "https://stt.wiki/a.png", a)
	assert.Empty(t, b)
}
