package persistence_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/persistence"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
)

func openBolt(t *testing.T) (*persistence.BoltImageStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storage", "cache.db")
	store, err := persistence.OpenBoltImageStore(path)
	require.NoError(t, err)
	return store, path
}

func TestBoltImageStore_PersistsAcrossReopen(t *testing.T) {
	// Arrange
	store, path := openBolt(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, imagecache.Entry{Key: "USS_Enterprise.png", URL: "https://stt.wiki/ent.png"}))
	require.NoError(t, store.Close())

	// Act
	reopened, err := persistence.OpenBoltImageStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	url, found, err := reopened.Get(ctx, "USS_Enterprise.png")

	// Assert
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "https://stt.wiki/ent.png", url)
}

func TestBoltImageStore_PutIsInsertIfAbsent(t *testing.T) {
	store, _ := openBolt(t)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, imagecache.Entry{Key: "k.png", URL: "first"}))
	require.NoError(t, store.Put(ctx, imagecache.Entry{Key: "k.png", URL: "second"}))

	url, _, err := store.Get(ctx, "k.png")
	require.NoError(t, err)
	assert.Equal(t, "first", url)
}

func TestBoltImageStore_ConcurrentWriters(t *testing.T) {
	store, _ := openBolt(t)
	defer store.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Put(ctx, imagecache.Entry{Key: fmt.Sprintf("%d.png", i%10), URL: fmt.Sprintf("url-%d", i)})
		}(i)
	}
	wg.Wait()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestBoltImageStore_RejectsEmptyKey(t *testing.T) {
	store, _ := openBolt(t)
	defer store.Close()

	err := store.Put(context.Background(), imagecache.Entry{URL: "x"})

	assert.Error(t, err)
}

func TestOpenBoltImageStore_RequiresPath(t *testing.T) {
	_, err := persistence.OpenBoltImageStore("  ")
	assert.Error(t, err)
}
