package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/adapters/persistence"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/test/helpers"
)

func TestImageURLRepository_PutAndGet(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormImageURLRepository(db)
	ctx := context.Background()

	// Act
	err := repo.Put(ctx, imagecache.Entry{Key: "Spock_Head.png", URL: "https://stt.wiki/spock.png", CreatedAt: time.Now()})
	require.NoError(t, err)

	url, found, err := repo.Get(ctx, "Spock_Head.png")

	// Assert
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "https://stt.wiki/spock.png", url)
}

func TestImageURLRepository_GetMissing(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormImageURLRepository(db)

	url, found, err := repo.Get(context.Background(), "Nobody.png")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, url)
}

func TestImageURLRepository_PutNeverOverwrites(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormImageURLRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, imagecache.Entry{Key: "Kirk.png", URL: "first", CreatedAt: time.Now()}))

	// Act
	err := repo.Put(ctx, imagecache.Entry{Key: "Kirk.png", URL: "second", CreatedAt: time.Now()})

	// Assert
	require.NoError(t, err)
	url, _, err := repo.Get(ctx, "Kirk.png")
	require.NoError(t, err)
	assert.Equal(t, "first", url)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
