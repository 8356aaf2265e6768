package queries

import (
	"context"
	"fmt"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/mediator"
	domain "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
)

// StatsSource reports cache counters and the persisted entry count
type StatsSource interface {
	Stats() domain.Stats
	Entries(ctx context.Context) (int, error)
}

// CacheStatsQuery asks for the current image cache statistics
type CacheStatsQuery struct{}

// CacheStatsResponse is the image cache statistics snapshot
type CacheStatsResponse struct {
	Entries       int
	Hits          int64
	Misses        int64
	Fetches       int64
	FetchFailures int64
	StoreErrors   int64
}

// CacheStatsHandler handles the CacheStats query
type CacheStatsHandler struct {
	source StatsSource
}

// NewCacheStatsHandler creates a new CacheStatsHandler
func NewCacheStatsHandler(source StatsSource) *CacheStatsHandler {
	return &CacheStatsHandler{source: source}
}

// Handle executes the CacheStats query
func (h *CacheStatsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*CacheStatsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *CacheStatsQuery")
	}

	entries, err := h.source.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count cache entries: %w", err)
	}

	stats := h.source.Stats()
	return &CacheStatsResponse{
		Entries:       entries,
		Hits:          stats.Hits,
		Misses:        stats.Misses,
		Fetches:       stats.Fetches,
		FetchFailures: stats.FetchFailures,
		StoreErrors:   stats.StoreErrors,
	}, nil
}
