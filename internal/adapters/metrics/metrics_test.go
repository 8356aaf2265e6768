package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/mediator"
)

type sampleQuery struct{}

func resetGlobals(t *testing.T) {
	t.Cleanup(func() {
		SetGlobalImageCacheCollector(nil)
		SetGlobalLoaderCollector(nil)
		Registry = nil
	})
}

func TestSetup_RegistersCollectors(t *testing.T) {
	resetGlobals(t)

	_, err := Setup()
	require.NoError(t, err)

	RecordImageLookup("hit")
	RecordImageLookup("miss")
	RecordJoinMiss("crew")

	families, err := Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["sttcompanion_image_cache_lookups_total"])
	assert.True(t, names["sttcompanion_pipeline_join_misses_total"])
}

func TestRecordFunctions_NoCollectorIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordImageLookup("hit")
		RecordStage("archetypes", true, 0.1)
		RecordEnrichment("crew", true)
	})
}

func TestRegister_DisabledRegistryIsNoop(t *testing.T) {
	Registry = nil
	assert.NoError(t, NewLoaderMetricsCollector().Register())
}

func TestLoaderCollector_CountsJoinMissesByKind(t *testing.T) {
	c := NewLoaderMetricsCollector()

	c.RecordJoinMiss("crew")
	c.RecordJoinMiss("crew")
	c.RecordJoinMiss("ship")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.joinMisses.WithLabelValues("crew")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.joinMisses.WithLabelValues("ship")))
}

func TestPrometheusMiddleware_RecordsCommandName(t *testing.T) {
	collector := NewCommandMetricsCollector()
	mw := PrometheusMiddleware(collector)

	_, err := mw(context.Background(), &sampleQuery{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("sampleQuery", "success")))
}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, "sampleQuery", extractCommandName(&sampleQuery{}))
	assert.Equal(t, "UnknownCommand", extractCommandName(nil))
}
