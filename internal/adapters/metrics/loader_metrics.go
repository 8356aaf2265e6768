package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LoaderMetricsCollector handles remote load and enrichment metrics
type LoaderMetricsCollector struct {
	stageTotal      *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec
	loadTotal       *prometheus.CounterVec
	loadDuration    prometheus.Histogram
	joinMisses      *prometheus.CounterVec
	enrichmentTotal *prometheus.CounterVec
}

// NewLoaderMetricsCollector creates a new loader metrics collector
func NewLoaderMetricsCollector() *LoaderMetricsCollector {
	return &LoaderMetricsCollector{
		stageTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stage_total",
				Help:      "Loader stage executions by stage and result",
			},
			[]string{"stage", "result"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stage_duration_seconds",
				Help:      "Loader stage duration distribution",
				Buckets:   []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"stage"},
		),
		loadTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "load_total",
				Help:      "Full data loads by result",
			},
			[]string{"result"},
		),
		loadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "load_duration_seconds",
				Help:      "Full data load duration distribution",
				Buckets:   []float64{0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0, 120.0},
			},
		),
		joinMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "join_misses_total",
				Help:      "Owned instances skipped because their archetype is unknown",
			},
			[]string{"kind"},
		),
		enrichmentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "enrichment_patches_total",
				Help:      "Icon patches by collection and whether they changed a record",
			},
			[]string{"collection", "applied"},
		),
	}
}

// Register registers all loader metrics with the Prometheus registry
func (c *LoaderMetricsCollector) Register() error {
	return registerAll(c.stageTotal, c.stageDuration, c.loadTotal, c.loadDuration, c.joinMisses, c.enrichmentTotal)
}

// RecordStage records one stage execution
func (c *LoaderMetricsCollector) RecordStage(stage string, success bool, duration float64) {
	c.stageTotal.WithLabelValues(stage, resultLabel(success)).Inc()
	c.stageDuration.WithLabelValues(stage).Observe(duration)
}

// RecordLoad records a full load
func (c *LoaderMetricsCollector) RecordLoad(success bool, duration float64) {
	c.loadTotal.WithLabelValues(resultLabel(success)).Inc()
	c.loadDuration.Observe(duration)
}

// RecordJoinMiss records a skipped instance
func (c *LoaderMetricsCollector) RecordJoinMiss(kind string) {
	c.joinMisses.WithLabelValues(kind).Inc()
}

// RecordEnrichment records an icon patch attempt
func (c *LoaderMetricsCollector) RecordEnrichment(collection string, applied bool) {
	applyLabel := "false"
	if applied {
		applyLabel = "true"
	}
	c.enrichmentTotal.WithLabelValues(collection, applyLabel).Inc()
}
