package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ImageCacheMetricsCollector handles all image cache metrics
type ImageCacheMetricsCollector struct {
	lookupsTotal  *prometheus.CounterVec
	fetchesTotal  *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	storeErrors   *prometheus.CounterVec
}

// NewImageCacheMetricsCollector creates a new image cache metrics collector
func NewImageCacheMetricsCollector() *ImageCacheMetricsCollector {
	return &ImageCacheMetricsCollector{
		lookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "image_cache",
				Name:      "lookups_total",
				Help:      "Image cache lookups by outcome (hit, miss)",
			},
			[]string{"outcome"},
		),
		fetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "image_cache",
				Name:      "fetches_total",
				Help:      "Wiki image fetches by result",
			},
			[]string{"result"},
		),
		fetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "image_cache",
				Name:      "fetch_duration_seconds",
				Help:      "Wiki image fetch duration distribution",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
		),
		storeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "image_cache",
				Name:      "store_errors_total",
				Help:      "Persistent store failures by operation",
			},
			[]string{"operation"},
		),
	}
}

// Register registers all image cache metrics with the Prometheus registry
func (c *ImageCacheMetricsCollector) Register() error {
	return registerAll(c.lookupsTotal, c.fetchesTotal, c.fetchDuration, c.storeErrors)
}

// RecordLookup records a lookup outcome
func (c *ImageCacheMetricsCollector) RecordLookup(outcome string) {
	c.lookupsTotal.WithLabelValues(outcome).Inc()
}

// RecordFetch records a wiki fetch and its duration
func (c *ImageCacheMetricsCollector) RecordFetch(success bool, duration float64) {
	c.fetchesTotal.WithLabelValues(resultLabel(success)).Inc()
	c.fetchDuration.Observe(duration)
}

// RecordStoreError records a store failure
func (c *ImageCacheMetricsCollector) RecordStoreError(operation string) {
	c.storeErrors.WithLabelValues(operation).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
