package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "sttcompanion"
	// Subsystem for pipeline metrics
	subsystem = "pipeline"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalImageCacheCollector is set by SetGlobalImageCacheCollector() when metrics are enabled
	globalImageCacheCollector ImageCacheMetricsRecorder

	// globalLoaderCollector is set by SetGlobalLoaderCollector() when metrics are enabled
	globalLoaderCollector LoaderMetricsRecorder
)

// ImageCacheMetricsRecorder defines the interface for recording image cache events
type ImageCacheMetricsRecorder interface {
	RecordLookup(outcome string)
	RecordFetch(success bool, duration float64)
	RecordStoreError(operation string)
}

// LoaderMetricsRecorder defines the interface for recording loader and matcher events
type LoaderMetricsRecorder interface {
	RecordStage(stage string, success bool, duration float64)
	RecordLoad(success bool, duration float64)
	RecordJoinMiss(kind string)
	RecordEnrichment(collection string, applied bool)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalImageCacheCollector sets the global image cache collector
func SetGlobalImageCacheCollector(collector ImageCacheMetricsRecorder) {
	globalImageCacheCollector = collector
}

// SetGlobalLoaderCollector sets the global loader collector
func SetGlobalLoaderCollector(collector LoaderMetricsRecorder) {
	globalLoaderCollector = collector
}

// RecordImageLookup records a cache lookup outcome ("hit" or "miss") globally
func RecordImageLookup(outcome string) {
	if globalImageCacheCollector != nil {
		globalImageCacheCollector.RecordLookup(outcome)
	}
}

// RecordImageFetch records a wiki fetch globally
func RecordImageFetch(success bool, duration float64) {
	if globalImageCacheCollector != nil {
		globalImageCacheCollector.RecordFetch(success, duration)
	}
}

// RecordImageStoreError records a failed store read or write globally
func RecordImageStoreError(operation string) {
	if globalImageCacheCollector != nil {
		globalImageCacheCollector.RecordStoreError(operation)
	}
}

// RecordStage records a loader stage outcome globally
func RecordStage(stage string, success bool, duration float64) {
	if globalLoaderCollector != nil {
		globalLoaderCollector.RecordStage(stage, success, duration)
	}
}

// RecordLoad records a whole load outcome globally
func RecordLoad(success bool, duration float64) {
	if globalLoaderCollector != nil {
		globalLoaderCollector.RecordLoad(success, duration)
	}
}

// RecordJoinMiss records an owned instance with no archetype globally
func RecordJoinMiss(kind string) {
	if globalLoaderCollector != nil {
		globalLoaderCollector.RecordJoinMiss(kind)
	}
}

// RecordEnrichment records an applied or discarded icon patch globally
func RecordEnrichment(collection string, applied bool) {
	if globalLoaderCollector != nil {
		globalLoaderCollector.RecordEnrichment(collection, applied)
	}
}

// registerAll registers collectors, skipping when metrics are disabled
func registerAll(collectors ...prometheus.Collector) error {
	if Registry == nil {
		return nil // Metrics not enabled
	}
	for _, c := range collectors {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}
