// Package metrics exposes Prometheus instrumentation for the graphcast client:
// stream health, graph size, layout activity, chat and ingestion outcomes.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Stream metrics
	StreamsOpenedTotal *prometheus.CounterVec
	EventsDecodedTotal *prometheus.CounterVec
	StreamsInFlight    prometheus.Gauge

	// Graph metrics
	GraphNodesTotal    prometheus.Gauge
	GraphLinksTotal    prometheus.Gauge
	GraphRebuildsTotal prometheus.Counter

	// Layout metrics
	LayoutTicksTotal     prometheus.Counter
	LayoutAlpha          prometheus.Gauge
	LayoutNodesSimulated prometheus.Gauge
	LayoutReheatsTotal   *prometheus.CounterVec

	// Chat metrics
	ChatTurnsTotal   *prometheus.CounterVec
	ChatStreamErrors prometheus.Counter

	// Ingest metrics
	IngestStagesTotal    *prometheus.CounterVec
	IngestRefetchesTotal prometheus.Counter

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initStreamMetrics()
	r.initGraphMetrics()
	r.initLayoutMetrics()
	r.initChatMetrics()
	r.initIngestMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
