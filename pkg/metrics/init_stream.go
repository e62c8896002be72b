package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initStreamMetrics() {
	r.StreamsOpenedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphcast_streams_opened_total",
			Help: "Total number of event streams opened",
		},
		[]string{"endpoint", "status"},
	)

	r.EventsDecodedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphcast_events_decoded_total",
			Help: "Total number of stream events decoded, by outcome",
		},
		[]string{"status"},
	)

	r.StreamsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphcast_streams_in_flight",
			Help: "Current number of open event streams",
		},
	)
}
