package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initChatMetrics() {
	r.ChatTurnsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphcast_chat_turns_total",
			Help: "Total number of finalized chat turns, by role",
		},
		[]string{"role"},
	)

	r.ChatStreamErrors = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphcast_chat_stream_errors_total",
			Help: "Total number of chat sends that failed before or during streaming",
		},
	)
}

func (r *Registry) initIngestMetrics() {
	r.IngestStagesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphcast_ingest_stages_total",
			Help: "Total number of ingestion stage transitions, by stage and outcome",
		},
		[]string{"stage", "outcome"},
	)

	r.IngestRefetchesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphcast_ingest_refetches_total",
			Help: "Total number of graph refetches triggered by completed ingestions",
		},
	)
}
