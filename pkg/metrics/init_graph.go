package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphcast_graph_nodes_total",
			Help: "Current number of nodes in the graph model",
		},
	)

	r.GraphLinksTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphcast_graph_links_total",
			Help: "Current number of links in the graph model",
		},
	)

	r.GraphRebuildsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphcast_graph_rebuilds_total",
			Help: "Total number of full graph rebuilds from cluster responses",
		},
	)
}

func (r *Registry) initLayoutMetrics() {
	r.LayoutTicksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphcast_layout_ticks_total",
			Help: "Total number of simulation ticks",
		},
	)

	r.LayoutAlpha = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphcast_layout_alpha",
			Help: "Current simulation energy (alpha)",
		},
	)

	r.LayoutNodesSimulated = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphcast_layout_nodes_simulated",
			Help: "Number of nodes registered with the running simulation",
		},
	)

	r.LayoutReheatsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphcast_layout_reheats_total",
			Help: "Total number of simulation reheats, by cause",
		},
		[]string{"cause"},
	)
}
