package metrics

// RecordStreamOpen records the outcome of opening an event stream
func (r *Registry) RecordStreamOpen(endpoint, status string) {
	r.StreamsOpenedTotal.WithLabelValues(endpoint, status).Inc()
}

// RecordEventDecoded records one decoded stream event ("ok" or "skipped")
func (r *Registry) RecordEventDecoded(status string) {
	r.EventsDecodedTotal.WithLabelValues(status).Inc()
}

// IncStreamsInFlight marks a stream read loop as active
func (r *Registry) IncStreamsInFlight() {
	r.StreamsInFlight.Inc()
}

// DecStreamsInFlight marks a stream read loop as finished
func (r *Registry) DecStreamsInFlight() {
	r.StreamsInFlight.Dec()
}

// UpdateGraphSize updates the node/link gauges after a model mutation
func (r *Registry) UpdateGraphSize(nodes, links int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphLinksTotal.Set(float64(links))
}

// RecordGraphRebuild records a full rebuild from a cluster response
func (r *Registry) RecordGraphRebuild() {
	r.GraphRebuildsTotal.Inc()
}

// RecordLayoutTick records one simulation tick with its current energy
func (r *Registry) RecordLayoutTick(alpha float64, nodes int) {
	r.LayoutTicksTotal.Inc()
	r.LayoutAlpha.Set(alpha)
	r.LayoutNodesSimulated.Set(float64(nodes))
}

// RecordLayoutReheat records a simulation reheat ("drag", "insert", "retune")
func (r *Registry) RecordLayoutReheat(cause string) {
	r.LayoutReheatsTotal.WithLabelValues(cause).Inc()
}

// RecordChatTurn records a finalized transcript turn
func (r *Registry) RecordChatTurn(role string) {
	r.ChatTurnsTotal.WithLabelValues(role).Inc()
}

// RecordChatError records a failed chat send
func (r *Registry) RecordChatError() {
	r.ChatStreamErrors.Inc()
}

// RecordIngestStage records a stage transition outcome
func (r *Registry) RecordIngestStage(stage, outcome string) {
	r.IngestStagesTotal.WithLabelValues(stage, outcome).Inc()
}

// RecordIngestRefetch records a graph refetch after a successful ingestion
func (r *Registry) RecordIngestRefetch() {
	r.IngestRefetchesTotal.Inc()
}
