// Package ingest drives document/link ingestion against the collect
// endpoint and tracks its four-stage progress timeline from the streamed
// stage events.
package ingest

import (
	"graphcast/pkg/metrics"
)

// StageStatus is the lifecycle state of one timeline stage. Transitions are
// monotonic forward; only a new upload resets the timeline.
type StageStatus int

const (
	StatusPending StageStatus = iota
	StatusProcessing
	StatusCompleted
	StatusFailed
)

func (s StageStatus) String() string {
	switch s {
	case StatusProcessing:
		return "processing"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Wire names of the four ingestion stages, in pipeline order, plus the
// terminal failure marker.
const (
	StageTextExtraction        = "TEXT_EXTRACTION"
	StageKeywordGeneration     = "HOT_WORD_GENERATION"
	StageEmbeddingGeneration   = "EMBEDDING_GENERATION"
	StageAssociationGeneration = "HOT_WORD_ASSOCIATION_GENERATION"
	eventFailed                = "FAILED"
)

var stageOrder = [4]string{
	StageTextExtraction,
	StageKeywordGeneration,
	StageEmbeddingGeneration,
	StageAssociationGeneration,
}

var stageLabels = map[string]string{
	StageTextExtraction:        "Text Extraction",
	StageKeywordGeneration:     "Keyword Generation",
	StageEmbeddingGeneration:   "Embedding Generation",
	StageAssociationGeneration: "Association Generation",
}

// Stage is one timeline entry.
type Stage struct {
	Wire   string
	Label  string
	Status StageStatus
	Note   string
}

// Timeline tracks the fixed four-stage ingestion pipeline for one upload.
// It runs on the UI goroutine and is not safe for concurrent use.
type Timeline struct {
	stages  [4]Stage
	failed  bool
	metrics *metrics.Registry
}

// NewTimeline returns a fresh timeline with the first stage already
// processing, matching the moment the upload request is issued.
func NewTimeline() *Timeline {
	t := &Timeline{metrics: metrics.DefaultRegistry()}
	t.Reset()
	return t
}

// Reset returns all stages to their initial state for a new upload.
func (t *Timeline) Reset() {
	for i, wire := range stageOrder {
		t.stages[i] = Stage{Wire: wire, Label: stageLabels[wire], Status: StatusPending}
	}
	t.stages[0].Status = StatusProcessing
	t.failed = false
}

// Stages returns a snapshot of the timeline in pipeline order.
func (t *Timeline) Stages() []Stage {
	out := make([]Stage, len(t.stages))
	copy(out, t.stages[:])
	return out
}

// Failed reports whether the pipeline has hit a terminal failure.
func (t *Timeline) Failed() bool {
	return t.failed
}

// Apply advances the timeline for one streamed event. A stage-named event
// completes that stage and moves the next pending stage to processing; a
// FAILED event fails whichever stage is currently processing and stops all
// further progression. Events after a failure are ignored.
func (t *Timeline) Apply(eventType, note string) {
	if t.failed {
		return
	}

	if eventType == eventFailed {
		for i := range t.stages {
			if t.stages[i].Status == StatusProcessing {
				t.stages[i].Status = StatusFailed
				if note != "" {
					t.stages[i].Note = note
				}
				t.metrics.RecordIngestStage(t.stages[i].Wire, StatusFailed.String())
				break
			}
		}
		t.failed = true
		return
	}

	for i := range t.stages {
		if t.stages[i].Wire != eventType {
			continue
		}
		if t.stages[i].Status == StatusCompleted {
			return
		}
		t.stages[i].Status = StatusCompleted
		if note != "" {
			t.stages[i].Note = note
		}
		t.metrics.RecordIngestStage(t.stages[i].Wire, StatusCompleted.String())
		if i+1 < len(t.stages) && t.stages[i+1].Status == StatusPending {
			t.stages[i+1].Status = StatusProcessing
		}
		return
	}
}

// CloseOut forces any stage still pending or processing to completed. Called
// when the stream finishes cleanly without a failure; backends do not always
// emit every stage event before closing.
func (t *Timeline) CloseOut() {
	if t.failed {
		return
	}
	for i := range t.stages {
		if t.stages[i].Status == StatusPending || t.stages[i].Status == StatusProcessing {
			t.stages[i].Status = StatusCompleted
		}
	}
}

// Abort marks every non-completed stage failed after a transport-level
// exception.
func (t *Timeline) Abort() {
	for i := range t.stages {
		if t.stages[i].Status != StatusCompleted {
			t.stages[i].Status = StatusFailed
		}
	}
	t.failed = true
}
