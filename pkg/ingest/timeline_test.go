package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statuses(tl *Timeline) []StageStatus {
	stages := tl.Stages()
	out := make([]StageStatus, len(stages))
	for i, s := range stages {
		out[i] = s.Status
	}
	return out
}

func TestNewTimelineStartsFirstStageProcessing(t *testing.T) {
	tl := NewTimeline()
	assert.Equal(t, []StageStatus{
		StatusProcessing, StatusPending, StatusPending, StatusPending,
	}, statuses(tl))
	assert.False(t, tl.Failed())
}

func TestAllStagesCompleteInOrder(t *testing.T) {
	tl := NewTimeline()

	tl.Apply(StageTextExtraction, "")
	assert.Equal(t, []StageStatus{
		StatusCompleted, StatusProcessing, StatusPending, StatusPending,
	}, statuses(tl))

	tl.Apply(StageKeywordGeneration, "")
	tl.Apply(StageEmbeddingGeneration, "")
	tl.Apply(StageAssociationGeneration, "")
	assert.Equal(t, []StageStatus{
		StatusCompleted, StatusCompleted, StatusCompleted, StatusCompleted,
	}, statuses(tl))
	assert.False(t, tl.Failed())
}

func TestFailureMarksProcessingStageAndStopsProgression(t *testing.T) {
	tl := NewTimeline()

	tl.Apply(StageTextExtraction, "")
	tl.Apply(eventFailed, "extractor crashed")

	stages := tl.Stages()
	assert.Equal(t, []StageStatus{
		StatusCompleted, StatusFailed, StatusPending, StatusPending,
	}, statuses(tl))
	assert.Equal(t, "extractor crashed", stages[1].Note)
	require.True(t, tl.Failed())

	// Nothing advances after a failure.
	tl.Apply(StageEmbeddingGeneration, "")
	assert.Equal(t, []StageStatus{
		StatusCompleted, StatusFailed, StatusPending, StatusPending,
	}, statuses(tl))
}

func TestCloseOutCompletesRemainingStages(t *testing.T) {
	tl := NewTimeline()
	tl.Apply(StageTextExtraction, "")

	tl.CloseOut()
	assert.Equal(t, []StageStatus{
		StatusCompleted, StatusCompleted, StatusCompleted, StatusCompleted,
	}, statuses(tl))
}

func TestCloseOutAfterFailureIsNoOp(t *testing.T) {
	tl := NewTimeline()
	tl.Apply(eventFailed, "")

	tl.CloseOut()
	assert.Equal(t, []StageStatus{
		StatusFailed, StatusPending, StatusPending, StatusPending,
	}, statuses(tl))
}

func TestAbortFailsAllNonCompletedStages(t *testing.T) {
	tl := NewTimeline()
	tl.Apply(StageTextExtraction, "")

	tl.Abort()
	assert.Equal(t, []StageStatus{
		StatusCompleted, StatusFailed, StatusFailed, StatusFailed,
	}, statuses(tl))
	assert.True(t, tl.Failed())
}

func TestResetStartsOver(t *testing.T) {
	tl := NewTimeline()
	tl.Apply(StageTextExtraction, "")
	tl.Apply(eventFailed, "")

	tl.Reset()
	assert.Equal(t, []StageStatus{
		StatusProcessing, StatusPending, StatusPending, StatusPending,
	}, statuses(tl))
	assert.False(t, tl.Failed())
}

func TestDuplicateStageEventIgnored(t *testing.T) {
	tl := NewTimeline()
	tl.Apply(StageTextExtraction, "first note")
	tl.Apply(StageTextExtraction, "second note")

	stages := tl.Stages()
	assert.Equal(t, "first note", stages[0].Note)
	assert.Equal(t, StatusProcessing, stages[1].Status)
}
