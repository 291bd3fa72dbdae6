package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_Nil_ReturnsZeroValues(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.TotalTasks)
	assert.NotNil(t, summary.ShelfDistribution)
}

func TestSummarize_CountsOutcomesAndSteps(t *testing.T) {
	// GIVEN a trace with one task of each outcome
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTasks})
	st.RecordTask(TaskRecord{Outcome: OutcomeStored, Shelf: 0, Slot: 0, Steps: 4})
	st.RecordTask(TaskRecord{Outcome: OutcomeLost, Shelf: -1, Slot: -1, Steps: 0})
	st.RecordTask(TaskRecord{Outcome: OutcomeDelivered, Shelf: 0, Slot: 0, Steps: 10})
	st.RecordTask(TaskRecord{Outcome: OutcomeUnfulfillable, Shelf: -1, Slot: -1, Steps: 0})

	// WHEN summarized
	summary := Summarize(st)

	// THEN every outcome is counted once and steps are aggregated
	assert.Equal(t, 4, summary.TotalTasks)
	assert.Equal(t, 1, summary.StoredCount)
	assert.Equal(t, 1, summary.LostCount)
	assert.Equal(t, 1, summary.DeliveredCount)
	assert.Equal(t, 1, summary.UnfulfillableCount)
	assert.Equal(t, 10, summary.MaxSteps)
	assert.InDelta(t, 3.5, summary.MeanSteps, 1e-9)
	assert.Equal(t, map[int]int{0: 2}, summary.ShelfDistribution)
}
