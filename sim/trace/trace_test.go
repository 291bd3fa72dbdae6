package trace

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationTrace_RecordTask_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for tasks
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTasks})

	// WHEN a task record is recorded
	st.RecordTask(TaskRecord{ID: "t1", Robot: "supply", Item: "A", Outcome: OutcomeStored, Shelf: 0, Slot: 0, Steps: 7})

	// THEN the trace contains one record with correct data
	records := st.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "t1", records[0].ID)
	assert.Equal(t, OutcomeStored, records[0].Outcome)
}

func TestSimulationTrace_LevelNone_DropsRecords(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelNone})
	st.RecordTask(TaskRecord{ID: "t1"})
	assert.Empty(t, st.Records())
}

func TestSimulationTrace_Nil_IsSafe(t *testing.T) {
	var st *SimulationTrace
	assert.False(t, st.Enabled())
	st.RecordTask(TaskRecord{ID: "t1"})
	assert.Nil(t, st.Records())
}

func TestSimulationTrace_MaxRecords_KeepsNewest(t *testing.T) {
	// GIVEN a trace bounded to 2 records
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTasks, MaxRecords: 2})

	// WHEN three records are added
	for _, id := range []string{"a", "b", "c"} {
		st.RecordTask(TaskRecord{ID: id})
	}

	// THEN the oldest is discarded and order is preserved
	records := st.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "c", records[1].ID)
}

func TestSimulationTrace_ConcurrentRecorders(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTasks})
	var wg sync.WaitGroup
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				st.RecordTask(TaskRecord{ID: NewTaskID()})
			}
		}()
	}
	wg.Wait()
	assert.Len(t, st.Records(), 200)
}

func TestNewTaskID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTaskID()
		require.False(t, seen[id], "duplicate task id %s", id)
		seen[id] = true
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"tasks", true},
		{"", true},
		{"decisions", false},
		{"TASKS", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.valid, IsValidTraceLevel(tc.level), "level %q", tc.level)
	}
}
