package trace

import "sync"

// TraceLevel controls the verbosity of task tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTasks captures every robot task.
	TraceLevelTasks TraceLevel = "tasks"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelTasks: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level      TraceLevel
	MaxRecords int // oldest records are discarded beyond this; 0 = unbounded
}

// SimulationTrace collects task records. Both robot controllers record into
// the same trace, so access is serialized.
type SimulationTrace struct {
	Config TraceConfig

	mu      sync.Mutex
	records []TaskRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:  config,
		records: make([]TaskRecord, 0),
	}
}

// Enabled reports whether records are kept. Safe on a nil trace.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelTasks
}

// RecordTask appends a task record. No-op when tracing is disabled.
func (st *SimulationTrace) RecordTask(record TaskRecord) {
	if !st.Enabled() {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.records = append(st.records, record)
	if limit := st.Config.MaxRecords; limit > 0 && len(st.records) > limit {
		st.records = append(st.records[:0:0], st.records[len(st.records)-limit:]...)
	}
}

// Records returns a copy of the recorded tasks in completion order.
func (st *SimulationTrace) Records() []TaskRecord {
	if st == nil {
		return nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]TaskRecord, len(st.records))
	copy(out, st.records)
	return out
}
