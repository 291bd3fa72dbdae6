package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTasks         int
	StoredCount        int
	LostCount          int
	DeliveredCount     int
	UnfulfillableCount int
	MeanSteps          float64
	MaxSteps           int
	ShelfDistribution  map[int]int // shelf index -> tasks that touched it
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ShelfDistribution: make(map[int]int),
	}
	records := st.Records()
	if len(records) == 0 {
		return summary
	}

	summary.TotalTasks = len(records)
	totalSteps := 0
	for _, r := range records {
		switch r.Outcome {
		case OutcomeStored:
			summary.StoredCount++
		case OutcomeLost:
			summary.LostCount++
		case OutcomeDelivered:
			summary.DeliveredCount++
		case OutcomeUnfulfillable:
			summary.UnfulfillableCount++
		}
		if r.Shelf >= 0 {
			summary.ShelfDistribution[r.Shelf]++
		}
		totalSteps += r.Steps
		if r.Steps > summary.MaxSteps {
			summary.MaxSteps = r.Steps
		}
	}
	summary.MeanSteps = float64(totalSteps) / float64(len(records))

	return summary
}
