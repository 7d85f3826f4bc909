package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches      int
	Preemptions          int
	UniquePIDs           int
	DispatchDistribution map[string]int // pid → number of times dispatched
	Placements           int
	FailedPlacements     int
	BlockDistribution    map[int]int // block id → successful placements
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchDistribution: make(map[string]int),
		BlockDistribution:    make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	for _, d := range st.Dispatches {
		summary.DispatchDistribution[d.PID]++
	}
	summary.UniquePIDs = len(summary.DispatchDistribution)
	summary.Preemptions = len(st.Preemptions)

	summary.Placements = len(st.Placements)
	for _, p := range st.Placements {
		if !p.Allocated {
			summary.FailedPlacements++
			continue
		}
		summary.BlockDistribution[p.Block]++
	}

	return summary
}
