package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	// GIVEN tracing disabled
	var st *SimulationTrace

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero and maps are usable
	if summary.TotalDispatches != 0 || summary.Preemptions != 0 || summary.Placements != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if summary.DispatchDistribution == nil || summary.BlockDistribution == nil {
		t.Error("expected non-nil distributions")
	}
}

func TestSummarize_SchedulingTrace_CorrectCounts(t *testing.T) {
	// GIVEN a round-robin style trace where P1 is dispatched twice
	st := NewSimulationTrace(TraceLevelDecisions)
	st.RecordDispatch(DispatchRecord{PID: "P1", Clock: 0})
	st.RecordPreemption(PreemptionRecord{PID: "P1", Clock: 2, Remaining: 2})
	st.RecordDispatch(DispatchRecord{PID: "P2", Clock: 2})
	st.RecordDispatch(DispatchRecord{PID: "P1", Clock: 4})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalDispatches != 3 {
		t.Errorf("expected 3 dispatches, got %d", summary.TotalDispatches)
	}
	if summary.Preemptions != 1 {
		t.Errorf("expected 1 preemption, got %d", summary.Preemptions)
	}
	if summary.UniquePIDs != 2 {
		t.Errorf("expected 2 unique pids, got %d", summary.UniquePIDs)
	}
	if summary.DispatchDistribution["P1"] != 2 {
		t.Errorf("expected P1 dispatched twice, got %d", summary.DispatchDistribution["P1"])
	}
}

func TestSummarize_PlacementTrace_CountsFailuresAndBlocks(t *testing.T) {
	// GIVEN first-fit placements with one failure
	st := NewSimulationTrace(TraceLevelDecisions)
	st.RecordPlacement(PlacementRecord{Index: 0, Size: 212, Block: 1, Allocated: true})
	st.RecordPlacement(PlacementRecord{Index: 1, Size: 417, Block: 4, Allocated: true})
	st.RecordPlacement(PlacementRecord{Index: 2, Size: 112, Block: 1, Allocated: true})
	st.RecordPlacement(PlacementRecord{Index: 3, Size: 426, Block: -1, Allocated: false})

	// WHEN summarized
	summary := Summarize(st)

	// THEN failures are counted separately from the per-block distribution
	if summary.Placements != 4 {
		t.Errorf("expected 4 placements, got %d", summary.Placements)
	}
	if summary.FailedPlacements != 1 {
		t.Errorf("expected 1 failed placement, got %d", summary.FailedPlacements)
	}
	if summary.BlockDistribution[1] != 2 || summary.BlockDistribution[4] != 1 {
		t.Errorf("unexpected block distribution %v", summary.BlockDistribution)
	}
	if _, ok := summary.BlockDistribution[-1]; ok {
		t.Error("unallocated marker must not appear in block distribution")
	}
}
