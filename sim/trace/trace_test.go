package trace

import (
	"testing"
)

func TestSimulationTrace_RecordDispatch_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceLevelDecisions)

	// WHEN a dispatch record is recorded
	st.RecordDispatch(DispatchRecord{
		PID:        "P1",
		Clock:      4,
		Reason:     "min-burst",
		QueueDepth: 2,
	})

	// THEN the trace contains one dispatch record with correct data
	if len(st.Dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(st.Dispatches))
	}
	if st.Dispatches[0].PID != "P1" {
		t.Errorf("expected pid P1, got %s", st.Dispatches[0].PID)
	}
	if st.Dispatches[0].QueueDepth != 2 {
		t.Errorf("expected queue depth 2, got %d", st.Dispatches[0].QueueDepth)
	}
}

func TestSimulationTrace_RecordPlacement_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceLevelDecisions)

	// WHEN a failed placement is recorded
	st.RecordPlacement(PlacementRecord{Index: 0, Size: 426, Block: -1, Allocated: false, Reason: "no block fits"})

	// THEN the trace contains the record
	if len(st.Placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(st.Placements))
	}
	if st.Placements[0].Block != -1 || st.Placements[0].Allocated {
		t.Errorf("unexpected placement %+v", st.Placements[0])
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceLevelDecisions)

	// WHEN multiple records are added
	st.RecordDispatch(DispatchRecord{PID: "P1", Clock: 0, Reason: "fifo"})
	st.RecordPreemption(PreemptionRecord{PID: "P1", Clock: 2, Remaining: 2})
	st.RecordDispatch(DispatchRecord{PID: "P2", Clock: 2, Reason: "fifo"})

	// THEN order is preserved
	if len(st.Dispatches) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(st.Dispatches))
	}
	if st.Dispatches[0].PID != "P1" || st.Dispatches[1].PID != "P2" {
		t.Error("dispatch order not preserved")
	}
	if len(st.Preemptions) != 1 || st.Preemptions[0].Remaining != 2 {
		t.Error("preemption record mismatch")
	}
}

func TestSimulationTrace_NilTrace_RecordIsNoOp(t *testing.T) {
	// GIVEN tracing disabled
	st := NewSimulationTrace(TraceLevelNone)

	// WHEN records are added to the nil trace
	st.RecordDispatch(DispatchRecord{PID: "P1"})
	st.RecordPreemption(PreemptionRecord{PID: "P1"})
	st.RecordPlacement(PlacementRecord{Index: 0})

	// THEN nothing panics and the trace stays nil
	if st != nil {
		t.Fatalf("expected nil trace for level none, got %+v", st)
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true}, // empty defaults to none
		{"detailed", false},
		{"foobar", false},
		{"NONE", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}
