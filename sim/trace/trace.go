package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures dispatch, preemption and placement decisions.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SimulationTrace collects decision records during one scheduling or allocation call.
// All Record methods are no-ops on a nil trace, so callers pass nil to disable tracing.
type SimulationTrace struct {
	Level       TraceLevel         `json:"level"`
	Dispatches  []DispatchRecord   `json:"dispatches,omitempty"`
	Preemptions []PreemptionRecord `json:"preemptions,omitempty"`
	Placements  []PlacementRecord  `json:"placements,omitempty"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
// Returns nil for TraceLevelNone (or empty), which disables recording.
func NewSimulationTrace(level TraceLevel) *SimulationTrace {
	if level == TraceLevelNone || level == "" {
		return nil
	}
	return &SimulationTrace{
		Level:       level,
		Dispatches:  make([]DispatchRecord, 0),
		Preemptions: make([]PreemptionRecord, 0),
		Placements:  make([]PlacementRecord, 0),
	}
}

// RecordDispatch appends a dispatch decision record.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	if st == nil {
		return
	}
	st.Dispatches = append(st.Dispatches, record)
}

// RecordPreemption appends a preemption record.
func (st *SimulationTrace) RecordPreemption(record PreemptionRecord) {
	if st == nil {
		return
	}
	st.Preemptions = append(st.Preemptions, record)
}

// RecordPlacement appends an allocation decision record.
func (st *SimulationTrace) RecordPlacement(record PlacementRecord) {
	if st == nil {
		return
	}
	st.Placements = append(st.Placements, record)
}
