// Package trace provides decision-trace recording for scheduling and allocation runs.
// It has no dependencies on sim/ or its sub-packages and stores pure data types.
package trace

// DispatchRecord captures a policy handing the processor to a process.
type DispatchRecord struct {
	PID        string `json:"pid"`
	Clock      int64  `json:"clock"`
	Reason     string `json:"reason"`
	QueueDepth int    `json:"queue_depth"` // jobs still waiting after the pick
}

// PreemptionRecord captures a running process being taken off the processor
// before it finished.
type PreemptionRecord struct {
	PID       string `json:"pid"`
	Clock     int64  `json:"clock"`
	Remaining int64  `json:"remaining"`
	By        string `json:"by,omitempty"` // pid of the preempting process; empty for quantum expiry
}

// PlacementRecord captures a single allocation request decision.
type PlacementRecord struct {
	Index     int    `json:"index"` // position in the request sequence
	Size      int64  `json:"size"`
	Block     int    `json:"block"` // -1 when unallocated
	Allocated bool   `json:"allocated"`
	Reason    string `json:"reason"`
}
