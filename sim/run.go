package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/ossim/sim/trace"
)

// ScheduleRequest is the transport-agnostic input of a scheduling call.
// A nil Quantum means DefaultQuantum.
type ScheduleRequest struct {
	Algorithm string        `json:"algorithm" yaml:"algorithm"`
	Quantum   *int64        `json:"quantum,omitempty" yaml:"quantum,omitempty"`
	Processes []ProcessSpec `json:"processes" yaml:"processes"`
	Trace     string        `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// QuantumOrDefault returns the requested quantum or DefaultQuantum.
func (r ScheduleRequest) QuantumOrDefault() int64 {
	if r.Quantum != nil {
		return *r.Quantum
	}
	return DefaultQuantum
}

// Run validates the request, executes the selected policy and computes metrics.
// Errors are *UnsupportedAlgorithmError or *ValidationError; no partial result
// is returned alongside an error.
func Run(req ScheduleRequest) (*Result, error) {
	if !trace.IsValidTraceLevel(req.Trace) {
		return nil, &ValidationError{Field: "trace", Reason: fmt.Sprintf("unknown trace level %q", req.Trace)}
	}
	policy, err := NewPolicy(req.Algorithm, req.QuantumOrDefault())
	if err != nil {
		return nil, err
	}
	procs, err := ValidateProcesses(req.Processes)
	if err != nil {
		return nil, err
	}

	tr := trace.NewSimulationTrace(trace.TraceLevel(req.Trace))
	gantt := policy.Schedule(procs, tr)
	res := ComputeMetrics(procs, gantt)
	res.Algorithm = policy.Name()
	res.Trace = tr

	logrus.Debugf("%s scheduled %d processes into %d segments (avg_waiting=%.2f, avg_turnaround=%.2f)",
		policy.Name(), len(procs), len(res.Gantt), res.AvgWaiting, res.AvgTurnaround)
	return res, nil
}
