// Defines the process descriptor consumed by the scheduling policies and the
// timeline segment they produce.

package sim

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// PID identifies a process within one request.
// Decoders accept both numbers and strings, so `1` and `"1"` name the same process.
type PID string

func (p *PID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*p = PID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("pid must be a string or a number: %w", err)
	}
	*p = PID(s)
	return nil
}

func (p *PID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: pid must be a scalar", node.Line)
	}
	*p = PID(node.Value)
	return nil
}

// ProcessSpec is the wire form of a process descriptor.
// Nil pointer fields mean "absent" so required fields can be told apart from zero values.
type ProcessSpec struct {
	PID      *PID   `json:"pid" yaml:"pid"`
	Arrival  *int64 `json:"arrival" yaml:"arrival"`
	Burst    *int64 `json:"burst" yaml:"burst"`
	Priority *int64 `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Process is a validated process descriptor.
type Process struct {
	PID      PID
	Arrival  int64
	Burst    int64
	Priority *int64 // lower number = higher priority; nil falls back to Arrival
}

// EffectivePriority returns the explicit priority, or the arrival time when none was given.
func (p Process) EffectivePriority() int64 {
	if p.Priority != nil {
		return *p.Priority
	}
	return p.Arrival
}

func (p Process) String() string {
	return fmt.Sprintf("Process: (PID: %s, Arrival: %d, Burst: %d)", p.PID, p.Arrival, p.Burst)
}

// Segment is a contiguous interval [Start, End) during which PID held the processor.
type Segment struct {
	PID   PID   `json:"pid" yaml:"pid"`
	Start int64 `json:"start" yaml:"start"`
	End   int64 `json:"end" yaml:"end"`
}

// Duration returns the executed time covered by the segment.
func (s Segment) Duration() int64 {
	return s.End - s.Start
}

// ValidateProcesses converts wire descriptors into Processes.
// Missing pid/arrival/burst, negative arrival, non-positive burst and duplicate
// pids are rejected with a *ValidationError naming the offending entry.
func ValidateProcesses(specs []ProcessSpec) ([]Process, error) {
	procs := make([]Process, 0, len(specs))
	seen := make(map[PID]bool, len(specs))
	for i, s := range specs {
		field := func(name string) string { return "processes[" + strconv.Itoa(i) + "]." + name }
		if s.PID == nil || *s.PID == "" {
			return nil, &ValidationError{Field: field("pid"), Reason: "required"}
		}
		if seen[*s.PID] {
			return nil, &ValidationError{Field: field("pid"), Reason: fmt.Sprintf("duplicate pid %q", *s.PID)}
		}
		seen[*s.PID] = true
		if s.Arrival == nil {
			return nil, &ValidationError{Field: field("arrival"), Reason: "required"}
		}
		if *s.Arrival < 0 {
			return nil, &ValidationError{Field: field("arrival"), Reason: fmt.Sprintf("must be non-negative, got %d", *s.Arrival)}
		}
		if s.Burst == nil {
			return nil, &ValidationError{Field: field("burst"), Reason: "required"}
		}
		if *s.Burst <= 0 {
			return nil, &ValidationError{Field: field("burst"), Reason: fmt.Sprintf("must be positive, got %d", *s.Burst)}
		}
		p := Process{PID: *s.PID, Arrival: *s.Arrival, Burst: *s.Burst}
		if s.Priority != nil {
			prio := *s.Priority
			p.Priority = &prio
		}
		procs = append(procs, p)
	}
	return procs, nil
}
