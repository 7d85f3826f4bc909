// Package memory implements contiguous memory allocation strategies over a
// fixed list of block capacities.
package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/ossim/sim"
	"github.com/inference-sim/ossim/sim/trace"
)

// Block is the private, mutable view of one memory block during a single call.
type Block struct {
	ID        int
	Size      int64
	Remaining int64
}

// Record is the placement outcome of one allocation request.
// Block is nil when the request could not be placed.
type Record struct {
	Process   int64 `json:"process" yaml:"process"`
	Block     *int  `json:"block" yaml:"block"`
	Allocated bool  `json:"allocated" yaml:"allocated"`
}

// Strategy picks the block for a request among the current blocks.
// Returns -1 when no block qualifies.
type Strategy interface {
	Name() string
	Choose(blocks []Block, size int64) int
}

// FirstFit picks the lowest-index block with enough remaining capacity.
type FirstFit struct{}

func (FirstFit) Name() string { return "first" }

func (FirstFit) Choose(blocks []Block, size int64) int {
	for i, b := range blocks {
		if b.Remaining >= size {
			return i
		}
	}
	return -1
}

// BestFit picks the qualifying block leaving the least slack; ties go to the lowest index.
type BestFit struct{}

func (BestFit) Name() string { return "best" }

func (BestFit) Choose(blocks []Block, size int64) int {
	best := -1
	for i, b := range blocks {
		if b.Remaining < size {
			continue
		}
		if best < 0 || b.Remaining-size < blocks[best].Remaining-size {
			best = i
		}
	}
	return best
}

// WorstFit picks the qualifying block with the most remaining capacity.
// A later block only replaces the current choice when strictly larger.
type WorstFit struct{}

func (WorstFit) Name() string { return "worst" }

func (WorstFit) Choose(blocks []Block, size int64) int {
	worst := -1
	for i, b := range blocks {
		if b.Remaining < size {
			continue
		}
		if worst < 0 || b.Remaining > blocks[worst].Remaining {
			worst = i
		}
	}
	return worst
}

// UnsupportedMethodError is returned for an allocation method name outside ValidMethods.
type UnsupportedMethodError struct {
	Name string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported allocation method %q; valid: first, best, worst", e.Name)
}

// ValidMethods is the set of recognized allocation method names (lower case).
var ValidMethods = map[string]bool{"": true, "first": true, "best": true, "worst": true}

// IsValidMethod reports whether name (case-insensitive) selects an allocation strategy.
func IsValidMethod(name string) bool {
	return ValidMethods[normalizeMethod(name)]
}

func normalizeMethod(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewStrategy creates a Strategy by name.
// Valid names: "first" (default), "best", "worst", case-insensitive.
func NewStrategy(name string) (Strategy, error) {
	switch normalizeMethod(name) {
	case "", "first":
		return FirstFit{}, nil
	case "best":
		return BestFit{}, nil
	case "worst":
		return WorstFit{}, nil
	default:
		return nil, &UnsupportedMethodError{Name: name}
	}
}

// Allocate places each request in order against a private copy of capacities.
// Placement is greedy and never revisited; a failed request leaves every block unchanged.
// The capacities slice is only read.
func Allocate(s Strategy, capacities []int64, requests []int64, tr *trace.SimulationTrace) []Record {
	blocks := make([]Block, len(capacities))
	for i, c := range capacities {
		blocks[i] = Block{ID: i, Size: c, Remaining: c}
	}

	records := make([]Record, 0, len(requests))
	for idx, size := range requests {
		i := s.Choose(blocks, size)
		if i < 0 {
			tr.RecordPlacement(trace.PlacementRecord{Index: idx, Size: size, Block: -1, Reason: s.Name() + ": no block fits"})
			records = append(records, Record{Process: size})
			continue
		}
		blocks[i].Remaining -= size
		id := blocks[i].ID
		tr.RecordPlacement(trace.PlacementRecord{
			Index: idx, Size: size, Block: id, Allocated: true,
			Reason: fmt.Sprintf("%s: %d left of %d", s.Name(), blocks[i].Remaining, blocks[i].Size),
		})
		records = append(records, Record{Process: size, Block: &id, Allocated: true})
	}
	return records
}

// Request is the transport-agnostic input of an allocation call.
type Request struct {
	Method    string  `json:"method" yaml:"method"`
	Blocks    []int64 `json:"blocks" yaml:"blocks"`
	Processes []int64 `json:"processes" yaml:"processes"`
	Trace     string  `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// Result is the outcome of an allocation call.
type Result struct {
	Method     string                 `json:"-"`
	Allocation []Record               `json:"allocation"`
	Trace      *trace.SimulationTrace `json:"trace,omitempty"`
}

// Run validates the request and executes the selected strategy.
// Errors are *UnsupportedMethodError or *sim.ValidationError.
func Run(req Request) (*Result, error) {
	strategy, err := NewStrategy(req.Method)
	if err != nil {
		return nil, err
	}
	if !trace.IsValidTraceLevel(req.Trace) {
		return nil, &sim.ValidationError{Field: "trace", Reason: fmt.Sprintf("unknown trace level %q", req.Trace)}
	}
	for i, c := range req.Blocks {
		if c < 0 {
			return nil, &sim.ValidationError{Field: "blocks[" + strconv.Itoa(i) + "]", Reason: fmt.Sprintf("must be non-negative, got %d", c)}
		}
	}
	for i, p := range req.Processes {
		if p < 0 {
			return nil, &sim.ValidationError{Field: "processes[" + strconv.Itoa(i) + "]", Reason: fmt.Sprintf("must be non-negative, got %d", p)}
		}
	}

	tr := trace.NewSimulationTrace(trace.TraceLevel(req.Trace))
	records := Allocate(strategy, req.Blocks, req.Processes, tr)

	placed := 0
	for _, r := range records {
		if r.Allocated {
			placed++
		}
	}
	logrus.Debugf("%s-fit placed %d/%d requests across %d blocks", strategy.Name(), placed, len(records), len(req.Blocks))
	return &Result{Method: strategy.Name(), Allocation: records, Trace: tr}, nil
}
