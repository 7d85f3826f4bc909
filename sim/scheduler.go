package sim

import (
	"sort"
	"strings"

	"github.com/inference-sim/ossim/sim/trace"
)

// DefaultQuantum is the Round Robin time slice used when a request omits one.
const DefaultQuantum int64 = 4

// Policy turns a validated process set into an execution timeline on a single
// simulated processor. Implementations own their working copies: the input
// slice is never modified, and nothing survives between calls.
type Policy interface {
	Name() string
	Schedule(procs []Process, tr *trace.SimulationTrace) []Segment
}

// sortedByArrival returns fresh jobs ordered by arrival.
// The sort is stable, so equal arrivals keep their input order.
func sortedByArrival(procs []Process) []*job {
	jobs := newJobs(procs)
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].Arrival < jobs[j].Arrival
	})
	return jobs
}

// FCFSScheduler runs processes to completion in arrival order.
type FCFSScheduler struct{}

func (f *FCFSScheduler) Name() string { return "FCFS" }

func (f *FCFSScheduler) Schedule(procs []Process, tr *trace.SimulationTrace) []Segment {
	jobs := sortedByArrival(procs)
	gantt := make([]Segment, 0, len(jobs))
	var clock int64
	for i, j := range jobs {
		if clock < j.Arrival {
			clock = j.Arrival
		}
		waiting := 0
		for _, other := range jobs[i+1:] {
			if other.Arrival <= clock {
				waiting++
			}
		}
		tr.RecordDispatch(trace.DispatchRecord{PID: string(j.PID), Clock: clock, Reason: "earliest-arrival", QueueDepth: waiting})
		gantt = append(gantt, Segment{PID: j.PID, Start: clock, End: clock + j.Burst})
		clock += j.Burst
	}
	return gantt
}

// SJFScheduler is non-preemptive Shortest Job First.
// Ties on burst go to the job admitted first.
type SJFScheduler struct{}

func (s *SJFScheduler) Name() string { return "SJF" }

func (s *SJFScheduler) Schedule(procs []Process, tr *trace.SimulationTrace) []Segment {
	return runToCompletion(procs, func(j *job) int64 { return j.Burst }, "min-burst", tr)
}

// PriorityScheduler is non-preemptive priority scheduling; a lower number wins.
// Processes without a priority use their arrival time.
type PriorityScheduler struct{}

func (p *PriorityScheduler) Name() string { return "PRIORITY" }

func (p *PriorityScheduler) Schedule(procs []Process, tr *trace.SimulationTrace) []Segment {
	return runToCompletion(procs, func(j *job) int64 { return j.EffectivePriority() }, "min-priority", tr)
}

// runToCompletion drives the non-preemptive admission-queue policies.
// At each decision point every arrived job is admitted; an empty queue jumps
// the clock to the next arrival; otherwise the minimum-key job runs to completion.
func runToCompletion(procs []Process, key func(*job) int64, reason string, tr *trace.SimulationTrace) []Segment {
	adm := &admitter{jobs: sortedByArrival(procs)}
	var rq ReadyQueue
	gantt := make([]Segment, 0, len(procs))
	var clock int64
	for adm.pending() || rq.Len() > 0 {
		adm.admit(&rq, clock)
		if rq.Len() == 0 {
			clock = adm.nextArrival()
			continue
		}
		j := rq.DequeueMin(key)
		tr.RecordDispatch(trace.DispatchRecord{PID: string(j.PID), Clock: clock, Reason: reason, QueueDepth: rq.Len()})
		gantt = append(gantt, Segment{PID: j.PID, Start: clock, End: clock + j.Burst})
		clock += j.Burst
	}
	return gantt
}

// SRTFScheduler is preemptive Shortest Remaining Time First, simulated in unit steps.
// A queued job preempts the running one only when its remaining time is strictly
// smaller; equal remaining times never preempt.
type SRTFScheduler struct{}

func (s *SRTFScheduler) Name() string { return "SRTF" }

func (s *SRTFScheduler) Schedule(procs []Process, tr *trace.SimulationTrace) []Segment {
	adm := &admitter{jobs: sortedByArrival(procs)}
	remaining := func(j *job) int64 { return j.remaining }
	var rq ReadyQueue
	var current *job
	gantt := make([]Segment, 0, len(procs))
	var clock int64
	for adm.pending() || rq.Len() > 0 || current != nil {
		adm.admit(&rq, clock)

		if current != nil {
			if next := rq.PeekMin(remaining); next != nil && next.remaining < current.remaining {
				tr.RecordPreemption(trace.PreemptionRecord{PID: string(current.PID), Clock: clock, Remaining: current.remaining, By: string(next.PID)})
				rq.Enqueue(current)
				current = nil
			}
		}

		if current == nil && rq.Len() > 0 {
			current = rq.DequeueMin(remaining)
			tr.RecordDispatch(trace.DispatchRecord{PID: string(current.PID), Clock: clock, Reason: "min-remaining", QueueDepth: rq.Len()})
			if n := len(gantt); n == 0 || gantt[n-1].PID != current.PID || gantt[n-1].End != clock {
				gantt = append(gantt, Segment{PID: current.PID, Start: clock, End: clock})
			}
		}

		if current == nil {
			// idle: nothing queued, so another arrival must be pending
			clock = adm.nextArrival()
			continue
		}

		current.remaining--
		clock++
		gantt[len(gantt)-1].End = clock
		if current.remaining == 0 {
			current = nil
		}
	}
	return mergeSegments(gantt)
}

// mergeSegments joins adjacent segments of the same process with no gap between them.
func mergeSegments(gantt []Segment) []Segment {
	merged := make([]Segment, 0, len(gantt))
	for _, seg := range gantt {
		if n := len(merged); n > 0 && merged[n-1].PID == seg.PID && merged[n-1].End == seg.Start {
			merged[n-1].End = seg.End
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}

// RoundRobinScheduler is preemptive FIFO scheduling with a fixed time slice.
// Jobs arriving up to and including the end of a slice are queued ahead of the
// job whose slice just expired.
type RoundRobinScheduler struct {
	Quantum int64
}

func (r *RoundRobinScheduler) Name() string { return "RR" }

func (r *RoundRobinScheduler) Schedule(procs []Process, tr *trace.SimulationTrace) []Segment {
	adm := &admitter{jobs: sortedByArrival(procs)}
	var rq ReadyQueue
	gantt := make([]Segment, 0, len(procs))
	var clock int64
	for adm.pending() || rq.Len() > 0 {
		adm.admit(&rq, clock)
		if rq.Len() == 0 {
			clock = adm.nextArrival()
			continue
		}
		j := rq.Dequeue()
		tr.RecordDispatch(trace.DispatchRecord{PID: string(j.PID), Clock: clock, Reason: "fifo", QueueDepth: rq.Len()})
		slice := min(r.Quantum, j.remaining)
		gantt = append(gantt, Segment{PID: j.PID, Start: clock, End: clock + slice})
		j.remaining -= slice
		clock += slice

		adm.admit(&rq, clock)
		if j.remaining > 0 {
			tr.RecordPreemption(trace.PreemptionRecord{PID: string(j.PID), Clock: clock, Remaining: j.remaining})
			rq.Enqueue(j)
		}
	}
	return gantt
}

// ValidAlgorithms is the set of recognized scheduling algorithm names (upper case).
// Shared by IsValidAlgorithm() and NewPolicy() to avoid duplication.
var ValidAlgorithms = map[string]bool{
	"": true, "FCFS": true, "SJF": true, "SRTF": true, "PRIORITY": true, "RR": true, "ROUNDROBIN": true,
}

// IsValidAlgorithm reports whether name (case-insensitive) selects a scheduling policy.
func IsValidAlgorithm(name string) bool {
	return ValidAlgorithms[normalizeAlgorithm(name)]
}

func normalizeAlgorithm(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NewPolicy creates a Policy by name.
// Valid names: "FCFS" (default), "SJF", "SRTF", "PRIORITY", "RR" / "ROUNDROBIN", case-insensitive.
// The quantum is only consulted for Round Robin and must be positive there.
func NewPolicy(name string, quantum int64) (Policy, error) {
	if !IsValidAlgorithm(name) {
		return nil, &UnsupportedAlgorithmError{Name: name}
	}
	switch normalizeAlgorithm(name) {
	case "", "FCFS":
		return &FCFSScheduler{}, nil
	case "SJF":
		return &SJFScheduler{}, nil
	case "SRTF":
		return &SRTFScheduler{}, nil
	case "PRIORITY":
		return &PriorityScheduler{}, nil
	case "RR", "ROUNDROBIN":
		if quantum <= 0 {
			return nil, &ValidationError{Field: "quantum", Reason: "must be positive"}
		}
		return &RoundRobinScheduler{Quantum: quantum}, nil
	default:
		return nil, &UnsupportedAlgorithmError{Name: name}
	}
}
