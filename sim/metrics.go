// Derives per-process waiting/turnaround times and their averages from a
// completed execution timeline.

package sim

import (
	"fmt"
	"io"

	"github.com/inference-sim/ossim/sim/trace"
)

// ProcessMetrics holds the derived timings of one process.
type ProcessMetrics struct {
	PID        PID   `json:"pid"`
	Arrival    int64 `json:"arrival"`
	Burst      int64 `json:"burst"`
	Completion int64 `json:"completion"`
	Turnaround int64 `json:"turnaround"`
	Waiting    int64 `json:"waiting"`
}

// Result is the outcome of one scheduling call.
type Result struct {
	Algorithm     string                 `json:"-"`
	Gantt         []Segment              `json:"gantt"`
	AvgWaiting    float64                `json:"avg_waiting"`
	AvgTurnaround float64                `json:"avg_turnaround"`
	Processes     []ProcessMetrics       `json:"processes,omitempty"`
	Trace         *trace.SimulationTrace `json:"trace,omitempty"`
}

// ComputeMetrics derives per-process metrics and rounded averages from a timeline.
// A process's completion is the end of its last segment in timeline order, or
// arrival+burst when it never appears in the timeline.
func ComputeMetrics(procs []Process, gantt []Segment) *Result {
	completion := make(map[PID]int64, len(procs))
	for _, seg := range gantt {
		completion[seg.PID] = seg.End
	}

	perProcess := make([]ProcessMetrics, 0, len(procs))
	waiting := make([]int64, 0, len(procs))
	turnaround := make([]int64, 0, len(procs))
	for _, p := range procs {
		ct, ok := completion[p.PID]
		if !ok {
			ct = p.Arrival + p.Burst
		}
		tat := ct - p.Arrival
		wt := tat - p.Burst
		waiting = append(waiting, wt)
		turnaround = append(turnaround, tat)
		perProcess = append(perProcess, ProcessMetrics{
			PID: p.PID, Arrival: p.Arrival, Burst: p.Burst,
			Completion: ct, Turnaround: tat, Waiting: wt,
		})
	}

	if gantt == nil {
		gantt = []Segment{}
	}
	return &Result{
		Gantt:         gantt,
		AvgWaiting:    Round2(CalculateMean(waiting)),
		AvgTurnaround: Round2(CalculateMean(turnaround)),
		Processes:     perProcess,
	}
}

// Stats summarizes processor usage over a timeline starting at t=0.
type Stats struct {
	Makespan        int64   // end of the last segment
	BusyTime        int64   // sum of segment durations
	IdleTime        int64   // Makespan - BusyTime
	Utilization     float64 // BusyTime / Makespan, 0 for an empty timeline
	ContextSwitches int     // adjacent segment pairs belonging to different processes
	Throughput      float64 // completed processes per time unit
}

// TimelineStats computes processor usage statistics for a timeline of n processes.
func TimelineStats(gantt []Segment, n int) Stats {
	var st Stats
	for i, seg := range gantt {
		st.BusyTime += seg.Duration()
		if seg.End > st.Makespan {
			st.Makespan = seg.End
		}
		if i > 0 && gantt[i-1].PID != seg.PID {
			st.ContextSwitches++
		}
	}
	st.IdleTime = st.Makespan - st.BusyTime
	if st.Makespan > 0 {
		st.Utilization = float64(st.BusyTime) / float64(st.Makespan)
		st.Throughput = float64(n) / float64(st.Makespan)
	}
	return st
}

// Print writes a human-readable report of the result.
func (r *Result) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Scheduling (%s) ===\n", r.Algorithm)
	fmt.Fprintln(w, "Gantt:")
	for _, seg := range r.Gantt {
		fmt.Fprintf(w, "  [%4d, %4d)  %s\n", seg.Start, seg.End, seg.PID)
	}
	fmt.Fprintf(w, "%-8s %8s %8s %10s %10s %8s\n", "PID", "Arrival", "Burst", "Completion", "Turnaround", "Waiting")
	for _, p := range r.Processes {
		fmt.Fprintf(w, "%-8s %8d %8d %10d %10d %8d\n", p.PID, p.Arrival, p.Burst, p.Completion, p.Turnaround, p.Waiting)
	}
	st := TimelineStats(r.Gantt, len(r.Processes))
	fmt.Fprintf(w, "Average Waiting      : %.2f\n", r.AvgWaiting)
	fmt.Fprintf(w, "Average Turnaround   : %.2f\n", r.AvgTurnaround)
	fmt.Fprintf(w, "Makespan             : %d\n", st.Makespan)
	fmt.Fprintf(w, "CPU Utilization      : %.2f%%\n", st.Utilization*100)
	fmt.Fprintf(w, "Context Switches     : %d\n", st.ContextSwitches)
	if r.Trace != nil {
		sum := trace.Summarize(r.Trace)
		fmt.Fprintf(w, "Dispatches           : %d (preemptions: %d)\n", sum.TotalDispatches, sum.Preemptions)
	}
}
