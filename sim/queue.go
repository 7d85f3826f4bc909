// Implements the ReadyQueue, which holds admitted processes waiting for the CPU.
// Processes are enqueued on admission

package sim

import (
	"fmt"
	"strings"
)

// job is the working copy of a Process owned by a single policy run.
// remaining starts at Burst and is only decremented by preemptive policies.
type job struct {
	Process
	remaining int64
}

func newJobs(procs []Process) []*job {
	jobs := make([]*job, len(procs))
	for i, p := range procs {
		jobs[i] = &job{Process: p, remaining: p.Burst}
	}
	return jobs
}

// ReadyQueue is a FIFO queue of admitted jobs.
// Selection helpers scan in queue order, so ties always resolve to the
// job that was enqueued first.
type ReadyQueue struct {
	queue []*job
}

// Enqueue adds a job to the back of the queue.
func (rq *ReadyQueue) Enqueue(j *job) {
	rq.queue = append(rq.queue, j)
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, j := range rq.queue {
		sb.WriteString(fmt.Sprintf("%s(%d)", j.PID, j.remaining))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of queued jobs.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Dequeue removes and returns the job at the front of the queue.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Dequeue() *job {
	if len(rq.queue) == 0 {
		return nil
	}
	j := rq.queue[0]
	rq.queue = rq.queue[1:]
	return j
}

// PeekMin returns the first job in queue order with the smallest key, without removing it.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) PeekMin(key func(*job) int64) *job {
	idx := rq.minIndex(key)
	if idx < 0 {
		return nil
	}
	return rq.queue[idx]
}

// DequeueMin removes and returns the first job in queue order with the smallest key.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) DequeueMin(key func(*job) int64) *job {
	idx := rq.minIndex(key)
	if idx < 0 {
		return nil
	}
	j := rq.queue[idx]
	rq.queue = append(rq.queue[:idx], rq.queue[idx+1:]...)
	return j
}

func (rq *ReadyQueue) minIndex(key func(*job) int64) int {
	best := -1
	for i, j := range rq.queue {
		// strict < keeps the earliest-enqueued job on ties
		if best < 0 || key(j) < key(rq.queue[best]) {
			best = i
		}
	}
	return best
}

// admitter feeds arrival-ordered jobs into a ReadyQueue as the clock advances.
type admitter struct {
	jobs []*job // sorted by arrival (stable)
	next int
}

// admit enqueues every pending job whose arrival is at or before clock.
// Returns the number of jobs admitted.
func (a *admitter) admit(rq *ReadyQueue, clock int64) int {
	n := 0
	for a.next < len(a.jobs) && a.jobs[a.next].Arrival <= clock {
		rq.Enqueue(a.jobs[a.next])
		a.next++
		n++
	}
	return n
}

func (a *admitter) pending() bool {
	return a.next < len(a.jobs)
}

// nextArrival returns the arrival time of the next pending job.
// Callers must check pending() first.
func (a *admitter) nextArrival() int64 {
	return a.jobs[a.next].Arrival
}
