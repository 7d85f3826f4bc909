// Package sim provides deterministic single-processor CPU scheduling simulation.
//
// # Reading Guide
//
// Start with these files:
//   - process.go: process descriptors, wire decoding and validation
//   - queue.go: the ready queue and arrival admission shared by the policies
//   - scheduler.go: the five policies (FCFS, SJF, SRTF, Priority, Round Robin)
//   - metrics.go: completion, turnaround and waiting times derived from a timeline
//   - run.go: the request-level entry point used by the CLI and the HTTP server
//
// # Architecture
//
// Every call is self-contained: a policy receives validated processes, builds
// private working copies, and returns a timeline. Nothing is shared between calls.
// Related simulators live in sub-packages:
//   - sim/memory/: contiguous memory allocation (first, best and worst fit)
//   - sim/deadlock/: resource-allocation-graph cycles and the Banker's algorithm
//   - sim/trace/: optional decision trace recording
//   - sim/filetree/: the in-memory directory tree served by the API
//
// # Key Interfaces
//
//   - Policy: turns processes into a timeline of Segments
//   - memory.Strategy: picks a block for one allocation request
package sim
