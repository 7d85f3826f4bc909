package deadlock

import (
	"fmt"
	"io"
)

// Print writes a human-readable cycle report.
func (r *CycleResult) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Resource Allocation Graph ===")
	if !r.HasCycle {
		fmt.Fprintln(w, "No cycle: no deadlock possible in this snapshot")
		return
	}
	fmt.Fprintf(w, "Cycle detected through %v\n", r.CycleNodes)
}

// Print writes a human-readable safety report.
func (r *SafetyResult) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Banker's Algorithm ===")
	if !r.Safe {
		fmt.Fprintln(w, "UNSAFE: no completion order satisfies every maximum demand")
		return
	}
	fmt.Fprintf(w, "SAFE, sequence: %v\n", r.Sequence)
}
