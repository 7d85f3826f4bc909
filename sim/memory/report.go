package memory

import (
	"fmt"
	"io"
)

// Print writes a human-readable placement table.
func (r *Result) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Memory Allocation (%s fit) ===\n", r.Method)
	for i, rec := range r.Allocation {
		if rec.Allocated {
			fmt.Fprintf(w, "  #%-3d size %-6d -> block %d\n", i, rec.Process, *rec.Block)
		} else {
			fmt.Fprintf(w, "  #%-3d size %-6d -> unallocated\n", i, rec.Process)
		}
	}
}
