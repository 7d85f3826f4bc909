package sim

import "fmt"

// ValidationError reports a missing or out-of-range input field.
// Field uses a path such as "processes[2].burst".
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnsupportedAlgorithmError is returned for a scheduling algorithm name outside ValidAlgorithms.
type UnsupportedAlgorithmError struct {
	Name string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported scheduling algorithm %q; valid: FCFS, SJF, SRTF, PRIORITY, RR", e.Name)
}
