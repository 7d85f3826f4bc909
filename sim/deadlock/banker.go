package deadlock

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/ossim/sim"
)

// SafetyResult is the outcome of the Banker's safety check.
// Sequence is empty when the state is unsafe.
type SafetyResult struct {
	Safe     bool      `json:"safe"`
	Sequence []sim.PID `json:"sequence"`
}

// CheckSafety runs the Banker's safety algorithm.
//
// available[r] = instances[r] - sum of allocation[r]; need[p][r] = max(0, max[p][r] - allocation[p][r]).
// Each pass scans unfinished processes in input order and admits every one whose
// need fits in available, releasing its allocation immediately so later processes
// in the same pass see it. Passes repeat until all finish or a pass admits none.
// Only resources listed in req.Resources are considered.
func CheckSafety(req Request) (*SafetyResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	nRes := len(req.Resources)
	available := make([]int64, nRes)
	for r, res := range req.Resources {
		available[r] = *res.Instances
		for _, p := range req.Processes {
			available[r] -= p.Allocation.Get(*res.ID)
		}
	}

	need := make([][]int64, len(req.Processes))
	for i, p := range req.Processes {
		need[i] = make([]int64, nRes)
		for r, res := range req.Resources {
			need[i][r] = max(0, p.Max.Get(*res.ID)-p.Allocation.Get(*res.ID))
		}
	}

	finished := make([]bool, len(req.Processes))
	sequence := make([]sim.PID, 0, len(req.Processes))
	for progress := true; progress && len(sequence) < len(req.Processes); {
		progress = false
		for i, p := range req.Processes {
			if finished[i] || !fits(need[i], available) {
				continue
			}
			for r, res := range req.Resources {
				available[r] += p.Allocation.Get(*res.ID)
			}
			finished[i] = true
			sequence = append(sequence, *p.ID)
			progress = true
		}
	}

	res := &SafetyResult{Safe: len(sequence) == len(req.Processes), Sequence: sequence}
	if !res.Safe {
		res.Sequence = []sim.PID{}
	}
	logrus.Debugf("banker: safe=%v sequence=%v available=%v", res.Safe, res.Sequence, available)
	return res, nil
}

func fits(need, available []int64) bool {
	for r := range need {
		if need[r] > available[r] {
			return false
		}
	}
	return true
}
