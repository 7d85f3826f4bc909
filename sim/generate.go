// Produces synthetic, reproducible process sets for classroom exercises and
// policy comparisons.

package sim

import (
	"fmt"
	"strconv"
)

// GeneratorConfig describes a synthetic process set.
// Arrival gaps are drawn uniformly from [0, MaxGap]; bursts from [MinBurst, MaxBurst];
// priorities, when MaxPriority > 0, from [0, MaxPriority].
type GeneratorConfig struct {
	Count       int
	Seed        int64
	MaxGap      int64
	MinBurst    int64
	MaxBurst    int64
	MaxPriority int64
}

// DefaultGeneratorConfig returns the ranges used by `ossim schedule --generate`.
func DefaultGeneratorConfig(count int, seed int64) GeneratorConfig {
	return GeneratorConfig{Count: count, Seed: seed, MaxGap: 3, MinBurst: 1, MaxBurst: 10}
}

// Validate checks that the ranges are non-empty and produce valid processes.
func (c GeneratorConfig) Validate() error {
	if c.Count < 0 {
		return &ValidationError{Field: "count", Reason: fmt.Sprintf("must be non-negative, got %d", c.Count)}
	}
	if c.MaxGap < 0 {
		return &ValidationError{Field: "max_gap", Reason: fmt.Sprintf("must be non-negative, got %d", c.MaxGap)}
	}
	if c.MinBurst <= 0 {
		return &ValidationError{Field: "min_burst", Reason: fmt.Sprintf("must be positive, got %d", c.MinBurst)}
	}
	if c.MaxBurst < c.MinBurst {
		return &ValidationError{Field: "max_burst", Reason: fmt.Sprintf("must be >= min_burst (%d), got %d", c.MinBurst, c.MaxBurst)}
	}
	if c.MaxPriority < 0 {
		return &ValidationError{Field: "max_priority", Reason: fmt.Sprintf("must be non-negative, got %d", c.MaxPriority)}
	}
	return nil
}

// GenerateProcesses returns Count process descriptors named P1..Pn with
// non-decreasing arrivals, the first at 0.
func GenerateProcesses(cfg GeneratorConfig) ([]ProcessSpec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(Seed(cfg.Seed))
	arrivals := rng.ForStream(StreamArrival)
	bursts := rng.ForStream(StreamBurst)
	priorities := rng.ForStream(StreamPriority)

	specs := make([]ProcessSpec, cfg.Count)
	var clock int64
	for i := range specs {
		if i > 0 {
			clock += arrivals.Int63n(cfg.MaxGap + 1)
		}
		pid := PID("P" + strconv.Itoa(i+1))
		arrival := clock
		burst := cfg.MinBurst + bursts.Int63n(cfg.MaxBurst-cfg.MinBurst+1)
		specs[i] = ProcessSpec{PID: &pid, Arrival: &arrival, Burst: &burst}
		if cfg.MaxPriority > 0 {
			prio := priorities.Int63n(cfg.MaxPriority + 1)
			specs[i].Priority = &prio
		}
	}
	return specs, nil
}
