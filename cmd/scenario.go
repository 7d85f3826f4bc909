package cmd

import (
	"fmt"

	"github.com/inference-sim/ossim/sim"
	"github.com/inference-sim/ossim/sim/deadlock"
	"github.com/inference-sim/ossim/sim/memory"
	"github.com/inference-sim/ossim/sim/trace"
)

// Scenario bundles one request per simulator, loadable from a YAML file.
// Nil sections are skipped.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	Name       string                `yaml:"name"`
	Scheduling []sim.ScheduleRequest `yaml:"scheduling"`
	Memory     []memory.Request      `yaml:"memory"`
	Deadlock   *deadlock.Request     `yaml:"deadlock"`
}

// LoadScenario reads and strictly parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	var sc Scenario
	if err := loadInput(path, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks algorithm, method and trace names up front so a typo fails
// before any section runs. Field-level checks happen inside each simulator.
func (s *Scenario) Validate() error {
	for i, req := range s.Scheduling {
		if !sim.IsValidAlgorithm(req.Algorithm) {
			return fmt.Errorf("scheduling[%d]: %w", i, &sim.UnsupportedAlgorithmError{Name: req.Algorithm})
		}
		if !trace.IsValidTraceLevel(req.Trace) {
			return fmt.Errorf("scheduling[%d]: unknown trace level %q", i, req.Trace)
		}
	}
	for i, req := range s.Memory {
		if !memory.IsValidMethod(req.Method) {
			return fmt.Errorf("memory[%d]: %w", i, &memory.UnsupportedMethodError{Name: req.Method})
		}
		if !trace.IsValidTraceLevel(req.Trace) {
			return fmt.Errorf("memory[%d]: unknown trace level %q", i, req.Trace)
		}
	}
	if s.Deadlock != nil {
		if err := s.Deadlock.Validate(); err != nil {
			return fmt.Errorf("deadlock: %w", err)
		}
	}
	return nil
}

// RunAll executes every section in file order and returns the printable results.
// Stops at the first failing section.
func (s *Scenario) RunAll() ([]printer, error) {
	var out []printer
	for i, req := range s.Scheduling {
		res, err := sim.Run(req)
		if err != nil {
			return nil, fmt.Errorf("scheduling[%d]: %w", i, err)
		}
		out = append(out, res)
	}
	for i, req := range s.Memory {
		res, err := memory.Run(req)
		if err != nil {
			return nil, fmt.Errorf("memory[%d]: %w", i, err)
		}
		out = append(out, res)
	}
	if s.Deadlock != nil {
		cycle, err := deadlock.DetectCycle(*s.Deadlock)
		if err != nil {
			return nil, fmt.Errorf("deadlock: %w", err)
		}
		safety, err := deadlock.CheckSafety(*s.Deadlock)
		if err != nil {
			return nil, fmt.Errorf("deadlock: %w", err)
		}
		out = append(out, cycle, safety)
	}
	return out, nil
}
