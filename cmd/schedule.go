package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/ossim/api"
	"github.com/inference-sim/ossim/sim"
)

var (
	scheduleInput string   // Path to a scheduling request file (YAML or JSON)
	algorithm     string   // Scheduling algorithm
	quantum       int64    // Round Robin time slice
	processFlags  []string // Inline processes as pid:arrival:burst[:priority]
	traceLevel    string   // Decision trace level
	generateCount int      // Number of synthetic processes to append
	seed          int64    // Seed for synthetic process generation
	maxPriority   int64    // Upper bound of generated priorities; 0 omits them
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Simulate a CPU scheduling policy and report the Gantt chart and metrics",
	Example: `  ossim schedule --algorithm RR --quantum 2 -p P1:0:4 -p P2:1:2
  ossim schedule --input processes.yaml --algorithm SRTF --json
  ossim schedule --generate 8 --seed 7 --algorithm PRIORITY --max-priority 4`,
	RunE: runSchedule,
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	req, err := buildScheduleRequest(cmd)
	if err != nil {
		return err
	}
	var res *sim.Result
	if remoteURL != "" {
		res, err = api.NewClient(remoteURL).Schedule(cmd.Context(), req)
		if err == nil {
			if p, perr := sim.NewPolicy(req.Algorithm, req.QuantumOrDefault()); perr == nil {
				res.Algorithm = p.Name()
			}
		}
	} else {
		res, err = sim.Run(req)
	}
	if err != nil {
		return fmt.Errorf("scheduling failed: %w", err)
	}
	logrus.Infof("Scheduled %d processes with %s", len(res.Processes), res.Algorithm)
	return emit(cmd, res)
}

// buildScheduleRequest merges the input file (if any) with explicitly set flags.
// Flags win over file values; inline and generated processes are appended to those from the file.
func buildScheduleRequest(cmd *cobra.Command) (sim.ScheduleRequest, error) {
	var req sim.ScheduleRequest
	if scheduleInput != "" {
		if err := loadInput(scheduleInput, &req); err != nil {
			return req, err
		}
	}
	if cmd.Flags().Changed("algorithm") {
		req.Algorithm = algorithm
	}
	if cmd.Flags().Changed("quantum") {
		q := quantum
		req.Quantum = &q
	}
	if cmd.Flags().Changed("trace") {
		req.Trace = traceLevel
	}
	for _, s := range processFlags {
		spec, err := parseProcessFlag(s)
		if err != nil {
			return req, err
		}
		req.Processes = append(req.Processes, spec)
	}
	if generateCount > 0 {
		cfg := sim.DefaultGeneratorConfig(generateCount, seed)
		cfg.MaxPriority = maxPriority
		specs, err := sim.GenerateProcesses(cfg)
		if err != nil {
			return req, fmt.Errorf("generating processes: %w", err)
		}
		logrus.Infof("Generated %d processes (seed %d)", len(specs), seed)
		req.Processes = append(req.Processes, specs...)
	}
	return req, nil
}

// parseProcessFlag parses "pid:arrival:burst" or "pid:arrival:burst:priority".
func parseProcessFlag(s string) (sim.ProcessSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return sim.ProcessSpec{}, fmt.Errorf("process %q: want pid:arrival:burst[:priority]", s)
	}
	pid := sim.PID(parts[0])
	values := make([]int64, len(parts)-1)
	for i, raw := range parts[1:] {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return sim.ProcessSpec{}, fmt.Errorf("process %q: %w", s, err)
		}
		values[i] = v
	}
	spec := sim.ProcessSpec{PID: &pid, Arrival: &values[0], Burst: &values[1]}
	if len(values) == 3 {
		spec.Priority = &values[2]
	}
	return spec, nil
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleInput, "input", "i", "", "Scheduling request file (YAML or JSON; - for stdin)")
	scheduleCmd.Flags().StringVarP(&algorithm, "algorithm", "a", "FCFS", "Scheduling algorithm (FCFS, SJF, SRTF, PRIORITY, RR)")
	scheduleCmd.Flags().Int64VarP(&quantum, "quantum", "q", sim.DefaultQuantum, "Round Robin time quantum")
	scheduleCmd.Flags().StringArrayVarP(&processFlags, "process", "p", nil, "Inline process pid:arrival:burst[:priority] (repeatable)")
	scheduleCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")
	scheduleCmd.Flags().IntVar(&generateCount, "generate", 0, "Append this many synthetic processes")
	scheduleCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for --generate")
	scheduleCmd.Flags().Int64Var(&maxPriority, "max-priority", 0, "Largest generated priority (0 leaves priorities unset)")

	rootCmd.AddCommand(scheduleCmd)
}
