package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inference-sim/ossim/api"
	"github.com/inference-sim/ossim/sim/memory"
)

var (
	allocateInput string  // Path to an allocation request file
	method        string  // Allocation method
	blockSizes    []int64 // Inline block capacities
	requestSizes  []int64 // Inline request sizes
	allocTrace    string  // Decision trace level
)

var allocateCmd = &cobra.Command{
	Use:     "allocate",
	Short:   "Simulate contiguous memory allocation (first, best or worst fit)",
	Example: `  ossim allocate --method best --blocks 100,500,200,300,600 --requests 212,417,112,426`,
	RunE:    runAllocate,
}

func runAllocate(cmd *cobra.Command, _ []string) error {
	req, err := buildAllocateRequest(cmd)
	if err != nil {
		return err
	}
	var res *memory.Result
	if remoteURL != "" {
		res, err = api.NewClient(remoteURL).Allocate(cmd.Context(), req)
		if err == nil {
			if s, serr := memory.NewStrategy(req.Method); serr == nil {
				res.Method = s.Name()
			}
		}
	} else {
		res, err = memory.Run(req)
	}
	if err != nil {
		return fmt.Errorf("allocation failed: %w", err)
	}
	return emit(cmd, res)
}

// buildAllocateRequest merges the input file (if any) with explicitly set flags.
func buildAllocateRequest(cmd *cobra.Command) (memory.Request, error) {
	var req memory.Request
	if allocateInput != "" {
		if err := loadInput(allocateInput, &req); err != nil {
			return req, err
		}
	}
	if cmd.Flags().Changed("method") {
		req.Method = method
	}
	if cmd.Flags().Changed("blocks") {
		req.Blocks = blockSizes
	}
	if cmd.Flags().Changed("requests") {
		req.Processes = requestSizes
	}
	if cmd.Flags().Changed("trace") {
		req.Trace = allocTrace
	}
	return req, nil
}

func init() {
	allocateCmd.Flags().StringVarP(&allocateInput, "input", "i", "", "Allocation request file (YAML or JSON; - for stdin)")
	allocateCmd.Flags().StringVarP(&method, "method", "m", "first", "Allocation method (first, best, worst)")
	allocateCmd.Flags().Int64SliceVar(&blockSizes, "blocks", nil, "Comma-separated block capacities")
	allocateCmd.Flags().Int64SliceVar(&requestSizes, "requests", nil, "Comma-separated request sizes, placed in order")
	allocateCmd.Flags().StringVar(&allocTrace, "trace", "none", "Decision trace level (none, decisions)")

	rootCmd.AddCommand(allocateCmd)
}
