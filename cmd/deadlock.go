package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inference-sim/ossim/api"
	"github.com/inference-sim/ossim/sim/deadlock"
)

var deadlockInput string // Path to a process/resource snapshot file

var ragCmd = &cobra.Command{
	Use:   "rag",
	Short: "Detect a cycle in the resource-allocation graph",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := loadDeadlockRequest()
		if err != nil {
			return err
		}
		var res *deadlock.CycleResult
		if remoteURL != "" {
			res, err = api.NewClient(remoteURL).DetectCycle(cmd.Context(), req)
		} else {
			res, err = deadlock.DetectCycle(req)
		}
		if err != nil {
			return fmt.Errorf("cycle detection failed: %w", err)
		}
		return emit(cmd, res)
	},
}

var bankerCmd = &cobra.Command{
	Use:   "banker",
	Short: "Check whether a state is safe with the Banker's algorithm",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := loadDeadlockRequest()
		if err != nil {
			return err
		}
		var res *deadlock.SafetyResult
		if remoteURL != "" {
			res, err = api.NewClient(remoteURL).CheckSafety(cmd.Context(), req)
		} else {
			res, err = deadlock.CheckSafety(req)
		}
		if err != nil {
			return fmt.Errorf("safety check failed: %w", err)
		}
		return emit(cmd, res)
	},
}

func loadDeadlockRequest() (deadlock.Request, error) {
	var req deadlock.Request
	if deadlockInput == "" {
		return req, fmt.Errorf("--input is required")
	}
	err := loadInput(deadlockInput, &req)
	return req, err
}

func init() {
	for _, c := range []*cobra.Command{ragCmd, bankerCmd} {
		c.Flags().StringVarP(&deadlockInput, "input", "i", "", "Process/resource snapshot file (YAML or JSON; - for stdin)")
		rootCmd.AddCommand(c)
	}
}
