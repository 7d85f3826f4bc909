package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var scenarioPath string // Path to a scenario file

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every simulation described in a scenario file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sc, err := LoadScenario(scenarioPath)
		if err != nil {
			return err
		}
		if err := sc.Validate(); err != nil {
			return fmt.Errorf("invalid scenario: %w", err)
		}
		logrus.Infof("Running scenario %q: %d scheduling, %d memory, deadlock=%v",
			sc.Name, len(sc.Scheduling), len(sc.Memory), sc.Deadlock != nil)

		results, err := sc.RunAll()
		if err != nil {
			return err
		}
		for _, res := range results {
			if err := emit(cmd, res); err != nil {
				return err
			}
		}
		logrus.Info("Scenario complete.")
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&scenarioPath, "config", "c", "scenario.yaml", "Path to scenario file")
	rootCmd.AddCommand(runCmd)
}
