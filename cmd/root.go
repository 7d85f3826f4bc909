package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel   string // Log verbosity level
	outputJSON bool   // Emit results as JSON instead of text reports
	remoteURL  string // Base URL of a running `ossim serve`; empty runs locally
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ossim",
	Short: "Simulator for classic OS resource-management algorithms",
	Long: `ossim simulates CPU scheduling (FCFS, SJF, SRTF, Priority, Round Robin),
contiguous memory allocation (first/best/worst fit) and deadlock analysis
(resource-allocation-graph cycles, Banker's algorithm) over synthetic inputs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	},
}

// printer is implemented by every result type that can render a text report.
type printer interface {
	Print(w io.Writer)
}

// emit writes res to the command's output as JSON or as a text report.
func emit(cmd *cobra.Command, res printer) error {
	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	res.Print(cmd.OutOrStdout())
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up persistent flags; subcommands register themselves in their own files
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", "", "Send requests to a running ossim server at this base URL instead of simulating locally")
}
