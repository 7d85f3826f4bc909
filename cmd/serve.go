package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inference-sim/ossim/api"
	"github.com/inference-sim/ossim/sim/filetree"
)

var listenAddr string // Address the HTTP server binds to

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulators over HTTP/JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		server := api.NewServer(filetree.NewStore())
		return server.ListenAndServe(ctx, listenAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "127.0.0.1:5000", "Listen address")
	rootCmd.AddCommand(serveCmd)
}
