package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridplace/pkg/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve placements over HTTP",
		Long: `Serve exposes the placement pipeline as a JSON API:

  POST /v1/placements   place a problem
  POST /v1/length       measure a placement
  GET  /v1/algorithms   list algorithms
  GET  /healthz         liveness

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			runner := c.newRunner(cmd.Context(), noCache)
			defer runner.Close()

			printInfo("Listening on %s", addr)
			return api.New(runner, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the placement cache")

	return cmd
}
