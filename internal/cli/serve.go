package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridraw/pkg/api"
	"github.com/matzehuels/gridraw/pkg/cache"
	"github.com/matzehuels/gridraw/pkg/observability/prom"
)

// serveCommand creates the serve command, which starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		metrics bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Drawings are persisted when [store] is configured; without a store only the
ordering and drawing endpoints are available. Cache entries of the server
are kept apart from those of the command line.

Routes:
  POST   /v1/orderings
  POST   /v1/drawings
  GET    /v1/drawings
  GET    /v1/drawings/{id}
  DELETE /v1/drawings/{id}
  GET    /healthz
  GET    /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("metrics") {
				metrics = c.Config.Server.Metrics
			}
			return c.runServe(cmd.Context(), addr, metrics, timeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "expose Prometheus metrics at /metrics")
	cmd.Flags().DurationVar(&timeout, "timeout", api.DefaultTimeout, "per-request timeout")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, metrics bool, timeout time.Duration) error {
	runner, err := c.newRunner(ctx, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:"), true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close(context.Background())

	cfg := api.Config{Runner: runner, Logger: c.Logger, Timeout: timeout}
	if metrics {
		m := prom.New(nil)
		m.Register()
		cfg.Metrics = m.Handler()
	}

	c.printSuccess("Listening on %s", addr)
	if runner.Store == nil {
		c.printWarning("No store configured; drawings are not persisted")
	}
	return api.New(cfg).ListenAndServe(ctx, addr)
}
