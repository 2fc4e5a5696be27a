package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isofixture/internal/server"
)

// serveCommand creates the serve command, exposing fixture generation over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve fixtures over HTTP",
		Long: `Start an HTTP server that generates fixtures on demand.

Endpoints:
  GET /v1/token?nodes=N&coverage=C&seed=S          token graph (text)
  GET /v1/pattern?nodes=N&coverage=C&seed=S&index=I pattern I (text)
  GET /v1/fixture?nodes=N&coverage=C&seed=S&isographs=K  token and patterns (JSON)
  GET /healthz, /version, /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			server.NewMetrics(reg).Install()

			printInfo("Listening on %s", addr)
			return server.New(runner, c.Logger, reg).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the token cache")

	return cmd
}
