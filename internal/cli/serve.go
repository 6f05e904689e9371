package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mulnet/pkg/cache"
	"github.com/matzehuels/mulnet/pkg/observability"
	"github.com/matzehuels/mulnet/pkg/pipeline"
	"github.com/matzehuels/mulnet/pkg/server"
)

// serverKeyPrefix keeps server cache entries apart from CLI entries.
const serverKeyPrefix = "server:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve comparisons and conversions over HTTP",
		Long: `Run the HTTP API.

  POST /v1/compare   {"a": ..., "b": ..., "options": {...}}
  POST /v1/convert   {"input": ..., "to": "newick|enewick|json"}
  POST /v1/render    {"input": ..., "format": "svg|png|dot"}
  GET  /healthz
  GET  /metrics

Inputs are Newick or extended Newick strings, or JSON graph objects.`,
		Example: `  mulnet serve --addr :9000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			cc, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, serverKeyPrefix), c.Logger)
			defer runner.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			hooks := observability.NewPrometheusHooks(reg)
			observability.SetCompareHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			srv := server.New(runner, server.Config{
				Addr:         cfg.Server.Addr,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				Defaults:     cfg.PipelineOptions(),
				Gatherer:     reg,
			}, c.Logger)
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
