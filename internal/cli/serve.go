package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fractal/pkg/cache"
	"github.com/matzehuels/fractal/pkg/observability"
	"github.com/matzehuels/fractal/pkg/server"
	"github.com/matzehuels/fractal/pkg/session"
	"github.com/matzehuels/fractal/pkg/store"
)

// serveCommand creates the serve command, which runs the HTTP API until the
// context is cancelled.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editing API over HTTP",
		Long: `Serve the editing API over HTTP.

Each session holds one tree with its own undo history. Sessions idle for
longer than server.session_ttl are dropped. Prometheus metrics are exposed
at /metrics.`,
		Example: `  fractal serve
  fractal serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			srv, err := c.newServer(cmd.Context())
			if err != nil {
				return err
			}
			printInfo(cmd.ErrOrStderr(), "Listening on %s", StyleHighlight.Render(addr))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// newServer wires the registry, metrics, diagram cache and logger from the
// configuration.
func (c *CLI) newServer(ctx context.Context) (*server.Server, error) {
	initial, err := c.Config.InitialTree()
	if err != nil {
		return nil, err
	}

	var dc cache.Cache = cache.NewNullCache()
	if url := c.Config.Server.Redis; url != "" {
		rc, err := cache.OpenRedis(ctx, url)
		if err != nil {
			return nil, err
		}
		dc = rc
		c.Logger.Info("diagram cache", "backend", "redis")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)
	observability.SetStoreHooks(metrics)
	observability.SetServerHooks(metrics)

	logger := c.Logger.WithPrefix("serve")
	sessions := session.NewRegistry(session.Options{
		TTL:         c.Config.Server.SessionTTL,
		MaxSessions: c.Config.Server.MaxSessions,
		StoreOptions: []store.Option{
			store.WithHistoryLimit(c.Config.Editor.HistoryLimit),
			store.WithLogger(logger),
		},
		Logger: logger,
	})

	return server.New(server.Config{
		Sessions:   sessions,
		Initial:    initial,
		Diagram:    c.diagramOptions(),
		Gatherer:   reg,
		Cache:      dc,
		DiagramTTL: diagramTTL,
		Logger:     logger,
	}), nil
}
