package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/evetrade/internal/adapters/metrics"
	"github.com/andrescamacho/evetrade/internal/adapters/rest"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var noRefresh bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the trade route API server with a background snapshot refresher",
		Long: `Run the HTTP API server. A background loop refreshes the market snapshot
on the configured interval so scans always see fresh order books.

Endpoints:
  GET  /api/v1/opportunities   ranked trade routes (wallet, cargo, min_profit, limit, hubs)
  POST /api/v1/refresh         refresh the snapshot immediately
  GET  /api/v1/runs            recent scan runs
  GET  /api/v1/runs/:id/opportunities  logged results of one run
  GET  /healthz                liveness probe
  GET  /metrics                Prometheus metrics

Examples:
  evetrade serve
  evetrade serve --no-refresh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx, appOptions{withMetrics: true})
			if err != nil {
				return err
			}
			defer app.Close()
			ctx = app.LoggerContext(ctx)

			handler := rest.NewHandler(app.Mediator, app.Refresher, app.RunRepo, app.OppLog)
			server := rest.NewServer(&app.Config.HTTP, handler, metrics.GetRegistry())

			group, groupCtx := errgroup.WithContext(ctx)
			if !noRefresh {
				group.Go(func() error {
					return app.Refresher.Run(groupCtx)
				})
			}
			group.Go(func() error {
				fmt.Printf("Listening on %s\n", app.Config.HTTP.Address)
				return server.Run(groupCtx)
			})

			return group.Wait()
		},
	}

	cmd.Flags().BoolVar(&noRefresh, "no-refresh", false,
		"Serve without the background refresh loop (snapshots must be refreshed externally)")

	return cmd
}
