package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewRefreshCommand creates the refresh command
func NewRefreshCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch fresh market orders from ESI and replace the stored snapshot",
		Long: `Fetch all market orders for the known hubs' regions from ESI, reduce them
to per-hub order books and store the result as the current snapshot.

Examples:
  evetrade refresh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()
			ctx = app.LoggerContext(ctx)

			started := time.Now()
			if err := app.Refresher.RefreshNow(ctx); err != nil {
				return err
			}

			fmt.Printf("Snapshot refreshed in %s (TTL %s)\n",
				time.Since(started).Round(time.Millisecond), app.Config.Engine.SnapshotTTL)
			return nil
		},
	}
	return cmd
}
