package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewRunsCommand creates the runs command
func NewRunsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent scan runs",
		Long: `Show the most recent scan runs, newest first. Each run records the inputs
that determined its output: topology version, snapshot timestamp and config
hash.

Examples:
  evetrade runs
  evetrade runs --limit 50 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()
			ctx = app.LoggerContext(ctx)

			runs, err := app.RunRepo.LatestRuns(ctx, limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(runs)
			}

			if len(runs) == 0 {
				fmt.Println("No scan runs recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tRUN\tFOUND\tSKIPPED\tDURATION\tCONFIG\tSTATUS")
			for _, run := range runs {
				status := "ok"
				if run.Cancelled {
					status = "cancelled"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
					run.StartedAt.Format(time.RFC3339),
					run.ID,
					run.OpportunityCount,
					run.SkippedTotal,
					run.Duration.Round(time.Millisecond),
					run.ConfigHash,
					status,
				)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to display")

	return cmd
}
