package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/evetrade/internal/application/trading/queries"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	var (
		wallet    float64
		cargo     float64
		minProfit float64
		security  float64
		limit     int
		hubsFlag  string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the current market snapshot for profitable trade routes",
		Long: `Scan the current market snapshot for buy-low/sell-high routes between
trade hubs, ranked by total profit.

The scan is stateless: it reads the snapshot last stored by 'evetrade refresh'
(or the serve-mode refresh loop) and never calls ESI itself. A stale snapshot
aborts the scan; refresh first.

Examples:
  evetrade scan
  evetrade scan --wallet 100000000 --cargo 5000 --min-profit 500000
  evetrade scan --hubs 30000142,30002659 --limit 5 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if cmd.Flags().Changed("min-profit") && minProfit < 0 {
				return fmt.Errorf("min-profit must not be negative (got %g)", minProfit)
			}

			app, err := newApp(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()
			ctx = app.LoggerContext(ctx)

			query := &queries.FindTradeRoutesQuery{
				Wallet:        wallet,
				Cargo:         cargo,
				MinProfit:     minProfit,
				SecurityLimit: security,
				Limit:         limit,
			}
			if hubsFlag != "" {
				hubs, err := parseHubIDs(hubsFlag)
				if err != nil {
					return err
				}
				query.HubSystemIDs = hubs
			}

			response, err := app.Mediator.Send(ctx, query)
			if err != nil {
				return err
			}
			result := response.(*queries.FindTradeRoutesResponse)

			if jsonOutput {
				return printJSON(result.Opportunities)
			}

			printScanResult(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&wallet, "wallet", 0, "Maximum ISK to spend (default 50M)")
	cmd.Flags().Float64Var(&cargo, "cargo", 0, "Cargo capacity in m³ (default 230)")
	cmd.Flags().Float64Var(&minProfit, "min-profit", -1, "Minimum total profit in ISK (default 1M; 0 disables the threshold)")
	cmd.Flags().Float64Var(&security, "security", 0, "Exclude hubs below this security status")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum routes to display (default 10)")
	cmd.Flags().StringVar(&hubsFlag, "hubs", "", "Comma-separated hub system ids (default: all known hubs)")

	return cmd
}

func printScanResult(result *queries.FindTradeRoutesResponse) {
	fmt.Printf("Run %s  (snapshot age %s, topology %s)\n",
		result.RunID, result.SnapshotAge.Round(time.Second), result.TopologyVersion)
	if result.Cancelled {
		fmt.Println("NOTE: scan was cancelled; results are partial")
	}

	if len(result.Opportunities) == 0 {
		fmt.Println("No profitable routes found.")
		fmt.Printf("Skipped evaluations: %d (no spread %d, below threshold %d, missing quotes %d)\n",
			result.Skipped.Total, result.Skipped.NoSpread, result.Skipped.BelowThreshold, result.Skipped.MissingQuotes)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tBUY AT\tSELL AT\tAMOUNT\tCOST\tPROFIT\tJUMPS\tISK/JUMP")
	for _, opp := range result.Opportunities {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%d\t%s\n",
			opp.Item,
			opp.BuyRegion,
			opp.SellRegion,
			opp.Amount,
			formatISK(opp.TotalCost),
			formatISK(opp.Profit),
			opp.Jumps,
			formatISK(opp.ProfitPerJump),
		)
	}
	w.Flush()
}

// formatISK renders an ISK amount with thousands separators
func formatISK(amount float64) string {
	text := strconv.FormatFloat(amount, 'f', 2, 64)
	parts := strings.SplitN(text, ".", 2)

	integer := parts[0]
	negative := strings.HasPrefix(integer, "-")
	if negative {
		integer = integer[1:]
	}

	var b strings.Builder
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String() + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}

func parseHubIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	hubs := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hub id %q", part)
		}
		hubs = append(hubs, id)
	}
	return hubs, nil
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
