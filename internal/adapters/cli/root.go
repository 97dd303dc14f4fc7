package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	jsonOutput bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "evetrade",
		Short: "evetrade - find profitable trade routes between EVE trade hubs",
		Long: `evetrade scans the market order books of the major trade hubs for
buy-low/sell-high routes that fit a wallet budget and a cargo hold, ranked by
total profit.

Examples:
  evetrade scan --wallet 50000000 --cargo 230 --min-profit 1000000
  evetrade scan --hubs 30000142,30002659 --limit 5 --json
  evetrade refresh
  evetrade serve
  evetrade topology import --file staticdata.json
  evetrade runs --limit 20`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/evetrade)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Emit machine-readable JSON instead of tables")

	rootCmd.AddCommand(NewScanCommand())
	rootCmd.AddCommand(NewRefreshCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewTopologyCommand())
	rootCmd.AddCommand(NewRunsCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}
