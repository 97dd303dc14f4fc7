package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/evetrade/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect the resolved configuration.

Configuration is loaded from multiple sources with priority:
1. Environment variables (EVETRADE_* prefix, plus REDIS_HOST/REDIS_PORT/DATABASE_URL)
2. Config file (config.yaml)
3. Default values

Examples:
  evetrade config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(cfg)
			}

			fmt.Println("Database:")
			fmt.Printf("  type:             %s\n", cfg.Database.Type)
			if cfg.Database.Type == "sqlite" {
				fmt.Printf("  path:             %s\n", cfg.Database.Path)
			} else {
				fmt.Printf("  host:             %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Printf("  name:             %s\n", cfg.Database.Name)
			}
			fmt.Println("Redis:")
			fmt.Printf("  address:          %s:%d\n", cfg.Redis.Host, cfg.Redis.Port)
			fmt.Println("ESI:")
			fmt.Printf("  base url:         %s\n", cfg.ESI.BaseURL)
			fmt.Printf("  rate limit:       %d req/s (burst %d)\n", cfg.ESI.RateLimit.Requests, cfg.ESI.RateLimit.Burst)
			fmt.Println("Engine:")
			fmt.Printf("  default wallet:   %.0f ISK\n", cfg.Engine.DefaultWallet)
			fmt.Printf("  default cargo:    %.0f m³\n", cfg.Engine.DefaultCargo)
			fmt.Printf("  min profit:       %.0f ISK\n", cfg.Engine.DefaultMinProfit)
			fmt.Printf("  snapshot ttl:     %s\n", cfg.Engine.SnapshotTTL)
			fmt.Printf("  refresh interval: %s\n", cfg.Engine.RefreshInterval)
			fmt.Println("HTTP:")
			fmt.Printf("  address:          %s\n", cfg.HTTP.Address)
			return nil
		},
	}
	return cmd
}
