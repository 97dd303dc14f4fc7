package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/universe"
)

// staticDataFile is the JSON shape of a static data export: the trade hubs,
// the tracked items and the stargate edges of the universe, tagged with the
// SDE version they were extracted from.
type staticDataFile struct {
	Version string `json:"version"`
	Hubs    []struct {
		SystemID   int64   `json:"system_id"`
		Name       string  `json:"name"`
		RegionID   int64   `json:"region_id"`
		RegionName string  `json:"region_name"`
		StationID  int64   `json:"station_id"`
		Security   float64 `json:"security"`
	} `json:"hubs"`
	Items []struct {
		TypeID int64   `json:"type_id"`
		Name   string  `json:"name"`
		Volume float64 `json:"volume"`
	} `json:"items"`
	Gates [][2]int64 `json:"gates"`
}

// NewTopologyCommand creates the topology command with subcommands
func NewTopologyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topology",
		Short: "Manage the static universe data (hubs, items, stargates)",
		Long: `Manage the static universe data the scanner runs on: trade hubs, tracked
items and the stargate graph. Static data is extracted from the EVE SDE and
imported from a JSON export; the version tag keys the jump-distance cache.

Examples:
  evetrade topology import --file staticdata.json
  evetrade topology show`,
	}

	cmd.AddCommand(newTopologyImportCommand())
	cmd.AddCommand(newTopologyShowCommand())

	return cmd
}

func newTopologyImportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import hubs, items and stargates from a JSON export",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			payload, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read static data file: %w", err)
			}

			var data staticDataFile
			if err := json.Unmarshal(payload, &data); err != nil {
				return fmt.Errorf("failed to parse static data file: %w", err)
			}
			if data.Version == "" {
				return fmt.Errorf("static data file has no version tag")
			}

			hubs := make([]*universe.Hub, 0, len(data.Hubs))
			for _, h := range data.Hubs {
				hub, err := universe.NewHub(h.SystemID, h.Name, h.RegionID, h.RegionName, h.StationID, h.Security)
				if err != nil {
					return fmt.Errorf("invalid hub %q: %w", h.Name, err)
				}
				hubs = append(hubs, hub)
			}

			items := make([]*market.Item, 0, len(data.Items))
			for _, i := range data.Items {
				item, err := market.NewItem(i.TypeID, i.Name, i.Volume)
				if err != nil {
					return fmt.Errorf("invalid item %q: %w", i.Name, err)
				}
				items = append(items, item)
			}

			topology := universe.NewTopology(data.Version)
			for _, gate := range data.Gates {
				topology.AddGate(gate[0], gate[1])
			}

			app, err := newApp(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()
			ctx = app.LoggerContext(ctx)

			if err := app.HubRepo.SaveHubs(ctx, hubs); err != nil {
				return err
			}
			if err := app.ItemRepo.SaveItems(ctx, items); err != nil {
				return err
			}
			if err := app.TopoRepo.SaveTopology(ctx, topology); err != nil {
				return err
			}

			fmt.Printf("Imported version %s: %d hubs, %d items, %d systems, %d gates\n",
				data.Version, len(hubs), len(items), topology.SystemCount(), len(data.Gates))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the static data JSON export (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newTopologyShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the imported static data summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()
			ctx = app.LoggerContext(ctx)

			topology, err := app.TopoRepo.LoadTopology(ctx)
			if err != nil {
				return err
			}
			hubs, err := app.HubRepo.ListHubs(ctx)
			if err != nil {
				return err
			}
			items, err := app.ItemRepo.ListItems(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(map[string]interface{}{
					"version": topology.Version(),
					"systems": topology.SystemCount(),
					"hubs":    len(hubs),
					"items":   len(items),
				})
			}

			fmt.Printf("Topology version: %s\n", topology.Version())
			fmt.Printf("Systems:          %d\n", topology.SystemCount())
			fmt.Printf("Hubs:             %d\n", len(hubs))
			for _, hub := range hubs {
				fmt.Printf("  %-10s %s (%.1f) system %d station %d\n",
					hub.Name, hub.RegionName, hub.Security, hub.SystemID, hub.StationID)
			}
			fmt.Printf("Items:            %d\n", len(items))
			return nil
		},
	}
	return cmd
}
