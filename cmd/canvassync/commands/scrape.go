package commands

import (
	"log/slog"

	"canvassync/lib/serviceutil"
	"canvassync/services/collector"
	"canvassync/services/snapshot"

	"github.com/spf13/cobra"
)

var scrapeOut *string

func init() {
	scrapeOut = scrapeCmd.Flags().String("out", "items.json", "Where to write the scraped items.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--out <path/to/items.json>]",
	Short: "Scrapes the planner and writes the items to a file without syncing anything.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := readConfig()

		client := createClient(ctx, cfg)
		items, _, err := collector.New(client).Collect(ctx)
		if err != nil {
			serviceutil.Fatal("failed to collect planner items", err)
		}

		err = snapshot.Write(*scrapeOut, items)
		if err != nil {
			serviceutil.Fatal("failed to write snapshot", err)
		}
		slog.Info("wrote snapshot", "path", *scrapeOut, "items", len(items))
	},
}
