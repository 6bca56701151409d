package commands

import (
	"fmt"
	"os"
	"time"

	"canvassync/lib/serviceutil"
	"canvassync/services/runlog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyDb *string
var historyLimit *int

func init() {
	historyDb = historyCmd.Flags().String("db", defaultRunlogPath, "The run history database to read.")
	historyLimit = historyCmd.Flags().Int("limit", 20, "The maximum number of runs to show.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--db <path/to/canvassync.db>] [--limit <n>]",
	Short: "Prints the most recent sync runs.",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := runlog.Open(*historyDb)
		if err != nil {
			serviceutil.Fatal("failed to open run history", err)
		}
		defer store.Close()

		runs, err := store.List(cmd.Context(), *historyLimit)
		if err != nil {
			serviceutil.Fatal("failed to list run history", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Started", "Took", "Found", "Processed", "Skipped", "Errors",
			"Tasks (+/~/x)", "Pages (+/~/x)",
		})

		for _, run := range runs {
			t.AppendRow(table.Row{
				run.StartedAt.Format("2006-01-02 15:04"),
				run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String(),
				run.Discovered,
				run.Processed,
				run.Skipped,
				run.Errors,
				fmt.Sprintf("%d/%d/%d", run.TaskCreates, run.TaskUpdates, run.TaskErrors),
				fmt.Sprintf("%d/%d/%d", run.DbCreates, run.DbUpdates, run.DbErrors),
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
