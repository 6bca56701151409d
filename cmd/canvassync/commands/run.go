package commands

import (
	"context"
	"log/slog"
	"time"

	"canvassync/lib/configutil"
	"canvassync/lib/restyutil"
	"canvassync/lib/scrapers/canvas/core"
	"canvassync/lib/serviceutil"
	"canvassync/services/collector"
	"canvassync/services/notionsync"
	"canvassync/services/runlog"
	"canvassync/services/snapshot"
	"canvassync/services/tasksync"

	"github.com/spf13/cobra"
)

const defaultRunlogPath = "canvassync.db"

var runOut *string

func init() {
	runOut = runCmd.Flags().String("out", "items.json", "Where to write scraped items when no export destination is enabled.")
	rootCmd.AddCommand(runCmd)
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	err = cfg.Validate()
	if err != nil {
		serviceutil.Fatal("invalid config", err)
	}
	if cfg.RunlogPath == "" {
		cfg.RunlogPath = defaultRunlogPath
	}
	return cfg
}

// createClient leaves the deadline handling to the client itself, each login
// step carries its own bound.
func createClient(ctx context.Context, cfg Config) *core.Client {
	if cfg.Debug {
		core.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/canvas"))
	}
	client, err := core.NewClient(ctx, core.ClientOptions{
		BaseUrl: cfg.Url,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize canvas client", err)
	}

	slog.Info("logging in", "url", cfg.Url, "username", cfg.Account.Username)
	err = client.LoginUsernamePassword(ctx, cfg.Account.Username, cfg.Account.Password)
	if err != nil {
		serviceutil.Fatal("failed to login to canvas", err)
	}
	return client
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrapes the planner and syncs items to the configured destinations.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := readConfig()

		started := time.Now()
		client := createClient(ctx, cfg)

		items, stats, err := collector.New(client).Collect(ctx)
		if err != nil {
			serviceutil.Fatal("failed to collect planner items", err)
		}

		var taskStats tasksync.Stats
		if cfg.ExportTo.TaskList {
			taskStats = tasksync.Run(ctx, cfg.Todoist.ApiToken, items)
		} else {
			slog.Info("task list export disabled")
		}

		var dbStats notionsync.Stats
		if cfg.ExportTo.Database {
			dbStats = notionsync.Run(ctx, cfg.Notion.ApiKey, cfg.Notion.DatabaseId, items)
		} else {
			slog.Info("database export disabled")
		}

		if !cfg.ExportTo.TaskList && !cfg.ExportTo.Database {
			err = snapshot.Write(*runOut, items)
			if err != nil {
				serviceutil.Fatal("failed to write snapshot", err)
			}
			slog.Info("no export destination enabled, wrote snapshot", "path", *runOut)
		}

		recordRun(ctx, cfg.RunlogPath, runlog.Run{
			StartedAt:   started,
			FinishedAt:  time.Now(),
			Discovered:  stats.Discovered,
			Processed:   stats.Processed,
			Skipped:     stats.Skipped,
			Errors:      stats.Errors,
			TaskCreates: taskStats.Creates,
			TaskUpdates: taskStats.Updates,
			TaskErrors:  taskStats.Errors,
			DbCreates:   dbStats.Creates,
			DbUpdates:   dbStats.Updates,
			DbErrors:    dbStats.Errors,
		})

		slog.Info("run finished", "seconds", time.Since(started).Seconds())
	},
}

func recordRun(ctx context.Context, path string, run runlog.Run) {
	store, err := runlog.Open(path)
	if err != nil {
		slog.Error("failed to open run history", "path", path, "err", err)
		return
	}
	defer store.Close()

	err = store.Record(ctx, run)
	if err != nil {
		slog.Error("failed to record run history", "err", err)
	}
}
