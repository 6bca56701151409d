package main

import (
	"context"
	"log/slog"

	"canvassync/cmd/canvassync/commands"
	"canvassync/lib/serviceutil"
	"canvassync/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	err := telemetry.SetupFromEnv(ctx, "canvassync")
	if err != nil {
		slog.Warn("telemetry disabled", "err", err)
	}
	telemetry.InitSlog(true)

	commands.ExecuteContext(ctx)
	// ctx may already be cancelled when the run was interrupted, flush with
	// a fresh one
	telemetry.Shutdown(context.Background())
}
