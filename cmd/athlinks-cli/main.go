package main

import (
	"athlinks-backend/cmd/athlinks-cli/commands"
	"athlinks-backend/lib/serviceutil"
	"athlinks-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "athlinks-cli")
	telemetry.InitSlog(false)
	commands.ExecuteContext(ctx)
}
