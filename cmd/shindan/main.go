package main

import (
	"context"

	"github.com/araea/shindan-maker/cmd/shindan/commands"
	"github.com/araea/shindan-maker/lib/telemetry"
)

func main() {
	ctx := context.Background()
	tel, err := telemetry.SetupFromEnv(ctx, "shindan-cli")
	if err != nil {
		panic(err)
	}
	defer tel.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
