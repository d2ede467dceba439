package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"csstats-backend/cmd/csstats/commands"
	"csstats-backend/internal/components/serviceutil"
	"csstats-backend/internal/components/telemetry"
)

func main() {
	telemetry.InitSlog(false)

	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()

	otel, err := telemetry.SetupFromEnv(ctx, "csstats")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}

	err = commands.ExecuteContext(ctx)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), time.Second*5)
	defer cancelShutdown()
	shutdownErr := otel.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}

	if err != nil {
		os.Exit(1)
	}
}
