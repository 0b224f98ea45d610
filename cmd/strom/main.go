// Command strom streams chat completions from any supported provider and
// inspects their model catalogs.
//
// Configuration via ./strom.yaml (or --config / STROM_CONFIG), with STROM_*
// environment overrides:
//
//	STROM_PROVIDER   - provider name to use (synthesizes an entry if absent)
//	STROM_MODEL      - model override for the default provider
//	STROM_API_KEY    - API key override for the default provider
//	STROM_BASE_URL   - base URL override for the default provider
//	STROM_DEBUG      - debug categories (stream,models,oauth,config,all)
//	STROM_LOG_LEVEL  - ERROR|WARN|INFO|DEBUG|TRACE
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
