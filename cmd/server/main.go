// Command server runs the job tracking HTTP API.
//
// Configuration is read from a YAML file (CONFIG_PATH, default ./config.yaml)
// and environment variables; see internal/config. The server shuts down
// gracefully on SIGINT or SIGTERM.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/jobtrack-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
