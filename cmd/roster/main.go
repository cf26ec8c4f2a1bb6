// main is the roster frontend: the two student roster variants as a
// terminal UI, a web page and one-shot commands.
//
// RUNNING:
//
//	go run ./cmd/roster tui
//	go run ./cmd/roster --variant contacts web
//	go run ./cmd/roster list -o yaml
//
// The backend is cmd/students-api. --config (or CONFIG_PATH) points at the
// same YAML file it reads.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
