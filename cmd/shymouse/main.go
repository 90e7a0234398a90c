// File: cmd/shymouse/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/xkilldash9x/shymouse/cmd"
)

// Allows mocking os.Exit in tests.
var osExit = os.Exit

func main() {
	// Interrupts cancel the context so a running interaction stops between events.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			osExit(0)
			return
		}
		osExit(1)
	}
}
