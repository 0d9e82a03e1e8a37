package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cleared-dev/bankcat/internal/commands"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		// A second signal gets the default behaviour and exits at once.
		signal.Stop(sigChan)
		slog.Info("Received interrupt signal, abandoning the current entry")
		cancel()
	}()

	err := commands.NewRootCommand().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
