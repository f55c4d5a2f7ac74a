package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/binarymatt/k4q/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	app := cli.NewApp(cli.NewProgram(os.Stdout, os.Stderr), nil)
	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("error running k4q", "error", err)
		cancel()
		os.Exit(1)
	}
}
