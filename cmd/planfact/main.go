package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/planfact/internal/cli"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrRefreshFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{}
	if path := os.Getenv("PLANFACT_CONFIG"); path != "" {
		app.ConfigPath = path
	}
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
