// Package main is the entry point for the evtask CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"evtask/internal/backend/httpapi"
	"evtask/internal/cli"
	"evtask/internal/commands"
	"evtask/internal/config"
	"evtask/internal/logging"
	"evtask/internal/service"
)

func main() {
	// A missing .env is fine; EVTASK_* may come from the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		logger := logging.ForCLI(os.Stderr, cfg.LogLevel, cfg.Debug)
		client, err := httpapi.New(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
