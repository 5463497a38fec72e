package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"teamop.dk/bosted/auth"
	"teamop.dk/bosted/config"
	"teamop.dk/bosted/core"
	directus "teamop.dk/bosted/directus/v1"
	"teamop.dk/bosted/infrastructure/filesystem"
	"teamop.dk/bosted/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd(connect).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// connect builds the backend client from configuration. The service identity
// is logged in on first use.
func connect(ctx context.Context, configPath string) (context.Context, *App, error) {
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return ctx, nil, err
	}
	logger := logging.SetupWriter(os.Stderr, cfg.Log.Level, "text")
	ctx = logging.ContextWithLogger(ctx, logger)

	client := directus.NewDirectusClient(directus.Options{
		BaseURL: cfg.Directus.URL,
		Identity: directus.ServiceIdentity{
			Email:    cfg.Directus.Email,
			Password: cfg.Directus.Password,
		},
		RequestTimeout:  cfg.Directus.RequestTimeout,
		ResourceTimeout: cfg.Directus.ResourceTimeout,
	})
	repo := auth.NewDirectusRepository(client)

	app := &App{
		Auth:     repo,
		Schedule: core.NewScheduleService(core.NewEnricher(core.NewDirectusBackend(client))),
	}
	if cfg.Digest.Bucket != "" {
		plans, err := filesystem.ConnectS3(ctx, cfg.Digest.Bucket)
		if err != nil {
			return ctx, nil, err
		}
		app.Plans = plans
	}
	return ctx, app, nil
}
