package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"teamop.dk/bosted/auth"
	"teamop.dk/bosted/config"
	"teamop.dk/bosted/core"
	directus "teamop.dk/bosted/directus/v1"
	"teamop.dk/bosted/infrastructure/communication"
	"teamop.dk/bosted/logging"
	"teamop.dk/bosted/notification"
	"teamop.dk/bosted/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, os.Getenv("BOSTED_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Server.JWTSecret == "" {
		log.Fatal("BOSTED_JWT_SECRET is required")
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)
	ctx = logging.ContextWithLogger(ctx, logger)
	gin.SetMode(gin.ReleaseMode)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client := directus.NewDirectusClient(directus.Options{
		BaseURL: cfg.Directus.URL,
		Identity: directus.ServiceIdentity{
			Email:    cfg.Directus.Email,
			Password: cfg.Directus.Password,
		},
		RequestTimeout:  cfg.Directus.RequestTimeout,
		ResourceTimeout: cfg.Directus.ResourceTimeout,
		Metrics:         directus.NewMetrics(registry),
	})
	// the session is filled lazily by the first staff login otherwise
	if _, err := client.Login(ctx); err != nil {
		logger.Warn("initial service login failed", "error", err)
	}

	dm, err := core.NewDatabaseManager(cfg.Database.DSN, cfg.Database.MaxConnections, core.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	reminderStore := store.New(dm.DB)
	if err := reminderStore.Migrate(ctx); err != nil {
		log.Fatal(err)
	}

	var notifier notification.Notifier = notification.LogNotifier{}
	if cfg.Slack.Token != "" {
		notifier = communication.NewSlack(cfg.Slack.Token, communication.SlackOption{
			InfoChannelID:  cfg.Slack.InfoChannelID,
			ErrorChannelID: cfg.Slack.ErrorChannelID,
		})
	}
	scheduler := notification.NewDailyScheduler(notifier)
	reminderService := core.NewReminderService(reminderStore, scheduler)
	if err := reminderService.Restore(ctx); err != nil {
		log.Fatal(err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := setupRouter(Dependencies{
		Auth:           auth.NewDirectusRepository(client),
		Schedule:       core.NewScheduleService(core.NewEnricher(core.NewDirectusBackend(client))),
		Registrar:      client.Events,
		Reminders:      reminderService,
		JWTSecret:      []byte(cfg.Server.JWTSecret),
		TokenTTL:       cfg.Server.TokenTTL,
		ToothbrushCode: cfg.Server.ToothbrushCode,
		Gatherer:       registry,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
