package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	bothttp "github.com/operations777/Reminder-bot/internal/adapter/http"
	"github.com/operations777/Reminder-bot/internal/adapter/otel"
	"github.com/operations777/Reminder-bot/internal/adapter/postgres"
	"github.com/operations777/Reminder-bot/internal/adapter/slack"
	"github.com/operations777/Reminder-bot/internal/config"
	"github.com/operations777/Reminder-bot/internal/logger"
	"github.com/operations777/Reminder-bot/internal/middleware"
	"github.com/operations777/Reminder-bot/internal/resilience"
	"github.com/operations777/Reminder-bot/internal/service"
)

func main() {
	bootstrap := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(bootstrap)

	args := os.Args[1:]
	var err error
	if len(args) > 0 && args[0] == "migrate" {
		err = runMigrate(args[1:])
	} else {
		err = run(args)
	}
	if err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := config.ParseFlags(args)
	if err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	cfg, cfgPath, err := config.LoadWithCLI(flags)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, logCloser := logger.New(cfg.Logging)
	slog.SetDefault(log)
	defer logCloser.Close()

	slog.Info("config loaded",
		"config_file", cfgPath,
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx := context.Background()

	// --- Observability ---

	otelShutdown, err := otel.Setup(ctx, cfg.Observability, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Error("otel shutdown", "error", err)
		}
	}()

	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Infrastructure ---

	// PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	// Run migrations
	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	// Slack Web API client behind a circuit breaker
	client := slack.NewClient(cfg.Slack)
	breaker := resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout)
	client.SetBreaker(breaker)
	if err := otel.RegisterBreakerGauge(func() int64 { return int64(breaker.State()) }); err != nil {
		return fmt.Errorf("breaker gauge: %w", err)
	}

	// --- Services ---
	store := postgres.NewStore(pool)
	taskSvc := service.NewTaskService(store, client, metrics)
	reminderSvc := service.NewReminderService(store, client, metrics)
	optionSvc := service.NewOptionService(store, metrics)

	// --- HTTP ---

	handlers := &bothttp.Handlers{
		Tasks:       taskSvc,
		Reminders:   reminderSvc,
		Options:     optionSvc,
		Messenger:   client,
		Metrics:     metrics,
		WorkTimeout: cfg.Worker.Timeout,
		ReadyCheck:  pool.Ping,
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(bothttp.Logger)
	r.Use(otel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	bothttp.MountRoutes(r, handlers, cfg.Slack.SigningSecret)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
