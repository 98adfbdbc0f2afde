package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"payout_manager/internal/api"
	"payout_manager/internal/config"
	"payout_manager/internal/consumer"
	"payout_manager/internal/publisher"
	"payout_manager/internal/scheduler"
	"payout_manager/internal/service"
	"payout_manager/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Tracking events flow through RabbitMQ: the HTTP endpoint publishes,
	// the consumer applies them to the counters.
	eventPublisher, err := publisher.NewRabbitMQ(publisher.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer eventPublisher.Close()

	// Stores
	authorStore := postgres.NewAuthorStore(db)
	contentStore := postgres.NewContentStore(db)
	ledgerStore := postgres.NewLedgerStore(db)
	settingsStore := postgres.NewSettingsStore(db)
	txManager := postgres.NewTransactionManager(db)

	// Services
	tracker := service.NewTracker(contentStore, logger)
	aggregator := service.NewMetricsAggregator(authorStore, contentStore)
	processor := service.NewProcessor(
		authorStore,
		ledgerStore,
		contentStore,
		settingsStore,
		aggregator,
		txManager,
		logger,
		cfg.Payout,
	)

	eventConsumer, err := consumer.NewRabbitMQ(consumer.Config{
		URL:       cfg.RabbitMQ.URL,
		QueueName: cfg.RabbitMQ.QueueName,
	}, tracker, logger)
	if err != nil {
		logger.Error("failed to start consumer", "error", err)
		os.Exit(1)
	}
	defer eventConsumer.Close()

	handler := api.NewHandler(eventPublisher, processor, ledgerStore, settingsStore, logger)
	engine := api.NewServer(handler, cfg.Server.APIAccessKey, logger)
	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: engine,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	go func() {
		if err := eventConsumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("consumer stopped", "error", err)
			cancel()
		}
	}()

	if cfg.Payout.Interval > 0 {
		sched := scheduler.NewScheduler(processor, cfg.Payout.Interval, logger)
		go func() {
			if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("scheduler stopped", "error", err)
			}
		}()
	}

	go func() {
		logger.Info("starting http server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
