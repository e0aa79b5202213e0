package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/predict-win/internal/config"
	"github.com/predict-win/internal/handler"
	"github.com/predict-win/internal/kafka"
	"github.com/predict-win/internal/locale"
	"github.com/predict-win/internal/mock"
	"github.com/predict-win/internal/postgres"
	"github.com/predict-win/internal/prediction"
	"github.com/predict-win/internal/redis"
	"github.com/predict-win/internal/route"
	"github.com/predict-win/internal/screen"
	"github.com/predict-win/internal/service"
	"github.com/predict-win/internal/source"
	"github.com/predict-win/internal/websocket"
	"github.com/predict-win/internal/worker"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Warn("failed to load config file, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	translator, err := locale.New(cfg.Locale.Default)
	if err != nil {
		logger.Error("failed to load translations", "error", err)
		os.Exit(1)
	}

	var checks []namedCheck
	sources := mock.Sources()
	catalog := mock.New()

	// Redis-backed leaderboards
	if cfg.Sources.Leaderboard == config.SourceRedis {
		logger.Info("connecting to Redis", "addr", cfg.Redis.Addr)
		store, err := redis.NewLeaderboardStore(&cfg.Redis, mock.CurrentUserID, logger)
		if err != nil {
			logger.Warn("failed to connect to Redis, serving mock leaderboards", "error", err)
		} else {
			defer store.Close()
			sources.Leaderboards = source.WithLeaderboardFallback(store, catalog, logger)
			checks = append(checks, namedCheck{"redis", store.Ping})
			logger.Info("connected to Redis")
		}
	}

	// PostgreSQL-backed catalog
	if cfg.Sources.Catalog == config.SourcePostgres {
		logger.Info("connecting to PostgreSQL", "host", cfg.Postgres.Host, "database", cfg.Postgres.Database)
		db, err := postgres.NewCatalog(&cfg.Postgres, logger)
		if err != nil {
			logger.Warn("failed to connect to PostgreSQL, serving mock catalog", "error", err)
		} else {
			defer db.Close()
			if err := db.RunMigrations(ctx); err != nil {
				logger.Warn("failed to run migrations", "error", err)
			}
			sources.Matches = source.WithMatchFallback(db, catalog, logger)
			sources.Rewards = source.WithRewardFallback(db, catalog, logger)
			sources.Notifications = source.WithNotificationFallback(db, catalog, logger)
			checks = append(checks, namedCheck{"postgres", db.Ping})
			logger.Info("connected to PostgreSQL")
		}
	}

	feed := source.NewNotificationFeed(sources.Notifications)
	sources.Notifications = feed

	// Initialize WebSocket hub
	wsHub := websocket.NewHub(cfg.Server.AllowedOrigins, logger)
	go wsHub.Run()
	logger.Info("WebSocket hub initialized")

	opts := service.Options{
		Timing: screen.Timing{
			Splash:       cfg.Timing.Splash,
			Reveal:       cfg.Timing.Reveal,
			Reset:        cfg.Timing.Reset,
			OTPSend:      cfg.Timing.OTPSend,
			OTPVerify:    cfg.Timing.OTPVerify,
			ProfileSetup: cfg.Timing.ProfileSetup,
		},
		IdleTTL:             cfg.Session.IdleTTL,
		LeaderboardLimit:    cfg.Leaderboard.DefaultLimit,
		LeaderboardMaxLimit: cfg.Leaderboard.MaxLimit,
		Outcome:             prediction.RandomOutcome(),
		Pusher:              wsHub,
		Feed:                feed,
	}

	// Activity events go to Kafka when enabled
	var publisher *kafka.Publisher
	if cfg.Kafka.Enabled {
		publisher, err = kafka.NewPublisher(&cfg.Kafka, logger)
		if err != nil {
			logger.Warn("failed to create Kafka publisher, continuing without activity events", "error", err)
			publisher = nil
		} else {
			opts.Publisher = publisher
		}
	}

	app := service.NewAppService(route.DefaultTable(), sources, translator, opts, logger)

	// Live notifications arrive through Kafka
	var kafkaConsumer *kafka.Consumer
	if cfg.Kafka.Enabled {
		logger.Info("initializing Kafka consumer",
			"brokers", cfg.Kafka.Brokers,
			"topic", cfg.Kafka.NotificationTopic,
		)
		kafkaConsumer, err = kafka.NewConsumer(&cfg.Kafka, app, logger)
		if err != nil {
			logger.Warn("failed to create Kafka consumer, continuing without live notifications", "error", err)
			kafkaConsumer = nil
		} else if err := kafkaConsumer.Start(); err != nil {
			logger.Warn("failed to start Kafka consumer, continuing without live notifications", "error", err)
			kafkaConsumer = nil
		} else {
			logger.Info("Kafka consumer started successfully")
		}
	}

	sweeper := worker.NewSessionSweeper(app, cfg.Session.SweepInterval, logger)
	if err := sweeper.Start(ctx); err != nil {
		logger.Error("failed to start session sweeper", "error", err)
		os.Exit(1)
	}

	httpHandler := handler.NewHandler(app, wsHub, cfg.Server.AllowedOrigins, logger)
	for _, c := range checks {
		httpHandler.AddReadinessCheck(c.name, c.check)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpHandler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("starting HTTP server",
			"port", cfg.Server.Port,
			"leaderboard_source", cfg.Sources.Leaderboard,
			"catalog_source", cfg.Sources.Catalog,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	}

	if kafkaConsumer != nil {
		if err := kafkaConsumer.Stop(); err != nil {
			logger.Error("failed to stop Kafka consumer", "error", err)
		}
	}

	if err := sweeper.Stop(); err != nil {
		logger.Error("failed to stop session sweeper", "error", err)
	}

	app.Close()
	wsHub.Stop()

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close Kafka publisher", "error", err)
		}
	}

	logger.Info("server stopped")
}

type namedCheck struct {
	name  string
	check handler.ReadinessCheck
}
