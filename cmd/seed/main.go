package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/predict-win/internal/config"
	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/mock"
	"github.com/predict-win/internal/postgres"
	"github.com/predict-win/internal/redis"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	skipRedis := flag.Bool("skip-redis", false, "Do not seed Redis leaderboards")
	skipPostgres := flag.Bool("skip-postgres", false, "Do not seed the PostgreSQL catalog")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall timeout")
	flag.Parse()

	// Progress goes to the terminal; library logs are discarded
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		color.Yellow("[WARN] %v, using defaults", err)
		cfg = config.DefaultConfig()
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	failed := false

	if !*skipRedis {
		if err := seedRedis(ctx, cfg, logger); err != nil {
			color.Red("[ERROR] redis: %v", err)
			failed = true
		}
	}

	if !*skipPostgres {
		if err := seedPostgres(ctx, cfg, logger); err != nil {
			color.Red("[ERROR] postgres: %v", err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
	color.Green("[DONE] seed complete")
}

func seedRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	color.Cyan("[INFO] seeding leaderboards into %s", cfg.Redis.Addr)

	store, err := redis.NewLeaderboardStore(&cfg.Redis, mock.CurrentUserID, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, scope := range domain.Scopes {
		entries, self := mock.Board(scope)
		if err := store.Seed(ctx, scope, entries, self); err != nil {
			return err
		}
		color.Cyan("[INFO] %s: %d entries", scope, len(entries)+1)
	}
	return nil
}

func seedPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	color.Cyan("[INFO] seeding catalog into %s/%s", cfg.Postgres.Host, cfg.Postgres.Database)

	db, err := postgres.NewCatalog(&cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(ctx); err != nil {
		return err
	}

	data := postgres.SeedData{
		Matches:       mock.AllMatches(),
		Races:         mock.AllRaces(),
		Horses:        mock.AllHorses(),
		Rewards:       mock.Rewards(),
		Notifications: mock.AllNotifications(),
	}
	if err := db.Seed(ctx, data); err != nil {
		return err
	}

	color.Cyan("[INFO] %d matches, %d races, %d horses, %d notifications",
		len(data.Matches), len(data.Races), len(data.Horses), len(data.Notifications))
	return nil
}
