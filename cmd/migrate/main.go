package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/drovic/drovic-backend/internal/config"
	"github.com/drovic/drovic-backend/internal/database"
	"github.com/drovic/drovic-backend/internal/migration"
	pkgcache "github.com/drovic/drovic-backend/pkg/cache"
	pkglogger "github.com/drovic/drovic-backend/pkg/logger"
	pkgredis "github.com/drovic/drovic-backend/pkg/redis"
)

func main() {
	configPath := flag.String("config", config.Path(), "config file path")
	seed := flag.Bool("seed", false, "insert demo content into empty tables")
	seedValue := flag.Uint64("seed-value", migration.DefaultSeedOptions().Seed, "random seed for generated leaderboards")
	boardSize := flag.Int("board-size", migration.DefaultSeedOptions().BoardSize, "rows per leaderboard category and period")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	config.LoadDotEnv()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *verbose {
		cfg.Database.LogQueries = true
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	pkglogger.Info("Migration complete (%d tables)", len(migration.Models()))

	if *seed {
		if err := migration.Seed(db, migration.SeedOptions{Seed: *seedValue, BoardSize: *boardSize}); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
		invalidateCache(cfg)
	}
}

// invalidateCache drops cached lists so the API serves the new rows at once.
// Without Redis the lists expire with their TTL.
func invalidateCache(cfg *config.Config) {
	if !cfg.Redis.Enabled {
		return
	}
	client, err := pkgredis.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
	if err != nil {
		pkglogger.Warn("Skipping cache invalidation: %v", err)
		return
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pkgcache.InvalidateAll(ctx, pkgcache.NewService(client)); err != nil {
		pkglogger.Warn("Cache invalidation failed: %v", err)
		return
	}
	pkglogger.Info("Cached lists invalidated")
}
