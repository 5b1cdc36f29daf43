package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"
	"tour-planner-service/internal/adapters/repositories"
	"tour-planner-service/internal/config"
	"tour-planner-service/internal/platform/db"
	"tour-planner-service/internal/platform/obs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// dbtool creates the cities table and upserts the seed catalog into Postgres.
func main() {
	envErr := godotenv.Load()

	flush, err := obs.Init(config.Get("LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer flush()

	if envErr != nil {
		zap.L().Info("no .env file found (using environment variables)")
	}

	if err := run(); err != nil {
		zap.L().Error("dbtool failed", zap.Error(err))
		flush()
		os.Exit(1)
	}
}

func run() error {
	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	return initAndSeed(ctx, conn, config.Get("SEED_PATH", ""))
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	zap.L().Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	zap.L().Info("schema ready")

	cities, err := repositories.LoadCitySeeds(seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	zap.L().Info("seeding cities", zap.Int("cities", len(cities)), zap.String("seed_path", seedPath))
	if err := repositories.SeedCities(ctx, conn, cities); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	zap.L().Info("seeding complete")

	return nil
}
