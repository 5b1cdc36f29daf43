package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tour-planner-service/internal/adapters/distance"
	"tour-planner-service/internal/adapters/export"
	"tour-planner-service/internal/adapters/repositories"
	"tour-planner-service/internal/adapters/sessions"
	"tour-planner-service/internal/api"
	"tour-planner-service/internal/config"
	"tour-planner-service/internal/platform/db"
	"tour-planner-service/internal/platform/kv"
	"tour-planner-service/internal/platform/obs"
	"tour-planner-service/internal/ports"
	"tour-planner-service/internal/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (catalog, session store, haversine, PDF) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flush, err := obs.Init(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer flush()

	if envErr != nil {
		zap.L().Info("no .env file found (using environment variables)")
	}

	if err := run(cfg); err != nil {
		zap.L().Error("server stopped", zap.Error(err))
		flush()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cities, closeCatalog, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCatalog()

	store, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	defaultStart, err := services.DefaultStartCity(ctx, cities, cfg.DefaultStartCity)
	if err != nil {
		return err
	}
	if defaultStart != cfg.DefaultStartCity {
		zap.L().Warn("default start city not in catalog, using first city",
			zap.String("configured", cfg.DefaultStartCity),
			zap.String("using", defaultStart),
		)
	}

	provider, err := distance.NewHaversineProvider(cfg.AvgSpeedKmh)
	if err != nil {
		return err
	}

	loc := cfg.Location()
	planner, err := services.NewTourPlanner(cities, provider, store, func() time.Time { return time.Now().In(loc) })
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterDeps{
		Planner:        planner,
		Exporter:       export.NewPDFItineraryExporter("Concert Tour Itinerary"),
		DefaultStart:   defaultStart,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("session_store", cfg.SessionStore),
			zap.Float64("avg_speed_kmh", provider.SpeedKmh()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openCatalog reads cities from Postgres when DATABASE_URL is set and from the
// seed file otherwise. The catalog is checked once at startup.
func openCatalog(ctx context.Context, cfg config.Config) (ports.CityRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		seeds, err := repositories.LoadCitySeeds(cfg.SeedPath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := repositories.NewStaticCityRepository(seeds)
		if err != nil {
			return nil, nil, err
		}
		zap.L().Info("city catalog loaded", zap.String("source", "seed"), zap.Int("cities", len(seeds)))
		return repo, func() {}, nil
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	repo := repositories.NewPostgresCityRepository(conn)
	if err := checkCatalog(ctx, repo); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	return repo, closeDB(conn), nil
}

func checkCatalog(ctx context.Context, repo ports.CityRepository) error {
	cities, err := repo.ListCities(ctx)
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if len(cities) == 0 {
		return errors.New("check catalog: no cities found (run dbtool to seed)")
	}
	for _, c := range cities {
		if !c.Coords.Valid() {
			return fmt.Errorf("check catalog: city %q has invalid coordinates", c.Name)
		}
	}

	zap.L().Info("city catalog loaded", zap.String("source", "postgres"), zap.Int("cities", len(cities)))
	return nil
}

func closeDB(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			zap.L().Warn("close database", zap.Error(err))
		}
	}
}

func openSessionStore(ctx context.Context, cfg config.Config) (ports.SessionStore, func(), error) {
	if cfg.SessionStore != config.StoreRedis {
		return sessions.NewMemorySessionStore(cfg.SessionTTL), func() {}, nil
	}

	client, err := kv.Open(ctx, kv.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			zap.L().Warn("close redis", zap.Error(err))
		}
	}
	return sessions.NewRedisSessionStore(client, cfg.SessionTTL), closeFn, nil
}
