package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the process configuration, read from the environment (and .env).
type Config struct {
	Port     string
	LogLevel string
	Timezone string

	// Average travel speed used for leg durations. Not a transit model.
	AvgSpeedKmh float64

	SessionStore string
	SessionTTL   time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Optional: when set, the city catalog is read from Postgres.
	DatabaseURL string
	SeedPath    string

	CORSAllowedOrigins []string
	DefaultStartCity   string
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: parse int %q: %w", key, raw, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: parse float %q: %w", key, raw, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: parse duration %q: %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		Port:               Get("PORT", "8080"),
		LogLevel:           Get("LOG_LEVEL", "info"),
		Timezone:           Get("TIMEZONE", "Local"),
		SessionStore:       strings.ToLower(Get("SESSION_STORE", StoreMemory)),
		RedisAddr:          Get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      Get("REDIS_PASSWORD", ""),
		DatabaseURL:        Get("DATABASE_URL", ""),
		SeedPath:           Get("SEED_PATH", ""),
		CORSAllowedOrigins: splitList(Get("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		DefaultStartCity:   Get("DEFAULT_START_CITY", "Mumbai"),
	}

	var errs []error
	var err error

	if cfg.AvgSpeedKmh, err = getFloat("AVG_SPEED_KMH", 50); err != nil {
		errs = append(errs, err)
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 12*time.Hour); err != nil {
		errs = append(errs, err)
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("load config: %w", errors.Join(errs...))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %q", c.Port))
	}
	if c.AvgSpeedKmh <= 0 || math.IsNaN(c.AvgSpeedKmh) || math.IsInf(c.AvgSpeedKmh, 0) {
		errs = append(errs, fmt.Errorf("AVG_SPEED_KMH must be a positive finite number, got %v", c.AvgSpeedKmh))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	switch c.SessionStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when SESSION_STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE must be %q or %q, got %q", StoreMemory, StoreRedis, c.SessionStore))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err))
	}

	return errors.Join(errs...)
}

// Location returns the time zone used for scheduled dates.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
