package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port            string
	DataSource      string
	DBPath          string
	DatabaseURL     string
	SeedPath        string
	SeedCities      []string
	RedisURL        string
	CacheTTL        time.Duration
	RulesPath       string
	RateLimitRPS    float64
	RateLimitBurst  int
	LoadConcurrency int
}

const (
	SourceJSON     = "json"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		DataSource:  strings.ToLower(Get("DATA_SOURCE", SourceJSON)),
		DBPath:      Get("DB_PATH", "data/network.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SeedPath:    Get("SEED_PATH", "data/seeds/network.json"),
		RedisURL:    os.Getenv("REDIS_URL"),
		RulesPath:   os.Getenv("RULES_PATH"),
	}

	for _, c := range strings.Split(os.Getenv("SEED_CITIES"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			cfg.SeedCities = append(cfg.SeedCities, c)
		}
	}

	ttl, err := strconv.Atoi(Get("CACHE_TTL_SECONDS", "3600"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: CACHE_TTL_SECONDS: %w", err)
	}
	cfg.CacheTTL = time.Duration(ttl) * time.Second

	if cfg.RateLimitRPS, err = strconv.ParseFloat(Get("RATE_LIMIT_RPS", "50"), 64); err != nil {
		return Config{}, fmt.Errorf("load config: RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(Get("RATE_LIMIT_BURST", "100")); err != nil {
		return Config{}, fmt.Errorf("load config: RATE_LIMIT_BURST: %w", err)
	}
	if cfg.LoadConcurrency, err = strconv.Atoi(Get("LOAD_CONCURRENCY", "8")); err != nil {
		return Config{}, fmt.Errorf("load config: LOAD_CONCURRENCY: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DataSource {
	case SourceJSON, SourceSQLite:
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return errors.New("validate config: DATABASE_URL is required for the postgres data source")
		}
	default:
		return fmt.Errorf("validate config: unknown DATA_SOURCE %q", c.DataSource)
	}

	if c.CacheTTL < 0 {
		return errors.New("validate config: CACHE_TTL_SECONDS must not be negative")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return errors.New("validate config: rate limits must not be negative")
	}
	if c.LoadConcurrency < 1 {
		return errors.New("validate config: LOAD_CONCURRENCY must be at least 1")
	}
	return nil
}
