package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"freight-route-service/internal/adapters/cache"
	"freight-route-service/internal/adapters/loader"
	"freight-route-service/internal/adapters/repositories"
	"freight-route-service/internal/adapters/seed"
	"freight-route-service/internal/api"
	"freight-route-service/internal/config"
	"freight-route-service/internal/platform/db"
	"freight-route-service/internal/platform/metrics"
	"freight-route-service/internal/ports"
	"freight-route-service/internal/services"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires the configured network source behind the loader port, builds the
// network once, and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()

	rules, err := config.NewRulesStore(cfg.RulesPath)
	if err != nil {
		log.Fatal(err)
	}
	rules.SetObserver(reg)
	go func() {
		if err := rules.Watch(ctx); err != nil {
			log.Printf("rules watcher stopped: %v", err)
		}
	}()

	netLoader, closeLoader, err := openLoader(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLoader()

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("parse REDIS_URL: %v", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		cached, err := cache.NewRedisNetworkCache(netLoader, rdb, cfg.CacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		netLoader = cached.WithRecorder(reg)
	}

	network, err := services.BuildNetwork(ctx, netLoader, cfg.SeedCities, cfg.LoadConcurrency)
	if err != nil {
		log.Fatal(err)
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	router, err := api.NewRouter(api.Deps{
		Planner: services.NewPlanner(network.Graph, network.Cities, services.WithRecorder(reg)),
		Rules:   rules,
		Cities:  network.CityList(),
		Metrics: reg,
		Limiter: limiter,
	})
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Server listening addr=:%s source=%s", cfg.Port, cfg.DataSource)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openLoader returns the network loader for cfg.DataSource and a close func.
func openLoader(ctx context.Context, cfg config.Config) (ports.NetworkLoader, func(), error) {
	switch cfg.DataSource {
	case config.SourceJSON:
		n, err := seed.ReadFile(cfg.SeedPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open loader: %w", err)
		}
		edges, err := n.DomainEdges()
		if err != nil {
			return nil, nil, fmt.Errorf("open loader: %w", err)
		}
		return loader.NewMemoryNetworkLoader(n.DomainCities(), edges), func() {}, nil

	case config.SourceSQLite:
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		// Initialize schema and seed demo data on first start for local runs.
		if err := initAndSeed(ctx, conn, cfg.SeedPath); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return loader.NewSQLNetworkLoader(conn, db.SQLite), func() { _ = conn.Close() }, nil

	case config.SourcePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return loader.NewSQLNetworkLoader(conn, db.Postgres), func() { _ = conn.Close() }, nil
	}

	return nil, nil, fmt.Errorf("open loader: unknown data source %q", cfg.DataSource)
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	n, err := repositories.CountCities(ctx, conn)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if n > 0 {
		return nil
	}

	if err := repositories.SeedFromJSON(ctx, conn, db.SQLite, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
