package main

import (
	"context"
	"database/sql"
	"flag"
	"freight-route-service/internal/adapters/repositories"
	"freight-route-service/internal/config"
	"freight-route-service/internal/platform/db"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	source := flag.String("source", config.Get("DATA_SOURCE", config.SourcePostgres), "database to seed: postgres or sqlite")
	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/network.json"), "network seed file")
	flag.Parse()

	var (
		conn    *sql.DB
		dialect db.Dialect
		err     error
	)
	switch strings.ToLower(*source) {
	case config.SourcePostgres:
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			log.Fatal("DATABASE_URL is required")
		}
		conn, err = db.Open(databaseURL)
		dialect = db.Postgres
	case config.SourceSQLite:
		conn, err = db.OpenSQLite(config.Get("DB_PATH", "data/network.db"))
		dialect = db.SQLite
	default:
		log.Fatalf("unsupported source %q", *source)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(context.Background(), conn, dialect, *seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect db.Dialect, seedPath string) error {
	log.Printf("Initializing database schema... dialect=%s", dialect)
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	log.Println("Schema ready.")

	log.Printf("Seeding database... seed=%s", seedPath)
	if err := repositories.SeedFromJSON(ctx, conn, dialect, seedPath); err != nil {
		return err
	}

	n, err := repositories.CountCities(ctx, conn)
	if err != nil {
		return err
	}
	log.Printf("Seeding complete. cities=%d", n)

	return nil
}
