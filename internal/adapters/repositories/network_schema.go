package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"freight-route-service/internal/adapters/seed"
	"freight-route-service/internal/platform/db"
)

// InitSchema creates the network tables. The DDL is valid for both SQLite and Postgres.
func InitSchema(ctx context.Context, conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCitiesQuery := `
	CREATE TABLE IF NOT EXISTS cities (
		name TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	createEdgesQuery := `
	CREATE TABLE IF NOT EXISTS edges (
		from_city TEXT NOT NULL,
		to_city TEXT NOT NULL,
		mode TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		duration_hours DOUBLE PRECISION NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (from_city, to_city, mode)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_edges_to_from
	ON edges(to_city, from_city);
	`

	statements := []string{
		createCitiesQuery,
		createEdgesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedNetwork upserts every city and edge of n.
func SeedNetwork(ctx context.Context, conn *sql.DB, dialect db.Dialect, n *seed.Network) error {
	if conn == nil {
		return errors.New("seed network: DB is nil")
	}
	if n == nil {
		return errors.New("seed network: network is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed network: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ph := dialect.Placeholder
	cityStmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT INTO cities (name, lat, lon)
	VALUES (%s, %s, %s)
	ON CONFLICT (name) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`, ph(1), ph(2), ph(3)))
	if err != nil {
		return fmt.Errorf("seed network: prepare city insert: %w", err)
	}
	defer cityStmt.Close()

	for _, c := range n.Cities {
		if _, err := cityStmt.ExecContext(ctx, c.Name, c.Lat, c.Lon); err != nil {
			return fmt.Errorf("seed network: insert city %q: %w", c.Name, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT INTO edges (from_city, to_city, mode, distance_km, duration_hours, price)
	VALUES (%s, %s, %s, %s, %s, %s)
	ON CONFLICT (from_city, to_city, mode) DO UPDATE
	SET distance_km = EXCLUDED.distance_km,
		duration_hours = EXCLUDED.duration_hours,
		price = EXCLUDED.price;
	`, ph(1), ph(2), ph(3), ph(4), ph(5), ph(6)))
	if err != nil {
		return fmt.Errorf("seed network: prepare edge insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, e := range n.Edges {
		if _, err := edgeStmt.ExecContext(ctx, e.From, e.To, e.Mode, e.DistanceKm, e.DurationHours, e.Price); err != nil {
			return fmt.Errorf("seed network: insert edge %s->%s %s: %w", e.From, e.To, e.Mode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed network: commit tx: %w", err)
	}

	return nil
}

// SeedFromJSON reads a seed file and upserts it.
func SeedFromJSON(ctx context.Context, conn *sql.DB, dialect db.Dialect, jsonPath string) error {
	n, err := seed.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed network: %w", err)
	}
	return SeedNetwork(ctx, conn, dialect, n)
}

// CountCities reports how many cities are stored.
func CountCities(ctx context.Context, conn *sql.DB) (int, error) {
	var n int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM cities;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cities: %w", err)
	}
	return n, nil
}
