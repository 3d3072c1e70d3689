package loader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"freight-route-service/internal/domain"
	"freight-route-service/internal/platform/db"
	"freight-route-service/internal/ports"
)

// SQLNetworkLoader reads the network from the cities and edges tables
// created by repositories.InitSchema.
type SQLNetworkLoader struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLNetworkLoader(conn *sql.DB, dialect db.Dialect) *SQLNetworkLoader {
	return &SQLNetworkLoader{DB: conn, Dialect: dialect}
}

func (s *SQLNetworkLoader) ph(n int) string { return s.Dialect.Placeholder(n) }

func (s *SQLNetworkLoader) LoadCityBase(ctx context.Context, pair domain.CityPair) (ports.CityBase, error) {
	if s.DB == nil {
		return ports.CityBase{}, errors.New("sql network loader: db is nil")
	}

	q := fmt.Sprintf(`
	SELECT name, lat, lon
	FROM cities
	WHERE name IN (%s, %s);
	`, s.ph(1), s.ph(2))

	rows, err := s.DB.QueryContext(ctx, q, pair.From, pair.To)
	if err != nil {
		return ports.CityBase{}, fmt.Errorf("load city base: query cities table: %w", err)
	}
	defer rows.Close()

	base := ports.CityBase{Pair: pair}
	for rows.Next() {
		var name string
		var c domain.Coordinates
		if err := rows.Scan(&name, &c.Lat, &c.Lon); err != nil {
			return ports.CityBase{}, fmt.Errorf("load city base: scan row: %w", err)
		}
		if name == pair.From {
			from := c
			base.From = &from
		}
		if name == pair.To {
			to := c
			base.To = &to
		}
	}
	if err := rows.Err(); err != nil {
		return ports.CityBase{}, fmt.Errorf("load city base: row iteration: %w", err)
	}
	if base.From == nil && base.To == nil {
		return ports.CityBase{}, ports.ErrNotFound
	}

	mq := fmt.Sprintf(`
	SELECT COALESCE(MIN(distance_km), 0)
	FROM edges
	WHERE from_city = %s AND to_city = %s;
	`, s.ph(1), s.ph(2))
	if err := s.DB.QueryRowContext(ctx, mq, pair.From, pair.To).Scan(&base.MileageKm); err != nil {
		return ports.CityBase{}, fmt.Errorf("load city base: query mileage: %w", err)
	}

	return base, nil
}

func (s *SQLNetworkLoader) LoadEdgeAttr(ctx context.Context, mode domain.Mode, pair domain.CityPair) (ports.EdgeAttr, bool, error) {
	if s.DB == nil {
		return ports.EdgeAttr{}, false, errors.New("sql network loader: db is nil")
	}

	q := fmt.Sprintf(`
	SELECT distance_km, duration_hours, price
	FROM edges
	WHERE from_city = %s AND to_city = %s AND mode = %s;
	`, s.ph(1), s.ph(2), s.ph(3))

	var attr ports.EdgeAttr
	err := s.DB.QueryRowContext(ctx, q, pair.From, pair.To, string(mode)).
		Scan(&attr.DistanceKm, &attr.DurationHours, &attr.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.EdgeAttr{}, false, nil
	}
	if err != nil {
		return ports.EdgeAttr{}, false, fmt.Errorf("load edge attr %s %s: %w", mode, pair, err)
	}

	return attr, true, nil
}

func (s *SQLNetworkLoader) LoadReachableCities(ctx context.Context, from string) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("sql network loader: db is nil")
	}

	q := fmt.Sprintf(`
	SELECT DISTINCT to_city
	FROM edges
	WHERE from_city = %s
	ORDER BY to_city;
	`, s.ph(1))

	rows, err := s.DB.QueryContext(ctx, q, from)
	if err != nil {
		return nil, fmt.Errorf("load reachable cities: query edges table: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var to string
		if err := rows.Scan(&to); err != nil {
			return nil, fmt.Errorf("load reachable cities: scan row: %w", err)
		}
		out = append(out, to)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load reachable cities: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLNetworkLoader) ListCities(ctx context.Context) ([]domain.City, error) {
	if s.DB == nil {
		return nil, errors.New("sql network loader: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT name, lat, lon
	FROM cities
	ORDER BY name;
	`)
	if err != nil {
		return nil, fmt.Errorf("list cities: query cities table: %w", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0, 64)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.Name, &c.Coordinates.Lat, &c.Coordinates.Lon); err != nil {
			return nil, fmt.Errorf("list cities: scan row: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cities: row iteration: %w", err)
	}

	return cities, nil
}
