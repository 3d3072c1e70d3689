package repositories

import (
	"context"
	"freight-route-service/internal/adapters/seed"
	"freight-route-service/internal/platform/db"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestSeedNetworkUpserts(t *testing.T) {
	ctx := context.Background()
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "network.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(ctx, conn))
	require.NoError(t, InitSchema(ctx, conn), "schema creation must be repeatable")

	n := &seed.Network{
		Cities: []seed.City{{Name: "A", Lat: 1, Lon: 2}, {Name: "B", Lat: 3, Lon: 4}},
		Edges:  []seed.Edge{{From: "A", To: "B", Mode: "rail", DistanceKm: 10, DurationHours: 1, Price: 15}},
	}
	require.NoError(t, SeedNetwork(ctx, conn, db.SQLite, n))

	n.Cities[0].Lat = 5
	n.Edges[0].Price = 20
	require.NoError(t, SeedNetwork(ctx, conn, db.SQLite, n))

	count, err := CountCities(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var lat, price float64
	require.NoError(t, conn.QueryRow(`SELECT lat FROM cities WHERE name = 'A'`).Scan(&lat))
	require.NoError(t, conn.QueryRow(`SELECT price FROM edges WHERE from_city = 'A' AND mode = 'rail'`).Scan(&price))
	assert.Equal(t, 5.0, lat)
	assert.Equal(t, 20.0, price)
}

func TestSeedNetworkRejectsNilInputs(t *testing.T) {
	assert.Error(t, InitSchema(context.Background(), nil))
	assert.Error(t, SeedNetwork(context.Background(), nil, db.SQLite, &seed.Network{}))
}
