package ports

import (
	"context"
	"errors"
	"freight-route-service/internal/domain"
)

// ErrNotFound is returned by loaders when a requested city does not exist.
var ErrNotFound = errors.New("not found")

// Base geographic data for a city pair.
// From or To is nil when the loader has no coordinates for that city.
type CityBase struct {
	Pair      domain.CityPair
	From      *domain.Coordinates
	To        *domain.Coordinates
	MileageKm float64
}

// Attributes of a single transport edge.
type EdgeAttr struct {
	DistanceKm    float64
	DurationHours float64
	Price         float64
}

// Port: a boundary for reading the transport network from a data source
// (memory, database, or a remote API).
type NetworkLoader interface {
	// Return coordinates and mileage for a city pair.
	LoadCityBase(ctx context.Context, pair domain.CityPair) (CityBase, error)
	// Return the attributes of the edge with the given mode, if one exists.
	LoadEdgeAttr(ctx context.Context, mode domain.Mode, pair domain.CityPair) (EdgeAttr, bool, error)
	// Return every city directly reachable from the given city.
	LoadReachableCities(ctx context.Context, from string) ([]string, error)
}

// Optional extension of NetworkLoader that can enumerate all known cities.
type CityLister interface {
	ListCities(ctx context.Context) ([]domain.City, error)
}
