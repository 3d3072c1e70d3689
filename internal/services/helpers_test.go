package services

import (
	"freight-route-service/internal/domain"
	"math"
	"testing"
)

// Cities along the equator 0.1 degrees (about 11 km) apart.
// Great-circle distances stay small so hand-picked edge costs never fall
// below the estimator's lower bound.
func equatorCities(names ...string) map[string]domain.Coordinates {
	out := make(map[string]domain.Coordinates, len(names))
	for i, n := range names {
		out[n] = domain.Coordinates{Lat: 0, Lon: 0.1 * float64(i)}
	}
	return out
}

func edge(from, to string, mode domain.Mode, km, hours, price float64) domain.Edge {
	return domain.Edge{From: from, To: to, Mode: mode, DistanceKm: km, DurationHours: hours, Price: price}
}

func search(t *testing.T, g *domain.Graph, cities map[string]domain.Coordinates, q domain.RouteQuery, c domain.Criterion, rules domain.Rules) (*SearchResult, bool) {
	t.Helper()

	est, err := NewDistanceEstimator(cities, rules.ModeRates)
	if err != nil {
		t.Fatalf("new estimator: %v", err)
	}
	return FindBestRoute(SearchParams{
		Graph:     g,
		Estimator: est,
		Query:     q,
		Criterion: c,
		Rules:     rules,
	})
}

func route(edges []domain.Edge) []string {
	if len(edges) == 0 {
		return nil
	}
	out := []string{edges[0].From}
	for _, e := range edges {
		out = append(out, e.To)
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// sampleNetwork is a small real-world network. Edge prices and durations are
// derived from road distance at or above each mode's nominal rate, and road
// distance is at least the great-circle distance.
func sampleNetwork(t *testing.T) (*domain.Graph, map[string]domain.Coordinates) {
	t.Helper()

	cities := map[string]domain.Coordinates{
		"Beijing":   {Lat: 39.9042, Lon: 116.4074},
		"Tianjin":   {Lat: 39.3434, Lon: 117.3616},
		"Zhengzhou": {Lat: 34.7466, Lon: 113.6254},
		"Nanjing":   {Lat: 32.0603, Lon: 118.7969},
		"Shanghai":  {Lat: 31.2304, Lon: 121.4737},
		"Wuhan":     {Lat: 30.5928, Lon: 114.3055},
	}

	rates := domain.DefaultRules().ModeRates
	link := func(from, to string, m domain.Mode, detour float64) []domain.Edge {
		km := cities[from].DistanceKm(cities[to]) * detour
		r := rates[m]
		return []domain.Edge{
			edge(from, to, m, km, km/r.SpeedKmh, km*r.PricePerKm),
			edge(to, from, m, km, km/r.SpeedKmh, km*r.PricePerKm),
		}
	}

	var edges []domain.Edge
	for _, l := range []struct {
		from, to string
		mode     domain.Mode
		detour   float64
	}{
		{"Beijing", "Tianjin", domain.ModeBigTruck, 1.2},
		{"Beijing", "Tianjin", domain.ModeDriver, 1.1},
		{"Beijing", "Zhengzhou", domain.ModeBigTruck, 1.25},
		{"Beijing", "Shanghai", domain.ModeRail, 1.15},
		{"Tianjin", "Nanjing", domain.ModeBigTruck, 1.2},
		{"Tianjin", "Shanghai", domain.ModeShip, 1.4},
		{"Zhengzhou", "Wuhan", domain.ModeBigTruck, 1.2},
		{"Zhengzhou", "Nanjing", domain.ModeBigTruck, 1.3},
		{"Nanjing", "Shanghai", domain.ModeBigTruck, 1.15},
		{"Nanjing", "Shanghai", domain.ModeDriver, 1.1},
		{"Nanjing", "Shanghai", domain.ModeSmallTruck, 1.2},
		{"Wuhan", "Shanghai", domain.ModeBigTruck, 1.2},
		{"Wuhan", "Nanjing", domain.ModeRail, 1.1},
	} {
		edges = append(edges, link(l.from, l.to, l.mode, l.detour)...)
	}

	return domain.NewGraph(edges), cities
}
