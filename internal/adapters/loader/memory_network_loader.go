package loader

import (
	"context"
	"freight-route-service/internal/domain"
	"freight-route-service/internal/ports"
	"slices"
	"strings"
)

// MemoryNetworkLoader serves a network held in memory.
// It is read-only after construction and safe for concurrent use.
type MemoryNetworkLoader struct {
	cities    map[string]domain.Coordinates
	names     []string
	edges     map[domain.CityPair]map[domain.Mode]domain.Edge
	reachable map[string][]string
}

// NewMemoryNetworkLoader indexes cities and edges. When several edges share a
// pair and mode, the first one wins.
func NewMemoryNetworkLoader(cities []domain.City, edges []domain.Edge) *MemoryNetworkLoader {
	l := &MemoryNetworkLoader{
		cities:    make(map[string]domain.Coordinates, len(cities)),
		edges:     make(map[domain.CityPair]map[domain.Mode]domain.Edge),
		reachable: make(map[string][]string),
	}

	for _, c := range cities {
		if _, ok := l.cities[c.Name]; !ok {
			l.names = append(l.names, c.Name)
		}
		l.cities[c.Name] = c.Coordinates
	}
	slices.Sort(l.names)

	for _, e := range edges {
		pair := e.Pair()
		byMode, ok := l.edges[pair]
		if !ok {
			byMode = make(map[domain.Mode]domain.Edge)
			l.edges[pair] = byMode
			l.reachable[e.From] = append(l.reachable[e.From], e.To)
		}
		if _, ok := byMode[e.Mode]; !ok {
			byMode[e.Mode] = e
		}
	}
	for _, to := range l.reachable {
		slices.Sort(to)
	}

	return l
}

func (l *MemoryNetworkLoader) LoadCityBase(_ context.Context, pair domain.CityPair) (ports.CityBase, error) {
	base := ports.CityBase{Pair: pair}

	if c, ok := l.cities[pair.From]; ok {
		base.From = &c
	}
	if c, ok := l.cities[pair.To]; ok {
		base.To = &c
	}
	if base.From == nil && base.To == nil {
		return ports.CityBase{}, ports.ErrNotFound
	}

	for _, e := range l.edges[pair] {
		if base.MileageKm == 0 || e.DistanceKm < base.MileageKm {
			base.MileageKm = e.DistanceKm
		}
	}

	return base, nil
}

func (l *MemoryNetworkLoader) LoadEdgeAttr(_ context.Context, mode domain.Mode, pair domain.CityPair) (ports.EdgeAttr, bool, error) {
	e, ok := l.edges[pair][mode]
	if !ok {
		return ports.EdgeAttr{}, false, nil
	}
	return ports.EdgeAttr{
		DistanceKm:    e.DistanceKm,
		DurationHours: e.DurationHours,
		Price:         e.Price,
	}, true, nil
}

func (l *MemoryNetworkLoader) LoadReachableCities(_ context.Context, from string) ([]string, error) {
	return slices.Clone(l.reachable[strings.TrimSpace(from)]), nil
}

func (l *MemoryNetworkLoader) ListCities(_ context.Context) ([]domain.City, error) {
	out := make([]domain.City, 0, len(l.names))
	for _, n := range l.names {
		out = append(out, domain.City{Name: n, Coordinates: l.cities[n]})
	}
	return out, nil
}
