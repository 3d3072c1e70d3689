package services

import (
	"context"
	"errors"
	"fmt"
	"freight-route-service/internal/domain"
	"freight-route-service/internal/platform/obs"
	"freight-route-service/internal/ports"
	"log"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

const defaultLoadConcurrency = 8

// Network is a loaded transport network: the graph store plus the coordinates
// the cost estimator needs. It is read-only once built.
type Network struct {
	Graph  *domain.Graph
	Cities map[string]domain.Coordinates
}

// CityList returns the cities with known coordinates, sorted by name.
func (n *Network) CityList() []domain.City {
	out := make([]domain.City, 0, len(n.Cities))
	for name, c := range n.Cities {
		out = append(out, domain.City{Name: name, Coordinates: c})
	}
	slices.SortFunc(out, func(a, b domain.City) int { return strings.Compare(a.Name, b.Name) })
	return out
}

type cityLoad struct {
	edges     []domain.Edge
	coords    map[string]domain.Coordinates
	reachable []string
}

// BuildNetwork walks the network breadth-first from seeds, loading every
// reachable city's outgoing edges through loader. Cities in the same level
// load concurrently, bounded by concurrency.
//
// When seeds is empty and loader is a ports.CityLister, every listed city
// seeds the walk.
func BuildNetwork(ctx context.Context, loader ports.NetworkLoader, seeds []string, concurrency int) (_ *Network, err error) {
	defer obs.Time(ctx, "network.Build")(&err)

	if concurrency <= 0 {
		concurrency = defaultLoadConcurrency
	}

	coords := make(map[string]domain.Coordinates)
	if lister, ok := loader.(ports.CityLister); ok {
		cities, err := lister.ListCities(ctx)
		if err != nil {
			return nil, fmt.Errorf("build network: list cities: %w", err)
		}
		for _, c := range cities {
			coords[c.Name] = c.Coordinates
		}
		if len(seeds) == 0 {
			for _, c := range cities {
				seeds = append(seeds, c.Name)
			}
		}
	}
	if len(seeds) == 0 {
		return nil, errors.New("build network: no seed cities")
	}

	visited := make(map[string]struct{})
	var level []string
	for _, s := range seeds {
		s = strings.TrimSpace(s)
		if _, ok := visited[s]; ok || s == "" {
			continue
		}
		visited[s] = struct{}{}
		level = append(level, s)
	}

	var edges []domain.Edge
	for len(level) > 0 {
		results := make([]cityLoad, len(level))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for i, from := range level {
			g.Go(func() error {
				r, err := loadCity(gctx, loader, from)
				if err != nil {
					return fmt.Errorf("build network: city %q: %w", from, err)
				}
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var next []string
		for _, r := range results {
			edges = append(edges, r.edges...)
			for name, c := range r.coords {
				coords[name] = c
			}
			for _, to := range r.reachable {
				if _, ok := visited[to]; ok {
					continue
				}
				visited[to] = struct{}{}
				next = append(next, to)
			}
		}
		level = next
	}

	graph := domain.NewGraph(edges)
	log.Printf("network built cities=%d edges=%d", len(graph.Cities()), graph.EdgeCount())

	return &Network{Graph: graph, Cities: coords}, nil
}

func loadCity(ctx context.Context, loader ports.NetworkLoader, from string) (cityLoad, error) {
	out := cityLoad{coords: make(map[string]domain.Coordinates)}

	reachable, err := loader.LoadReachableCities(ctx, from)
	if err != nil {
		return out, fmt.Errorf("load reachable cities: %w", err)
	}

	for _, to := range reachable {
		pair := domain.CityPair{From: from, To: to}

		base, err := loader.LoadCityBase(ctx, pair)
		switch {
		case errors.Is(err, ports.ErrNotFound):
		case err != nil:
			return out, fmt.Errorf("load city base %s: %w", pair, err)
		default:
			if base.From != nil {
				out.coords[from] = *base.From
			}
			if base.To != nil {
				out.coords[to] = *base.To
			}
		}

		for _, m := range domain.AllModes() {
			attr, ok, err := loader.LoadEdgeAttr(ctx, m, pair)
			if err != nil {
				return out, fmt.Errorf("load %s edge %s: %w", m, pair, err)
			}
			if !ok {
				continue
			}
			out.edges = append(out.edges, domain.Edge{
				From:          from,
				To:            to,
				Mode:          m,
				DistanceKm:    attr.DistanceKm,
				DurationHours: attr.DurationHours,
				Price:         attr.Price,
			})
		}
		out.reachable = append(out.reachable, to)
	}

	return out, nil
}
