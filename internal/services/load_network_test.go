package services

import (
	"context"
	"errors"
	"freight-route-service/internal/adapters/loader"
	"freight-route-service/internal/domain"
	"freight-route-service/internal/ports"
	"testing"
)

func TestBuildNetworkFromMemoryLoader(t *testing.T) {
	cities := []domain.City{
		{Name: "A", Coordinates: domain.Coordinates{Lat: 0, Lon: 0}},
		{Name: "B", Coordinates: domain.Coordinates{Lat: 0, Lon: 0.1}},
		{Name: "C", Coordinates: domain.Coordinates{Lat: 0, Lon: 0.2}},
		{Name: "D", Coordinates: domain.Coordinates{Lat: 1, Lon: 1}},
	}
	edges := []domain.Edge{
		edge("A", "B", domain.ModeBigTruck, 11, 2, 100),
		edge("A", "B", domain.ModeDriver, 11, 2, 150),
		edge("B", "C", domain.ModeBigTruck, 11, 2, 100),
		edge("A", "C", domain.ModeRail, 22, 1, 50),
		edge("D", "A", domain.ModeShip, 150, 10, 150),
	}
	l := loader.NewMemoryNetworkLoader(cities, edges)

	n, err := BuildNetwork(context.Background(), l, []string{"A"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := n.Graph.EdgeCount(); got != 4 {
		t.Fatalf("edge count from A = %d, want 4", got)
	}
	if got := len(n.Graph.EdgesBetween("A", "B")); got != 2 {
		t.Fatalf("A->B edges = %d, want 2", got)
	}
	if _, ok := n.Cities["D"]; !ok {
		t.Fatalf("listed city D missing from coordinates")
	}

	all, err := BuildNetwork(context.Background(), l, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := all.Graph.EdgeCount(); got != len(edges) {
		t.Fatalf("edge count from every city = %d, want %d", got, len(edges))
	}
	if got := all.CityList(); len(got) != 4 || got[0].Name != "A" || got[3].Name != "D" {
		t.Fatalf("city list = %+v", got)
	}
}

func TestBuildNetworkPlansMatchDirectGraph(t *testing.T) {
	g, cities := sampleNetwork(t)

	var list []domain.City
	for name, c := range cities {
		list = append(list, domain.City{Name: name, Coordinates: c})
	}
	var edges []domain.Edge
	for _, c := range g.Cities() {
		edges = append(edges, g.OutgoingEdges(c)...)
	}

	n, err := BuildNetwork(context.Background(), loader.NewMemoryNetworkLoader(list, edges), nil, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := domain.RouteQuery{Origin: "Beijing", Destination: "Shanghai", Delivery: true}
	want, err := NewPlanner(g, cities).Plan(context.Background(), q, domain.DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := NewPlanner(n.Graph, n.Cities).Plan(context.Background(), q, domain.DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d plans, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].TotalPrice != want[i].TotalPrice || got[i].LegCount != want[i].LegCount {
			t.Fatalf("plan %d = %v/%d, want %v/%d", i, got[i].TotalPrice, got[i].LegCount, want[i].TotalPrice, want[i].LegCount)
		}
	}
}

type failingLoader struct{ ports.NetworkLoader }

var errBackend = errors.New("backend down")

func (failingLoader) LoadReachableCities(context.Context, string) ([]string, error) {
	return nil, errBackend
}

func TestBuildNetworkPropagatesLoaderErrors(t *testing.T) {
	_, err := BuildNetwork(context.Background(), failingLoader{}, []string{"A"}, 1)
	if !errors.Is(err, errBackend) {
		t.Fatalf("err = %v, want %v", err, errBackend)
	}

	if _, err := BuildNetwork(context.Background(), failingLoader{}, nil, 1); err == nil {
		t.Fatalf("expected error without seed cities")
	}
}
