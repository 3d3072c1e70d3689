package seed

import (
	"freight-route-service/internal/domain"
	"os"
	"path/filepath"
	"testing"
)

func TestParseNormalizesAndConverts(t *testing.T) {
	n, err := Parse([]byte(`{
		"cities": [{"name": " Beijing ", "lat": 39.9, "lon": 116.4}, {"name": "Tianjin", "lat": 39.3, "lon": 117.4}],
		"edges": [{"from": "Beijing", "to": "Tianjin", "mode": " Big_Truck ", "distance_km": 137, "duration_hours": 2.3, "price": 685}]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cities := n.DomainCities()
	if len(cities) != 2 || cities[0].Name != "Beijing" {
		t.Fatalf("cities = %+v", cities)
	}

	edges, err := n.DomainEdges()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edges) != 1 || edges[0].Mode != domain.ModeBigTruck || edges[0].Price != 685 {
		t.Fatalf("edges = %+v", edges)
	}
}

func TestParseRejectsInvalidSeeds(t *testing.T) {
	cases := map[string]string{
		"bad json":       `{`,
		"unknown mode":   `{"edges": [{"from": "A", "to": "B", "mode": "plane"}]}`,
		"self loop":      `{"edges": [{"from": "A", "to": "A", "mode": "rail"}]}`,
		"negative price": `{"edges": [{"from": "A", "to": "B", "mode": "rail", "price": -1}]}`,
		"bad latitude":   `{"cities": [{"name": "A", "lat": 91, "lon": 0}]}`,
		"duplicate city": `{"cities": [{"name": "A"}, {"name": "A"}]}`,
	}

	for name, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.json")
	if err := os.WriteFile(path, []byte(`{"cities": [{"name": "A", "lat": 1, "lon": 2}]}`), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	n, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.Cities) != 1 {
		t.Fatalf("cities = %d, want 1", len(n.Cities))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestShippedSeedIsValid(t *testing.T) {
	n, err := ReadFile(filepath.Join("..", "..", "..", "data", "seeds", "network.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	known := make(map[string]bool, len(n.Cities))
	for _, c := range n.Cities {
		known[c.Name] = true
	}
	for _, e := range n.Edges {
		if !known[e.From] || !known[e.To] {
			t.Fatalf("edge %s->%s references a city without coordinates", e.From, e.To)
		}
	}
}
