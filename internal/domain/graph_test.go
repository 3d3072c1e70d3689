package domain

import "testing"

func TestGraphOutgoingIndexMatchesEdges(t *testing.T) {
	edges := []Edge{
		{From: "A", To: "C", Mode: ModeBigTruck, DistanceKm: 50, DurationHours: 1, Price: 500},
		{From: "A", To: "B", Mode: ModeBigTruck, DistanceKm: 20, DurationHours: 2, Price: 100},
		{From: "A", To: "B", Mode: ModeDriver, DistanceKm: 20, DurationHours: 3, Price: 160},
		{From: "B", To: "C", Mode: ModeBigTruck, DistanceKm: 25, DurationHours: 2, Price: 100},
	}

	g := NewGraph(edges)

	total := 0
	for _, c := range g.Cities() {
		for _, e := range g.OutgoingEdges(c) {
			if e.From != c {
				t.Fatalf("edge %v listed under %q", e, c)
			}
			total++
		}
	}
	if total != len(edges) {
		t.Fatalf("outgoing edges = %d, want %d", total, len(edges))
	}
	if g.EdgeCount() != len(edges) {
		t.Fatalf("EdgeCount() = %d, want %d", g.EdgeCount(), len(edges))
	}

	out := g.OutgoingEdges("A")
	if out[0].To != "B" || out[0].Mode != ModeBigTruck || out[1].Mode != ModeDriver || out[2].To != "C" {
		t.Fatalf("outgoing order not deterministic: %v", out)
	}

	if got := len(g.EdgesBetween("A", "B")); got != 2 {
		t.Fatalf("EdgesBetween(A, B) = %d edges, want 2", got)
	}
}

func TestGraphEmptyLookups(t *testing.T) {
	g := NewGraph(nil)

	if out := g.OutgoingEdges("nowhere"); out == nil || len(out) != 0 {
		t.Fatalf("OutgoingEdges on unknown city = %#v, want empty non-nil slice", out)
	}
	if between := g.EdgesBetween("A", "B"); len(between) != 0 {
		t.Fatalf("EdgesBetween on empty graph = %v, want empty", between)
	}
}

func TestGraphReturnsCopies(t *testing.T) {
	g := NewGraph([]Edge{{From: "A", To: "B", Mode: ModeBigTruck, Price: 100}})

	out := g.OutgoingEdges("A")
	out[0].Price = 1

	if got := g.OutgoingEdges("A")[0].Price; got != 100 {
		t.Fatalf("stored price = %v after caller mutation, want 100", got)
	}
}
