package services

import (
	"freight-route-service/internal/domain"
	"testing"
)

func TestResolveDirectRoutesOrderAndCaps(t *testing.T) {
	g := domain.NewGraph([]domain.Edge{
		edge("A", "B", domain.ModeSmallTruck, 300, 6, 900),
		edge("A", "B", domain.ModeDriver, 300, 5, 1500),
		edge("A", "B", domain.ModeRail, 320, 4, 480),
		edge("A", "B", domain.ModeShip, 400, 20, 350),
		edge("A", "B", domain.ModeBigTruck, 300, 5, 1000),
	})
	rules := domain.DefaultRules()
	q := domain.RouteQuery{Origin: "A", Destination: "B", Pickup: true}

	plans := ResolveDirectRoutes(g, q, rules)

	want := []domain.Mode{domain.ModeShip, domain.ModeRail, domain.ModeDriver, domain.ModeSmallTruck}
	if len(plans) != len(want) {
		t.Fatalf("got %d plans, want %d", len(plans), len(want))
	}
	for i, p := range plans {
		if p.FirstLineHaulMode != want[i] {
			t.Fatalf("plan %d mode = %s, want %s", i, p.FirstLineHaulMode, want[i])
		}
		if p.Criterion != nil {
			t.Fatalf("plan %d criterion = %v, want none", i, *p.Criterion)
		}
		if p.LegCount != 2 || !p.Legs[0].LocalService {
			t.Fatalf("plan %d legs = %+v, want pickup plus one leg", i, p.Legs)
		}
	}

	if got := plans[0].TotalPrice; got != 550 {
		t.Fatalf("ship total = %v, want 350 plus 200 pickup", got)
	}
	if got := plans[2].TotalPrice; got != 1500 {
		t.Fatalf("driver total = %v, want 1500 with waived pickup", got)
	}

	rules.MaxDriverDistanceKm = 200
	for _, p := range ResolveDirectRoutes(g, q, rules) {
		if p.FirstLineHaulMode == domain.ModeDriver {
			t.Fatalf("driver plan over the distance cap: %+v", p)
		}
	}
}

func TestResolveDirectMissingMode(t *testing.T) {
	g := domain.NewGraph([]domain.Edge{edge("A", "B", domain.ModeRail, 10, 1, 10)})

	if _, ok := ResolveDirect(g, domain.RouteQuery{Origin: "A", Destination: "B"}, domain.ModeShip, domain.DefaultRules()); ok {
		t.Fatalf("expected no ship plan")
	}
	if plans := ResolveDirectRoutes(g, domain.RouteQuery{Origin: "B", Destination: "A"}, domain.DefaultRules()); len(plans) != 0 {
		t.Fatalf("expected no plans in the reverse direction, got %d", len(plans))
	}
}
