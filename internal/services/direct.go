package services

import "freight-route-service/internal/domain"

// DirectModes are the single-leg modes offered alongside the searched plans, in output order.
var DirectModes = []domain.Mode{
	domain.ModeShip,
	domain.ModeRail,
	domain.ModeDriver,
	domain.ModeSmallTruck,
}

// ResolveDirect builds the one-leg plan for mode between the query's cities.
// It reports false when no such edge exists or a driver edge exceeds the cap.
func ResolveDirect(g *domain.Graph, q domain.RouteQuery, mode domain.Mode, rules domain.Rules) (*domain.RoutePlan, bool) {
	edges := g.EdgesBetween(q.Origin, q.Destination)

	for _, e := range edges {
		if e.Mode != mode {
			continue
		}
		if mode == domain.ModeDriver && e.DistanceKm > rules.MaxDriverDistanceKm {
			return nil, false
		}
		plan, err := assemble(q, []domain.Edge{e}, rules)
		if err != nil {
			return nil, false
		}
		return plan, true
	}
	return nil, false
}

// ResolveDirectRoutes returns every available direct plan in DirectModes order.
func ResolveDirectRoutes(g *domain.Graph, q domain.RouteQuery, rules domain.Rules) []domain.RoutePlan {
	var plans []domain.RoutePlan
	for _, m := range DirectModes {
		if plan, ok := ResolveDirect(g, q, m, rules); ok {
			plans = append(plans, *plan)
		}
	}
	return plans
}
