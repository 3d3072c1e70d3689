package ports

import (
	"context"
	"freight-route-service/internal/domain"
)

// Port: answers a route query under the given rules.
type RoutePlanner interface {
	Plan(ctx context.Context, q domain.RouteQuery, rules domain.Rules) ([]domain.RoutePlan, error)
}

// Port: supplies the planning rules in force for one call.
type RulesSource interface {
	Snapshot() domain.Rules
}
