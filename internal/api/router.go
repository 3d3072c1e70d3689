package api

import (
	"freight-route-service/internal/api/handlers"
	"freight-route-service/internal/domain"
	"freight-route-service/internal/platform/metrics"
	"freight-route-service/internal/ports"
	"net/http"

	"golang.org/x/time/rate"
)

// Deps are the collaborators the HTTP layer needs.
// Metrics and Limiter are optional.
type Deps struct {
	Planner ports.RoutePlanner
	Rules   ports.RulesSource
	Cities  []domain.City
	Metrics *metrics.Registry
	Limiter *rate.Limiter
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) (http.Handler, error) {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{Planner: d.Planner, Rules: d.Rules}
	cityHandler := &handlers.CityHandler{Cities: d.Cities}
	healthHandler := &handlers.HealthHandler{Cities: len(d.Cities)}

	schema, err := handlers.NewPlanSchema(d.Planner, d.Rules)
	if err != nil {
		return nil, err
	}
	gqlHandler := &handlers.GraphQL{Schema: schema}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/cities", cityHandler.List)
	mux.Handle("/plans", rateLimitMiddleware(d.Limiter, d.Metrics, http.HandlerFunc(planHandler.Plan)))
	mux.Handle("/graphql", rateLimitMiddleware(d.Limiter, d.Metrics, http.HandlerFunc(gqlHandler.Serve)))
	if d.Metrics != nil {
		mux.Handle("/metrics", d.Metrics.Handler())
	}

	return requestIDMiddleware(loggingMiddleware(d.Metrics, mux)), nil
}
