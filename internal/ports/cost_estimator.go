package ports

import "freight-route-service/internal/domain"

// Contract for a lower-bound estimate of the remaining cost between two cities.
// Implementations must never overestimate the true minimal cost.
type CostEstimator interface {
	Estimate(current, target string, criterion domain.Criterion) float64
}
