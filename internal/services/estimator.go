package services

import (
	"errors"
	"freight-route-service/internal/domain"
	"math"
)

// UnknownCityCost is returned when either city has no coordinates.
// It pushes such branches to the back of the frontier without failing the search.
const UnknownCityCost = 1_000_000.0

// DistanceEstimator implements ports.CostEstimator from great-circle distance.
//
// Price estimates use the cheapest per-km rate across all modes and time
// estimates use the fastest speed, so the estimate never exceeds the real cost
// of any path whose edges are priced at or above those rates.
type DistanceEstimator struct {
	cities        map[string]domain.Coordinates
	cheapestPerKm float64
	fastestKmh    float64
}

func NewDistanceEstimator(
	cities map[string]domain.Coordinates,
	rates map[domain.Mode]domain.ModeRate,
) (*DistanceEstimator, error) {
	if len(rates) == 0 {
		return nil, errors.New("new distance estimator: no mode rates")
	}

	cheapest := math.Inf(1)
	fastest := 0.0
	for _, r := range rates {
		if r.PricePerKm <= 0 || r.SpeedKmh <= 0 {
			return nil, errors.New("new distance estimator: rates must be positive")
		}
		cheapest = math.Min(cheapest, r.PricePerKm)
		fastest = math.Max(fastest, r.SpeedKmh)
	}

	return &DistanceEstimator{
		cities:        cities,
		cheapestPerKm: cheapest,
		fastestKmh:    fastest,
	}, nil
}

func (e *DistanceEstimator) Estimate(current, target string, criterion domain.Criterion) float64 {
	if current == target {
		return 0
	}

	from, ok := e.cities[current]
	if !ok {
		return UnknownCityCost
	}
	to, ok := e.cities[target]
	if !ok {
		return UnknownCityCost
	}

	km := from.DistanceKm(to)
	switch criterion {
	case domain.CriterionPrice:
		return km * e.cheapestPerKm
	case domain.CriterionTime:
		return km / e.fastestKmh
	}
	return UnknownCityCost
}
