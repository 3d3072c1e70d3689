package services

import (
	"freight-route-service/internal/domain"
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randomNetwork builds a small network whose edges never cost less than the
// estimator's bound: distances are at least great-circle, prices at least
// 1 per km and speeds at most 80 km/h.
func randomNetwork(seed int64) (*domain.Graph, map[string]domain.Coordinates) {
	rng := rand.New(rand.NewSource(seed))
	n := 4 + rng.Intn(4)

	names := make([]string, n)
	cities := make(map[string]domain.Coordinates, n)
	for i := range names {
		names[i] = string(rune('A' + i))
		cities[names[i]] = domain.Coordinates{Lat: rng.Float64(), Lon: rng.Float64()}
	}

	modes := []domain.Mode{domain.ModeBigTruck, domain.ModeBigTruck, domain.ModeDriver, domain.ModeShip}
	var edges []domain.Edge
	for _, from := range names {
		for _, to := range names {
			if from == to || rng.Float64() > 0.45 {
				continue
			}
			for k := 0; k < 1+rng.Intn(2); k++ {
				km := cities[from].DistanceKm(cities[to]) * (1 + rng.Float64()*0.5)
				edges = append(edges, domain.Edge{
					From:          from,
					To:            to,
					Mode:          modes[rng.Intn(len(modes))],
					DistanceKm:    km,
					DurationHours: km / (20 + rng.Float64()*60),
					Price:         km * (1 + rng.Float64()*4),
				})
			}
		}
	}
	return domain.NewGraph(edges), cities
}

// bruteForceBest enumerates every legal line-haul path and returns the
// cheapest cost, applying the same transition, cap and fee rules.
func bruteForceBest(g *domain.Graph, q domain.RouteQuery, c domain.Criterion, rules domain.Rules) (float64, bool) {
	best := math.Inf(1)

	var walk func(state SearchState, cost float64)
	walk = func(state SearchState, cost float64) {
		if state.City == q.Destination {
			best = math.Min(best, cost)
			return
		}
		if state.Legs >= rules.MaxLegs {
			return
		}
		for _, e := range g.OutgoingEdges(state.City) {
			if e.Mode != domain.ModeBigTruck && e.Mode != domain.ModeDriver {
				continue
			}
			if !rules.Allows(state.PrevMode, state.CurMode, e.Mode) {
				continue
			}
			if e.Mode == domain.ModeDriver && e.DistanceKm > rules.MaxDriverDistanceKm {
				continue
			}

			step := e.DurationHours
			if c == domain.CriterionPrice {
				step = e.Price
				waived := rules.DriverWaivesFees && e.Mode == domain.ModeDriver
				if q.Pickup && state.Legs == 0 && !waived {
					step += rules.SameCityFee
				}
				if q.Delivery && e.To == q.Destination && !waived {
					step += rules.SameCityFee
				}
			}
			walk(SearchState{City: e.To, Legs: state.Legs + 1, PrevMode: state.CurMode, CurMode: e.Mode}, cost+step)
		}
	}
	walk(SearchState{City: q.Origin}, 0)

	return best, !math.IsInf(best, 1)
}

func TestFindBestRouteProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("search cost equals exhaustive minimum", prop.ForAll(
		func(seed int64, maxLegs int, pickup, delivery, timeCriterion bool) bool {
			g, cities := randomNetwork(seed)
			rules := domain.DefaultRules()
			rules.MaxLegs = maxLegs
			rules.MaxDriverDistanceKm = 60

			c := domain.CriterionPrice
			if timeCriterion {
				c = domain.CriterionTime
			}
			q := domain.RouteQuery{Origin: "A", Destination: "B", Pickup: pickup, Delivery: delivery}

			est, err := NewDistanceEstimator(cities, rules.ModeRates)
			if err != nil {
				return false
			}
			res, found := FindBestRoute(SearchParams{Graph: g, Estimator: est, Query: q, Criterion: c, Rules: rules})
			want, exists := bruteForceBest(g, q, c, rules)

			if found != exists {
				return false
			}
			return !found || almostEqual(res.Cost, want)
		},
		gen.Int64(),
		gen.IntRange(1, 5),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.Property("returned paths respect caps and mode order", prop.ForAll(
		func(seed int64, maxLegs int) bool {
			g, cities := randomNetwork(seed)
			rules := domain.DefaultRules()
			rules.MaxLegs = maxLegs
			rules.MaxDriverDistanceKm = 60

			est, err := NewDistanceEstimator(cities, rules.ModeRates)
			if err != nil {
				return false
			}
			for _, c := range []domain.Criterion{domain.CriterionPrice, domain.CriterionTime} {
				res, found := FindBestRoute(SearchParams{
					Graph:     g,
					Estimator: est,
					Query:     domain.RouteQuery{Origin: "A", Destination: "C"},
					Criterion: c,
					Rules:     rules,
				})
				if !found {
					continue
				}
				if len(res.Edges) > maxLegs || ValidateModeOrder(res.Edges) != nil {
					return false
				}
				for i, e := range res.Edges {
					if e.Mode == domain.ModeDriver && e.DistanceKm > rules.MaxDriverDistanceKm {
						return false
					}
					if i > 0 && res.Edges[i-1].To != e.From {
						return false
					}
				}
				if res.Edges[0].From != "A" || res.Edges[len(res.Edges)-1].To != "C" {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}
