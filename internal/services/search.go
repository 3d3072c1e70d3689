package services

import (
	"freight-route-service/internal/domain"
	"freight-route-service/internal/ports"
)

// SearchParams is everything one route search needs.
// The graph is shared and read-only; the rest belongs to the call.
type SearchParams struct {
	Graph     *domain.Graph
	Estimator ports.CostEstimator
	Query     domain.RouteQuery
	Criterion domain.Criterion
	Rules     domain.Rules

	// Transition overrides the mode adjacency check.
	// When nil the search consults Rules.Allows.
	Transition TransitionFunc
}

// SearchResult is the best line-haul path found for one criterion.
// Cost is the final g-score: hours for time, price including look-ahead
// same-city fees for price.
type SearchResult struct {
	Edges     []domain.Edge
	Cost      float64
	Criterion domain.Criterion
	Expanded  int
	Pushed    int
}

// FindBestRoute runs A* from the query origin to its destination over the
// line-haul and driver sub-network.
//
// The returned result is never nil; the bool reports whether a path was found.
// An origin equal to the destination yields no path.
func FindBestRoute(p SearchParams) (*SearchResult, bool) {
	res := &SearchResult{Criterion: p.Criterion}
	origin, dest := p.Query.Origin, p.Query.Destination
	if p.Graph == nil || p.Estimator == nil || origin == dest {
		return res, false
	}

	allowed := p.Transition
	if allowed == nil {
		allowed = MatrixTransition(p.Rules)
	}

	q := &frontier{}
	q.add(searchNode{
		state:  SearchState{City: origin},
		h:      p.Estimator.Estimate(origin, dest, p.Criterion),
		parent: -1,
	})

	closed := make(map[SearchState]float64)

	for q.Len() > 0 {
		idx := q.next()
		cur := q.nodes[idx]

		if cur.state.City == dest {
			res.Edges = q.path(idx)
			res.Cost = cur.g
			return res, true
		}

		if best, ok := closed[cur.state]; ok && best <= cur.g {
			continue
		}
		closed[cur.state] = cur.g
		res.Expanded++

		if cur.state.Legs >= p.Rules.MaxLegs {
			continue
		}

		for _, e := range p.Graph.OutgoingEdges(cur.state.City) {
			if !searchable(e.Mode) || !allowed(cur.state, e.Mode) {
				continue
			}
			if e.Mode == domain.ModeDriver && e.DistanceKm > p.Rules.MaxDriverDistanceKm {
				continue
			}

			next := SearchState{
				City:     e.To,
				Legs:     cur.state.Legs + 1,
				PrevMode: cur.state.CurMode,
				CurMode:  e.Mode,
			}
			g := cur.g + stepCost(&p, cur.state, e)
			if best, ok := closed[next]; ok && best <= g {
				continue
			}

			q.add(searchNode{
				state:  next,
				g:      g,
				h:      p.Estimator.Estimate(e.To, dest, p.Criterion),
				parent: idx,
				edge:   e,
			})
			res.Pushed++
		}
	}

	return res, false
}

// stepCost is the g-score increment of taking e from state.
// Under the price criterion it folds in the same-city fees the assembled plan
// will charge, so the search ranks paths by their final price.
func stepCost(p *SearchParams, from SearchState, e domain.Edge) float64 {
	if p.Criterion == domain.CriterionTime {
		return e.DurationHours
	}

	cost := e.Price
	if p.Query.Pickup && from.Legs == 0 && !p.Rules.FeeWaived(e.Mode) {
		cost += p.Rules.SameCityFee
	}
	if p.Query.Delivery && e.To == p.Query.Destination && !p.Rules.FeeWaived(e.Mode) {
		cost += p.Rules.SameCityFee
	}
	return cost
}
