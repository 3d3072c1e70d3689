package services

import (
	"errors"
	"fmt"
	"freight-route-service/internal/domain"
)

var (
	ErrAdjacentDrivers = errors.New("consecutive driver legs")
	ErrDriverInMiddle  = errors.New("driver leg between line-haul legs")
	ErrEmptyRoute      = errors.New("route has no legs")
)

// ValidateModeOrder checks the driver placement rules on a line-haul path:
// no two driver legs in a row, and a driver leg only at either end.
func ValidateModeOrder(edges []domain.Edge) error {
	if len(edges) == 0 {
		return ErrEmptyRoute
	}

	last := len(edges) - 1
	for i, e := range edges {
		if e.Mode != domain.ModeDriver {
			continue
		}
		if i > 0 && edges[i-1].Mode == domain.ModeDriver {
			return fmt.Errorf("leg %d: %w", i+1, ErrAdjacentDrivers)
		}
		if i != 0 && i != last {
			return fmt.Errorf("leg %d: %w", i+1, ErrDriverInMiddle)
		}
	}
	return nil
}

// AssembleSearchPlan turns a search result into a plan tagged with its criterion.
// A price plan reports the search cost as its total; its fee look-ahead already
// matches the local legs added here.
func AssembleSearchPlan(q domain.RouteQuery, res *SearchResult, rules domain.Rules) (*domain.RoutePlan, error) {
	if res == nil {
		return nil, fmt.Errorf("assemble plan: %w", ErrEmptyRoute)
	}

	plan, err := assemble(q, res.Edges, rules)
	if err != nil {
		return nil, err
	}

	c := res.Criterion
	plan.Criterion = &c
	if c == domain.CriterionPrice {
		plan.TotalPrice = res.Cost
	}
	return plan, nil
}

func assemble(q domain.RouteQuery, edges []domain.Edge, rules domain.Rules) (*domain.RoutePlan, error) {
	if err := ValidateModeOrder(edges); err != nil {
		return nil, fmt.Errorf("assemble plan: %w", err)
	}

	first, last := edges[0], edges[len(edges)-1]
	plan := &domain.RoutePlan{
		Origin:            q.Origin,
		Destination:       q.Destination,
		FirstLineHaulMode: first.Mode,
		LastLineHaulMode:  last.Mode,
		Pickup:            q.Pickup,
		Delivery:          q.Delivery,
	}

	legs := make([]domain.RouteLeg, 0, len(edges)+2)
	if q.Pickup {
		legs = append(legs, localLeg(q.Origin, first.Mode, rules))
	}
	for _, e := range edges {
		legs = append(legs, domain.RouteLeg{
			From:          e.From,
			To:            e.To,
			Mode:          e.Mode,
			DistanceKm:    e.DistanceKm,
			DurationHours: e.DurationHours,
			Price:         e.Price,
		})
	}
	if q.Delivery {
		legs = append(legs, localLeg(q.Destination, last.Mode, rules))
	}

	for i := range legs {
		legs[i].Seq = i + 1
		plan.TotalPrice += legs[i].Price
		plan.TotalHours += legs[i].DurationHours
	}
	plan.Legs = legs
	plan.LegCount = len(legs)

	return plan, nil
}

// localLeg is a same-city pickup or delivery next to a line-haul leg of mode adjacent.
func localLeg(city string, adjacent domain.Mode, rules domain.Rules) domain.RouteLeg {
	leg := domain.RouteLeg{
		From:          city,
		To:            city,
		Mode:          domain.ModeDriver,
		DurationHours: rules.SameCityHours,
		Price:         rules.SameCityFee,
		LocalService:  true,
	}
	if rules.FeeWaived(adjacent) {
		leg.Price = 0
	}
	return leg
}
