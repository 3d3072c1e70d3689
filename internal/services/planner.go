package services

import (
	"context"
	"errors"
	"fmt"
	"freight-route-service/internal/domain"
	"freight-route-service/internal/platform/obs"
	"log"
	"slices"
	"strings"
	"time"
)

var (
	ErrInvalidQuery = errors.New("invalid route query")
	ErrInvalidRules = errors.New("invalid planning rules")
)

// PlanRecorder receives planner statistics. platform/metrics implements it.
type PlanRecorder interface {
	ObserveSearch(criterion domain.Criterion, found bool, expanded int, dur time.Duration)
	ObservePlan(outcome string, plans int, dur time.Duration)
}

type PlannerOption func(*Planner)

// WithRecorder reports search and plan statistics to r.
func WithRecorder(r PlanRecorder) PlannerOption {
	return func(p *Planner) { p.recorder = r }
}

// WithTransition replaces the rules-driven mode adjacency check.
func WithTransition(build func(domain.Rules) TransitionFunc) PlannerOption {
	return func(p *Planner) { p.transition = build }
}

// Planner answers route queries against one immutable network.
// It holds no per-call state and is safe for concurrent use.
type Planner struct {
	graph      *domain.Graph
	cities     map[string]domain.Coordinates
	recorder   PlanRecorder
	transition func(domain.Rules) TransitionFunc
}

func NewPlanner(g *domain.Graph, cities map[string]domain.Coordinates, opts ...PlannerOption) *Planner {
	p := &Planner{
		graph:      g,
		cities:     cities,
		transition: MatrixTransition,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan returns the candidate plans for q: the time-optimal plan, the
// price-optimal plan when it differs, then direct plans in DirectModes order.
// An empty result means no viable plan exists.
func (p *Planner) Plan(ctx context.Context, q domain.RouteQuery, rules domain.Rules) (_ []domain.RoutePlan, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	start := time.Now()
	outcome := "ok"
	plans := []domain.RoutePlan{}
	defer func() {
		if err != nil {
			outcome = "error"
		} else if len(plans) == 0 {
			outcome = "empty"
		}
		if p.recorder != nil {
			p.recorder.ObservePlan(outcome, len(plans), time.Since(start))
		}
	}()

	if q, err = normalizeQuery(q); err != nil {
		return nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("plan route: %w: %w", ErrInvalidRules, err)
	}

	est, err := NewDistanceEstimator(p.cities, rules.ModeRates)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w: %w", ErrInvalidRules, err)
	}

	criteria := []domain.Criterion{domain.CriterionTime, domain.CriterionPrice}
	if q.Criterion != nil {
		criteria = []domain.Criterion{*q.Criterion}
	}

	var kept []domain.Edge
	reqID := obs.RequestID(ctx)

	for _, c := range criteria {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("plan route: %w", err)
		}

		searchStart := time.Now()
		res, found := FindBestRoute(SearchParams{
			Graph:      p.graph,
			Estimator:  est,
			Query:      q,
			Criterion:  c,
			Rules:      rules,
			Transition: p.transition(rules),
		})
		if p.recorder != nil {
			p.recorder.ObserveSearch(c, found, res.Expanded, time.Since(searchStart))
		}
		if !found {
			continue
		}

		if kept != nil && sameEdges(kept, res.Edges) {
			continue
		}

		plan, err := AssembleSearchPlan(q, res, rules)
		if err != nil {
			log.Printf("req_id=%s op=planner.Plan criterion=%s discarded: %v", reqID, c, err)
			continue
		}
		plans = append(plans, *plan)
		if kept == nil {
			kept = res.Edges
		}
	}

	plans = append(plans, ResolveDirectRoutes(p.graph, q, rules)...)

	return plans, nil
}

func normalizeQuery(q domain.RouteQuery) (domain.RouteQuery, error) {
	q.Origin = strings.TrimSpace(q.Origin)
	q.Destination = strings.TrimSpace(q.Destination)
	if q.Origin == "" || q.Destination == "" {
		return q, fmt.Errorf("plan route: %w: origin and destination are required", ErrInvalidQuery)
	}
	if q.Origin == q.Destination {
		return q, fmt.Errorf("plan route: %w: origin equals destination %q", ErrInvalidQuery, q.Origin)
	}
	if q.Criterion != nil {
		c, err := domain.ParseCriterion(string(*q.Criterion))
		if err != nil {
			return q, fmt.Errorf("plan route: %w: %w", ErrInvalidQuery, err)
		}
		q.Criterion = &c
	}
	return q, nil
}

// sameEdges reports whether two paths use the same edges in the same order.
func sameEdges(a, b []domain.Edge) bool {
	return slices.Equal(a, b)
}
