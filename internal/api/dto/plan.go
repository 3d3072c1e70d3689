package dto

import (
	"errors"
	"fmt"
	"freight-route-service/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var ErrInvalidRequest = errors.New("invalid plan request")

type PlanRequest struct {
	Origin              string   `json:"origin" validate:"required"`
	Destination         string   `json:"destination" validate:"required,nefield=Origin"`
	Pickup              bool     `json:"pickup"`
	Delivery            bool     `json:"delivery"`
	Criterion           string   `json:"criterion" validate:"omitempty,oneof=time price"`
	MaxLegs             *int     `json:"max_legs" validate:"omitempty,min=1,max=10"`
	MaxDriverDistanceKm *float64 `json:"max_driver_distance_km" validate:"omitempty,gte=0"`
}

// Validate checks the request shape. Errors are safe to show to clients.
func (r PlanRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

func (r PlanRequest) Query() domain.RouteQuery {
	q := domain.RouteQuery{
		Origin:      r.Origin,
		Destination: r.Destination,
		Pickup:      r.Pickup,
		Delivery:    r.Delivery,
	}
	if r.Criterion != "" {
		c := domain.Criterion(r.Criterion)
		q.Criterion = &c
	}
	return q
}

// ApplyTo returns rules with the request's per-call overrides applied.
func (r PlanRequest) ApplyTo(rules domain.Rules) domain.Rules {
	if r.MaxLegs != nil {
		rules.MaxLegs = *r.MaxLegs
	}
	if r.MaxDriverDistanceKm != nil {
		rules.MaxDriverDistanceKm = *r.MaxDriverDistanceKm
	}
	return rules
}

type LegResponse struct {
	Seq           int     `json:"seq"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	Mode          string  `json:"mode"`
	DistanceKm    float64 `json:"distance_km"`
	DurationHours float64 `json:"duration_hours"`
	Price         float64 `json:"price"`
	LocalService  bool    `json:"local_service"`
}

type PlanResponse struct {
	Origin            string        `json:"origin"`
	Destination       string        `json:"destination"`
	Criterion         string        `json:"criterion,omitempty"`
	TotalPrice        float64       `json:"total_price"`
	TotalHours        float64       `json:"total_hours"`
	LegCount          int           `json:"leg_count"`
	FirstLineHaulMode string        `json:"first_line_haul_mode"`
	LastLineHaulMode  string        `json:"last_line_haul_mode"`
	Pickup            bool          `json:"pickup"`
	Delivery          bool          `json:"delivery"`
	Legs              []LegResponse `json:"legs"`
}

type ListPlanResponse struct {
	Plans []PlanResponse `json:"plans"`
}

func NewPlanResponse(p domain.RoutePlan) PlanResponse {
	res := PlanResponse{
		Origin:            p.Origin,
		Destination:       p.Destination,
		TotalPrice:        p.TotalPrice,
		TotalHours:        p.TotalHours,
		LegCount:          p.LegCount,
		FirstLineHaulMode: string(p.FirstLineHaulMode),
		LastLineHaulMode:  string(p.LastLineHaulMode),
		Pickup:            p.Pickup,
		Delivery:          p.Delivery,
		Legs:              make([]LegResponse, 0, len(p.Legs)),
	}
	if p.Criterion != nil {
		res.Criterion = string(*p.Criterion)
	}

	for _, l := range p.Legs {
		res.Legs = append(res.Legs, LegResponse{
			Seq:           l.Seq,
			From:          l.From,
			To:            l.To,
			Mode:          string(l.Mode),
			DistanceKm:    l.DistanceKm,
			DurationHours: l.DurationHours,
			Price:         l.Price,
			LocalService:  l.LocalService,
		})
	}
	return res
}

func NewListPlanResponse(plans []domain.RoutePlan) ListPlanResponse {
	res := ListPlanResponse{Plans: make([]PlanResponse, 0, len(plans))}
	for _, p := range plans {
		res.Plans = append(res.Plans, NewPlanResponse(p))
	}
	return res
}
