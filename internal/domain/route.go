package domain

// Represents a single leg of a freight itinerary.
// A local-service leg (pickup or delivery) starts and ends in the same city,
// covers no distance, and is priced either at the same-city fee or zero.
type RouteLeg struct {
	Seq           int
	From          string
	To            string
	Mode          Mode
	DistanceKm    float64
	DurationHours float64
	Price         float64
	LocalService  bool
}

// Represents a priced, timed itinerary between two cities.
// A RoutePlan is the output of the planner and is never modified after it is returned.
// Criterion is nil for direct single-mode plans.
type RoutePlan struct {
	Origin            string
	Destination       string
	Legs              []RouteLeg
	TotalPrice        float64
	TotalHours        float64
	LegCount          int
	Criterion         *Criterion
	FirstLineHaulMode Mode
	LastLineHaulMode  Mode
	Pickup            bool
	Delivery          bool
}

// LineHaulLegs returns the legs that are not local pickup or delivery service.
func (p *RoutePlan) LineHaulLegs() []RouteLeg {
	out := make([]RouteLeg, 0, len(p.Legs))
	for _, l := range p.Legs {
		if !l.LocalService {
			out = append(out, l)
		}
	}
	return out
}

// Modes lists the mode of every leg in order.
func (p *RoutePlan) Modes() []Mode {
	out := make([]Mode, 0, len(p.Legs))
	for _, l := range p.Legs {
		out = append(out, l.Mode)
	}
	return out
}

// RouteQuery is a single planning request.
// When Criterion is nil both the time-optimal and price-optimal plans are searched.
type RouteQuery struct {
	Origin      string
	Destination string
	Pickup      bool
	Delivery    bool
	Criterion   *Criterion
}
