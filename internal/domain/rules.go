package domain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ModeRate is the nominal cost and speed of a transport mode.
// The cost estimator uses the cheapest rate and the fastest speed across all modes.
type ModeRate struct {
	PricePerKm float64 `yaml:"price_per_km" validate:"gt=0"`
	SpeedKmh   float64 `yaml:"speed_kmh" validate:"gt=0"`
}

// Rules is the planning configuration for a single call.
//
// Rules is a plain value: callers copy it, adjust fields, and pass it into each
// planning call. Nothing in the planner keeps a reference to it between calls.
type Rules struct {
	MaxLegs              int     `yaml:"max_legs" validate:"min=1"`
	MaxDriverDistanceKm  float64 `yaml:"max_driver_distance_km" validate:"gte=0"`
	SameCityFee          float64 `yaml:"same_city_fee" validate:"gte=0"`
	SameCityHours        float64 `yaml:"same_city_hours" validate:"gte=0"`
	ForbidDriverInMiddle bool    `yaml:"forbid_driver_in_middle"`
	DriverWaivesFees     bool    `yaml:"driver_waives_fees"`

	// StartModes are the modes allowed for the first leg of a path.
	StartModes []Mode `yaml:"start_modes" validate:"min=1"`
	// Transitions maps a leg's mode to the modes allowed for the following leg.
	Transitions map[Mode][]Mode   `yaml:"transitions"`
	ModeRates   map[Mode]ModeRate `yaml:"mode_rates" validate:"min=1,dive"`
}

// DefaultRules returns the standard configuration: five legs, a 1000 km driver
// cap, and a 200 fee / 2 hour same-city service.
func DefaultRules() Rules {
	return Rules{
		MaxLegs:              5,
		MaxDriverDistanceKm:  1000,
		SameCityFee:          200,
		SameCityHours:        2,
		ForbidDriverInMiddle: true,
		DriverWaivesFees:     true,
		StartModes:           []Mode{ModeBigTruck, ModeDriver},
		Transitions: map[Mode][]Mode{
			ModeDriver:     {ModeBigTruck},
			ModeBigTruck:   {ModeBigTruck, ModeSmallTruck, ModeDriver},
			ModeSmallTruck: {ModeBigTruck, ModeSmallTruck},
			ModeShip:       {},
			ModeRail:       {},
		},
		ModeRates: map[Mode]ModeRate{
			ModeBigTruck:   {PricePerKm: 5.0, SpeedKmh: 60},
			ModeSmallTruck: {PricePerKm: 5.0, SpeedKmh: 60},
			ModeDriver:     {PricePerKm: 8.0, SpeedKmh: 50},
			ModeRail:       {PricePerKm: 1.5, SpeedKmh: 80},
			ModeShip:       {PricePerKm: 1.0, SpeedKmh: 30},
		},
	}
}

// Validate rejects configurations the planner cannot honor.
func (r Rules) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validate rules: %w", err)
	}

	for _, m := range r.StartModes {
		if !m.Valid() {
			return fmt.Errorf("validate rules: unknown start mode %q", m)
		}
	}
	for from, next := range r.Transitions {
		if !from.Valid() {
			return fmt.Errorf("validate rules: unknown transition mode %q", from)
		}
		for _, m := range next {
			if !m.Valid() {
				return fmt.Errorf("validate rules: unknown mode %q after %q", m, from)
			}
		}
	}
	for m := range r.ModeRates {
		if !m.Valid() {
			return fmt.Errorf("validate rules: unknown rate mode %q", m)
		}
	}

	if len(r.ModeRates) == 0 {
		return errors.New("validate rules: at least one mode rate is required")
	}

	return nil
}

// Allows reports whether a leg of mode next may follow a path whose last two
// legs used prev and cur. ModeNone for cur means no leg has been taken yet.
func (r Rules) Allows(prev, cur, next Mode) bool {
	if cur.IsNone() {
		return slices.Contains(r.StartModes, next)
	}

	// A driver leg that follows another leg can only close the path.
	if r.ForbidDriverInMiddle && cur == ModeDriver && !prev.IsNone() {
		return false
	}

	return slices.Contains(r.Transitions[cur], next)
}

// FeeWaived reports whether a same-city service next to a leg of mode m is free.
func (r Rules) FeeWaived(m Mode) bool {
	return r.DriverWaivesFees && m == ModeDriver
}

// Clone returns a deep copy so callers can adjust maps and slices safely.
func (r Rules) Clone() Rules {
	out := r
	out.StartModes = slices.Clone(r.StartModes)
	out.Transitions = make(map[Mode][]Mode, len(r.Transitions))
	for k, v := range r.Transitions {
		out.Transitions[k] = slices.Clone(v)
	}
	out.ModeRates = make(map[Mode]ModeRate, len(r.ModeRates))
	for k, v := range r.ModeRates {
		out.ModeRates[k] = v
	}
	return out
}
