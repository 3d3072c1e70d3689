package domain

import (
	"fmt"
	"strings"
)

// Mode identifies how freight moves along an edge.
// The zero value ModeNone marks the start of a search before any leg is taken.
type Mode string

const (
	ModeNone       Mode = ""
	ModeShip       Mode = "ship"
	ModeRail       Mode = "rail"
	ModeDriver     Mode = "driver"
	ModeBigTruck   Mode = "big_truck"
	ModeSmallTruck Mode = "small_truck"
)

// ModeLineHaul is the primary long-distance mode chained by the route search.
const ModeLineHaul = ModeBigTruck

// AllModes lists every transport mode in a stable order.
func AllModes() []Mode {
	return []Mode{ModeShip, ModeRail, ModeDriver, ModeBigTruck, ModeSmallTruck}
}

func (m Mode) IsNone() bool { return m == ModeNone }

// Valid reports whether m is one of the known transport modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeShip, ModeRail, ModeDriver, ModeBigTruck, ModeSmallTruck:
		return true
	}
	return false
}

func (m Mode) String() string {
	if m == ModeNone {
		return "none"
	}
	return string(m)
}

// ParseMode converts user or storage input into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return ModeNone, fmt.Errorf("parse mode: unknown transport mode %q", s)
	}
	return m, nil
}

// Criterion selects what the route search minimizes.
type Criterion string

const (
	CriterionTime  Criterion = "time"
	CriterionPrice Criterion = "price"
)

func ParseCriterion(s string) (Criterion, error) {
	switch c := Criterion(strings.ToLower(strings.TrimSpace(s))); c {
	case CriterionTime, CriterionPrice:
		return c, nil
	}
	return "", fmt.Errorf("parse criterion: unknown optimization criterion %q", s)
}
