package services

import "freight-route-service/internal/domain"

// SearchState is the key the route search deduplicates on.
// The same city reached with a different leg count or mode history is a
// different state because its admissible continuations differ.
type SearchState struct {
	City     string
	Legs     int
	PrevMode domain.Mode
	CurMode  domain.Mode
}

// TransitionFunc reports whether a leg of mode next may be taken from state.
type TransitionFunc func(state SearchState, next domain.Mode) bool

// MatrixTransition checks transitions against the adjacency matrix in rules.
func MatrixTransition(rules domain.Rules) TransitionFunc {
	return func(state SearchState, next domain.Mode) bool {
		return rules.Allows(state.PrevMode, state.CurMode, next)
	}
}

// FixedTransition is the plain line-haul/driver table:
// start -> line-haul or driver, driver -> line-haul, line-haul -> line-haul or driver.
func FixedTransition(state SearchState, next domain.Mode) bool {
	switch state.CurMode {
	case domain.ModeNone, domain.ModeLineHaul:
		return next == domain.ModeLineHaul || next == domain.ModeDriver
	case domain.ModeDriver:
		return next == domain.ModeLineHaul
	}
	return false
}

// The route search only chains line-haul and driver legs.
// Every other mode is served by the direct-route resolver.
func searchable(m domain.Mode) bool {
	return m == domain.ModeLineHaul || m == domain.ModeDriver
}
