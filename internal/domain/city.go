package domain

// A named city with its geographic position.
type City struct {
	Name        string
	Coordinates Coordinates
}

// Ordered (from, to) city pair used as a lookup key.
type CityPair struct {
	From string
	To   string
}

func (p CityPair) String() string { return p.From + "|" + p.To }

// Edge is a directed transport option between two cities.
// Several edges may connect the same pair with different modes.
type Edge struct {
	From          string
	To            string
	Mode          Mode
	DistanceKm    float64
	DurationHours float64
	Price         float64
}

func (e Edge) Pair() CityPair { return CityPair{From: e.From, To: e.To} }
