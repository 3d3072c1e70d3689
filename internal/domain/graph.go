package domain

import (
	"cmp"
	"slices"
)

// Graph is the read-only transport network.
//
// It indexes edges by ordered city pair and by origin city. Both indexes are
// built once in NewGraph and never mutated afterwards, so a Graph may be shared
// across concurrent planning calls without locking.
type Graph struct {
	byPair   map[CityPair][]Edge
	outgoing map[string][]Edge
	cities   []string
	edges    int
}

// NewGraph builds the pair and outgoing-edge indexes from a list of edges.
// Outgoing lists are sorted so that searches over the graph are deterministic.
func NewGraph(edges []Edge) *Graph {
	g := &Graph{
		byPair:   make(map[CityPair][]Edge),
		outgoing: make(map[string][]Edge),
		edges:    len(edges),
	}

	seen := make(map[string]struct{})
	for _, e := range edges {
		g.byPair[e.Pair()] = append(g.byPair[e.Pair()], e)
		g.outgoing[e.From] = append(g.outgoing[e.From], e)

		for _, c := range []string{e.From, e.To} {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				g.cities = append(g.cities, c)
			}
		}
	}

	for _, list := range g.byPair {
		slices.SortFunc(list, compareEdges)
	}
	for _, list := range g.outgoing {
		slices.SortFunc(list, compareEdges)
	}
	slices.Sort(g.cities)

	return g
}

func compareEdges(a, b Edge) int {
	return cmp.Or(
		cmp.Compare(a.To, b.To),
		cmp.Compare(a.Mode, b.Mode),
		cmp.Compare(a.Price, b.Price),
		cmp.Compare(a.DurationHours, b.DurationHours),
		cmp.Compare(a.DistanceKm, b.DistanceKm),
	)
}

// EdgesBetween returns every edge from -> to. The result may be empty.
func (g *Graph) EdgesBetween(from, to string) []Edge {
	return slices.Clone(g.byPair[CityPair{From: from, To: to}])
}

// OutgoingEdges returns every edge leaving from. It never returns nil.
func (g *Graph) OutgoingEdges(from string) []Edge {
	list := g.outgoing[from]
	if len(list) == 0 {
		return []Edge{}
	}
	return slices.Clone(list)
}

// Cities returns the sorted names of all cities touched by an edge.
func (g *Graph) Cities() []string { return slices.Clone(g.cities) }

func (g *Graph) EdgeCount() int { return g.edges }
