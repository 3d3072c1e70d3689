package services

import (
	"cmp"
	"container/heap"
	"freight-route-service/internal/domain"
)

type searchNode struct {
	state  SearchState
	g      float64
	h      float64
	parent int // arena index of the predecessor, -1 for the start node
	edge   domain.Edge
}

func (n *searchNode) f() float64 { return n.g + n.h }

// frontier owns every node created by one search in an append-only arena and
// keeps a min-heap of arena indices that are still open.
type frontier struct {
	nodes []searchNode
	open  []int
}

func (q *frontier) Len() int           { return len(q.open) }
func (q *frontier) Less(i, j int) bool { return q.before(q.open[i], q.open[j]) }
func (q *frontier) Swap(i, j int)      { q.open[i], q.open[j] = q.open[j], q.open[i] }
func (q *frontier) Push(x any)         { q.open = append(q.open, x.(int)) }

func (q *frontier) Pop() any {
	n := len(q.open)
	x := q.open[n-1]
	q.open = q.open[:n-1]
	return x
}

func (q *frontier) add(n searchNode) int {
	q.nodes = append(q.nodes, n)
	idx := len(q.nodes) - 1
	heap.Push(q, idx)
	return idx
}

func (q *frontier) next() int { return heap.Pop(q).(int) }

// before orders nodes by f, then h, then city name, then the rest of the state,
// then creation order. The order is total so equal-cost searches always pop
// nodes in the same sequence.
func (q *frontier) before(a, b int) bool {
	na, nb := &q.nodes[a], &q.nodes[b]
	return cmp.Or(
		cmp.Compare(na.f(), nb.f()),
		cmp.Compare(na.h, nb.h),
		cmp.Compare(na.state.City, nb.state.City),
		cmp.Compare(na.state.Legs, nb.state.Legs),
		cmp.Compare(na.state.PrevMode, nb.state.PrevMode),
		cmp.Compare(na.state.CurMode, nb.state.CurMode),
		cmp.Compare(a, b),
	) < 0
}

// path walks parent indices back from idx and returns the edges in travel order.
func (q *frontier) path(idx int) []domain.Edge {
	var edges []domain.Edge
	for i := idx; q.nodes[i].parent >= 0; i = q.nodes[i].parent {
		edges = append(edges, q.nodes[i].edge)
	}
	for l, r := 0, len(edges)-1; l < r; l, r = l+1, r-1 {
		edges[l], edges[r] = edges[r], edges[l]
	}
	return edges
}
