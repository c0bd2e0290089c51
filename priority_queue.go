/*
 * Filename: priority_queue.go
 * Path: gfase-maxcut-solver
 *
 * Copyright (c) 2018 Haibao Tang
 */

package gfase

import "container/heap"

// edgeItem is one entry in the weight-ordered edge queue used by
// ForEachEdgeInOrderOfWeight.
type edgeItem struct {
	a, b   int32
	weight int32
	index  int
}

// edgePriorityQueue implements heap.Interface, popping the heaviest edge
// first; ties are broken by canonical edge order (lo, then hi) so that
// iteration is fully deterministic given a fixed edge set.
type edgePriorityQueue []*edgeItem

func (pq edgePriorityQueue) Len() int { return len(pq) }

func (pq edgePriorityQueue) Less(i, j int) bool {
	if pq[i].weight != pq[j].weight {
		return pq[i].weight > pq[j].weight
	}
	if pq[i].a != pq[j].a {
		return pq[i].a < pq[j].a
	}
	return pq[i].b < pq[j].b
}

func (pq edgePriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *edgePriorityQueue) Push(x interface{}) {
	item := x.(*edgeItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *edgePriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	item.index = -1
	*pq = old[:n-1]
	return item
}

// ForEachEdgeInOrderOfWeight visits every stored edge in descending order
// of weight, ties broken by canonical edge order (spec §4.1). The visitor
// must not mutate the graph.
func (g *Graph) ForEachEdgeInOrderOfWeight(f func(a, b int32, weight int32)) {
	pq := make(edgePriorityQueue, 0, len(g.weights))
	for e, w := range g.weights {
		pq = append(pq, &edgeItem{a: e.lo, b: e.hi, weight: w})
	}
	heap.Init(&pq)
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*edgeItem)
		f(item.a, item.b, item.weight)
	}
}
