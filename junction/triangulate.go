// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package junction

import "sort"

// minNeighborsOrder computes an elimination order by repeatedly
// removing the remaining vertex with the fewest neighbors (ties broken
// toward the lowest variable id, for determinism), adding fill-in
// edges among its neighbors as it goes. It returns both the order and
// the candidate clique recorded at each elimination step.
func minNeighborsOrder(g moralGraph) (order []int, candidates [][]int) {
	work := g.clone()

	remaining := make([]int, 0, len(g))
	for v := range g {
		remaining = append(remaining, v)
	}
	sort.Ints(remaining)

	for len(remaining) > 0 {
		best, bestDeg := remaining[0], len(work[remaining[0]])
		for _, v := range remaining[1:] {
			if d := len(work[v]); d < bestDeg {
				best, bestDeg = v, d
			}
		}

		clique, fresh := eliminate(work, best)
		order = append(order, best)
		candidates = append(candidates, clique)
		_ = fresh

		remaining = removeInt(remaining, best)
	}
	return order, candidates
}

// triangulate processes variables in the given elimination order,
// forming the candidate clique {v} ∪ neighbors(v) for each eliminated
// v and filling in missing edges among its neighbors. If order is nil,
// the min-neighbors heuristic picks it.
func triangulate(g moralGraph, order []int) [][]int {
	if order == nil {
		_, candidates := minNeighborsOrder(g)
		return candidates
	}

	work := g.clone()
	candidates := make([][]int, 0, len(order))
	for _, v := range order {
		clique, _ := eliminate(work, v)
		candidates = append(candidates, clique)
	}
	return candidates
}

// eliminate removes v from work, recording its candidate clique
// {v} ∪ neighbors(v) and adding the fill-in edges among those
// neighbors. It returns the candidate clique, sorted for determinism.
func eliminate(work moralGraph, v int) (clique []int, addedEdges int) {
	nbrs := make([]int, 0, len(work[v]))
	for u := range work[v] {
		nbrs = append(nbrs, u)
	}
	sort.Ints(nbrs)

	for i := 0; i < len(nbrs); i++ {
		for j := i + 1; j < len(nbrs); j++ {
			a, b := nbrs[i], nbrs[j]
			if !work[a][b] {
				work[a][b] = true
				work[b][a] = true
				addedEdges++
			}
		}
	}

	for u := range work[v] {
		delete(work[u], v)
	}
	delete(work, v)

	clique = append(clique, v)
	clique = append(clique, nbrs...)
	sort.Ints(clique)
	return clique, addedEdges
}

func removeInt(s []int, v int) []int {
	for i, u := range s {
		if u == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
