// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package junction

import "sort"

// pruneRedundant discards every candidate clique whose scope is a
// subset of another candidate's scope.
func pruneRedundant(candidates [][]int) [][]int {
	sets := make([]map[int]bool, len(candidates))
	for i, c := range candidates {
		s := make(map[int]bool, len(c))
		for _, v := range c {
			s[v] = true
		}
		sets[i] = s
	}

	keep := make([]bool, len(candidates))
	for i := range candidates {
		keep[i] = true
	}
	for i, si := range sets {
		if !keep[i] {
			continue
		}
		for j, sj := range sets {
			if i == j || !keep[j] {
				continue
			}
			if isSubset(si, sj) && (len(si) < len(sj) || i > j) {
				keep[i] = false
				break
			}
		}
	}

	out := make([][]int, 0, len(candidates))
	for i, c := range candidates {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}

func isSubset(a, b map[int]bool) bool {
	for v := range a {
		if !b[v] {
			return false
		}
	}
	return true
}

// cliqueEdge is a candidate separator between two cliques, identified
// by their index in the clique slice.
type cliqueEdge struct {
	a, b      int
	scope     []int
	weight    int
}

// candidateSeparators builds, for every pair of cliques with a
// non-empty scope intersection, a candidate separator carrying that
// intersection, weighted by its size.
func candidateSeparators(cliques [][]int) []cliqueEdge {
	sets := make([]map[int]bool, len(cliques))
	for i, c := range cliques {
		s := make(map[int]bool, len(c))
		for _, v := range c {
			s[v] = true
		}
		sets[i] = s
	}

	var edges []cliqueEdge
	for i := 0; i < len(cliques); i++ {
		for j := i + 1; j < len(cliques); j++ {
			var inter []int
			for v := range sets[i] {
				if sets[j][v] {
					inter = append(inter, v)
				}
			}
			if len(inter) == 0 {
				continue
			}
			sort.Ints(inter)
			edges = append(edges, cliqueEdge{a: i, b: j, scope: inter, weight: len(inter)})
		}
	}
	return edges
}

// maximumSpanningTree selects, from the candidate separators, the
// edges of a maximum-weight spanning tree over the clique graph, using
// a Kruskal union-find pass over edges sorted by descending weight —
// the same union-find structure the pack's graph library uses for its
// minimum spanning tree, adapted to maximize rather than minimize.
func maximumSpanningTree(numCliques int, edges []cliqueEdge) []cliqueEdge {
	sorted := append([]cliqueEdge(nil), edges...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].weight != sorted[j].weight {
			return sorted[i].weight > sorted[j].weight
		}
		if sorted[i].a != sorted[j].a {
			return sorted[i].a < sorted[j].a
		}
		return sorted[i].b < sorted[j].b
	})

	parent := make([]int, numCliques)
	rank := make([]int, numCliques)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) bool {
		ra, rb := find(a), find(b)
		if ra == rb {
			return false
		}
		if rank[ra] < rank[rb] {
			ra, rb = rb, ra
		}
		parent[rb] = ra
		if rank[ra] == rank[rb] {
			rank[ra]++
		}
		return true
	}

	mst := make([]cliqueEdge, 0, numCliques-1)
	for _, e := range sorted {
		if len(mst) == numCliques-1 {
			break
		}
		if union(e.a, e.b) {
			mst = append(mst, e)
		}
	}
	return mst
}
