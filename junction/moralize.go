// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package junction

import "github.com/js-arias/bayesnet/network"

// moralGraph is an undirected adjacency set over variable ids.
type moralGraph map[int]map[int]bool

// moralize forms the moral graph of net: every directed edge becomes
// undirected, and every node's parents are pairwise connected ("married
// off").
func moralize(net network.Network) moralGraph {
	n := net.NumVars()
	g := make(moralGraph, n)
	for v := 0; v < n; v++ {
		g[v] = make(map[int]bool)
	}

	connect := func(a, b int) {
		if a == b {
			return
		}
		g[a][b] = true
		g[b][a] = true
	}

	for v := 0; v < n; v++ {
		parents := net.Parents(v)
		for _, p := range parents {
			connect(v, p)
		}
		for i := 0; i < len(parents); i++ {
			for j := i + 1; j < len(parents); j++ {
				connect(parents[i], parents[j])
			}
		}
	}
	return g
}

func (g moralGraph) clone() moralGraph {
	c := make(moralGraph, len(g))
	for v, nbrs := range g {
		cn := make(map[int]bool, len(nbrs))
		for u := range nbrs {
			cn[u] = true
		}
		c[v] = cn
	}
	return c
}
