// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package junction

import (
	"fmt"

	"github.com/js-arias/bayesnet/potential"
)

// Organize roots the freshly compiled tree at an arbitrary clique (the
// lowest-id clique), performs a breadth-first layering recording each
// non-root node's unique upstream neighbor and ordered downstream
// children, reorganizes every non-root clique's potential table so its
// trailing variables exactly equal its upstream separator's variables,
// and takes the snapshot Reset later restores.
//
// The breadth-first walk below replaces the recursive
// collect-then-build-child walk a phylogenetic tree's constructor uses
// (copySource in package pruning): a junction tree organizes its levels
// once, iteratively, rather than recursing per node, so that message
// passing can later process a whole level as one flattened batch
// instead of one stack frame per node.
func (t *Tree) Organize() error {
	root := -1
	for _, n := range t.nodes {
		if !n.isSeparator {
			root = n.id
			break
		}
	}
	if root < 0 {
		return fmt.Errorf("junction: Organize: tree has no clique to root at")
	}
	t.root = root

	visited := make([]bool, len(t.nodes))
	visited[root] = true
	levels := [][]int{{root}}
	cur := levels[0]

	for len(cur) > 0 {
		var next []int
		for _, id := range cur {
			n := t.nodes[id]
			for _, nb := range n.neighbors {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				t.nodes[nb].upstream = id
				n.downstream = append(n.downstream, nb)
				next = append(next, nb)
			}
		}
		if len(next) == 0 {
			break
		}
		levels = append(levels, next)
		cur = next
	}
	t.levels = levels

	for L := 2; L < len(levels); L += 2 {
		for _, id := range levels[L] {
			c := t.nodes[id]
			s := t.nodes[c.upstream]
			nt, err := c.table.Reorganize(s.scope)
			if err != nil {
				return fmt.Errorf("junction: Organize: reorganizing clique %d against separator %d: %v", c.id, s.id, err)
			}
			c.table = nt
		}
	}

	t.snapshot = make([]*potential.Table, len(t.nodes))
	for _, n := range t.nodes {
		t.snapshot[n.id] = n.table.Clone()
	}
	return nil
}
