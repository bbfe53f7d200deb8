// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package junction

import "github.com/js-arias/bayesnet/potential"

// A Tree is a compiled junction tree: a set of Nodes (cliques and
// separators) addressed by dense integer id, alternating clique and
// separator along every path, satisfying the running-intersection
// property. A freshly Compiled Tree is unrooted and unlayered; call
// Organize once to root it, compute its levels, reorganize every
// clique's trailing variables to match its upstream separator, and take
// the snapshot that Reset restores.
type Tree struct {
	nodes    []*Node
	root     int
	levels   [][]int
	snapshot []*potential.Table
}

// Nodes returns every node of the tree, indexed by id.
func (t *Tree) Nodes() []*Node { return t.nodes }

// Node returns the node with the given id.
func (t *Tree) Node(id int) *Node { return t.nodes[id] }

// Root returns the id of the tree's root clique, or -1 if Organize has
// not been called yet.
func (t *Tree) Root() int { return t.root }

// Levels returns the breadth-first layering computed by Organize: even
// indices are clique layers, odd indices are separator layers.
func (t *Tree) Levels() [][]int { return t.levels }

// Snapshot returns the parallel table array, indexed by node id,
// captured right after Organize ran. Reset restores it.
func (t *Tree) Snapshot() []*potential.Table { return t.snapshot }

// Reset restores every node's table (and, for separators, clears
// OldTable) to the state captured by the last Organize call, and
// restores every node's scope to the variables of that table, undoing
// the shrinking ReduceEvidence does. The tree's nodes and topology are
// never mutated by a query.
func (t *Tree) Reset() {
	for _, n := range t.nodes {
		n.table = t.snapshot[n.id].Clone()
		n.scope = n.table.Vars()
		n.oldTable = nil
	}
}
