// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package junction implements the junction-tree structure: the clique
// and separator node kinds, compilation of a discrete Bayesian network
// into a tree of cliques (moralization, triangulation, clique-graph
// construction, maximum-weight spanning tree, potential assignment),
// and the tree organizer that roots, layers and reorganizes the
// compiled tree so every later query is a contiguous marginalization.
//
// The clique/separator graph is naturally cyclic in references — every
// separator points at its two cliques, every clique points back at its
// separators — so nodes are addressed by dense integer id into a
// Tree's node slice rather than by pointer, the way a phylogenetic tree
// addresses nodes by id rather than by parent/child pointers.
package junction

import "github.com/js-arias/bayesnet/potential"

// A Node is a vertex of the junction tree: either a clique or a
// separator. Separators are structurally a clique with IsSeparator set
// and an OldTable retained from the previous message, used to form the
// division ratio on the next visit.
type Node struct {
	id          int
	scope       []int
	table       *potential.Table
	isSeparator bool
	oldTable    *potential.Table

	neighbors  []int
	upstream   int // id of the upstream separator/clique, -1 if root or unrooted
	downstream []int
}

// ID returns the node's dense integer id.
func (n *Node) ID() int { return n.id }

// Scope returns the node's variable list. The returned slice must not
// be mutated.
func (n *Node) Scope() []int { return n.scope }

// Table returns the node's current potential table.
func (n *Node) Table() *potential.Table { return n.table }

// OldTable returns the separator's table as of its previous message, or
// nil for a clique or a separator that has not yet received a message.
func (n *Node) OldTable() *potential.Table { return n.oldTable }

// IsSeparator reports whether n is a separator rather than a clique.
func (n *Node) IsSeparator() bool { return n.isSeparator }

// Neighbors returns the ids of every adjacent node.
func (n *Node) Neighbors() []int { return n.neighbors }

// Upstream returns the id of n's parent in the rooted tree, or -1 if n
// is the root or the tree has not been organized yet.
func (n *Node) Upstream() int { return n.upstream }

// Downstream returns the ids of n's children in the rooted tree.
func (n *Node) Downstream() []int { return n.downstream }

// ReduceEvidence fixes variable v at value k in n's table, in place, if
// v is in n's scope; it is a no-op otherwise. Unlike UpdateMessage this
// also shrinks n's recorded scope, since Reduce drops v from the
// table's variable list.
func (n *Node) ReduceEvidence(v, k int) error {
	if !n.table.Has(v) {
		return nil
	}
	nt, err := n.table.Reduce(v, k)
	if err != nil {
		return err
	}
	n.table = nt
	n.scope = nt.Vars()
	return nil
}

// UpdateMessage installs a newly computed table as n's current table.
// For a separator, the previous table is first saved as OldTable, so
// that the next division step can use it; for a clique, the new table
// is multiplied into the current one.
func (n *Node) UpdateMessage(t *potential.Table) error {
	if n.isSeparator {
		n.oldTable = n.table
		n.table = t
		return nil
	}
	nt, err := n.table.Multiply(t)
	if err != nil {
		return err
	}
	n.table = nt
	return nil
}
