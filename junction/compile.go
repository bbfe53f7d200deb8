// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package junction

import (
	"errors"
	"fmt"

	"github.com/js-arias/bayesnet/network"
	"github.com/js-arias/bayesnet/potential"
)

// ErrUnsupportedNetwork is returned, wrapped with a reason, when a
// network cannot be compiled: it has a non-discrete domain, a cycle, or
// variable indices that are not densely packed. Use errors.Is to test
// for it; this and ErrDegenerate in package engine are the two places
// bayesnet wraps with %w instead of the plain %v used everywhere else,
// because the caller needs to tell these failure kinds apart from an
// ordinary error.
var ErrUnsupportedNetwork = errors.New("junction: unsupported network")

// Options configures compilation.
type Options struct {
	// ElimOrder, if non-nil, fixes the variable elimination order used
	// during triangulation. If nil, a min-neighbors heuristic picks
	// one.
	ElimOrder []int

	// ElimRedundant discards a candidate clique whose scope is a
	// subset of another candidate's.
	ElimRedundant bool
}

// DefaultOptions returns the default compilation options: a
// min-neighbors elimination order, with redundant-clique elimination
// enabled.
func DefaultOptions() Options {
	return Options{ElimRedundant: true}
}

// Compile builds a junction tree from net: moralization, triangulation
// with the chosen elimination order, clique identification via a
// maximum-weight spanning tree over candidate separators, and
// assignment of every variable's CPT to exactly one clique whose scope
// covers it.
func Compile(net network.Network, opts Options) (*Tree, error) {
	if err := validate(net); err != nil {
		return nil, err
	}

	moral := moralize(net)
	candidates := triangulate(moral, opts.ElimOrder)
	if opts.ElimRedundant {
		candidates = pruneRedundant(candidates)
	}

	nodes := make([]*Node, 0, len(candidates)*2)
	dims := dimsFunc(net)
	for i, scope := range candidates {
		nodes = append(nodes, &Node{
			id:       i,
			scope:    scope,
			table:    potential.NewOnes(scope, dimsOf(scope, dims)),
			upstream: -1,
		})
	}

	edges := candidateSeparators(candidates)
	mst := maximumSpanningTree(len(candidates), edges)
	for _, e := range mst {
		sid := len(nodes)
		sep := &Node{
			id:          sid,
			scope:       e.scope,
			isSeparator: true,
			table:       potential.NewOnes(e.scope, dimsOf(e.scope, dims)),
			upstream:    -1,
			neighbors:   []int{e.a, e.b},
		}
		nodes = append(nodes, sep)
		nodes[e.a].neighbors = append(nodes[e.a].neighbors, sid)
		nodes[e.b].neighbors = append(nodes[e.b].neighbors, sid)
	}

	if err := assignPotentials(net, nodes[:len(candidates)], dims); err != nil {
		return nil, err
	}

	t := &Tree{nodes: nodes, root: -1}
	return t, nil
}

// assignPotentials multiplies every variable's CPT into exactly one
// clique whose scope covers {v} ∪ parents(v).
func assignPotentials(net network.Network, cliques []*Node, dims func(int) int) error {
	for v := 0; v < net.NumVars(); v++ {
		parents := net.Parents(v)
		cpt, err := potential.NewFromCPT(v, parents, dims, net.CPT(v))
		if err != nil {
			return err
		}

		c := findCoveringClique(cliques, v, parents)
		if c == nil {
			panic(fmt.Sprintf("junction: no clique covers variable %d and its parents %v: malformed network or compiler bug", v, parents))
		}

		ext, err := cpt.Extend(c.scope, dimsOf(c.scope, dims))
		if err != nil {
			return fmt.Errorf("junction: assigning variable %d to clique %d: %v", v, c.id, err)
		}
		nt, err := c.table.Multiply(ext)
		if err != nil {
			return fmt.Errorf("junction: assigning variable %d to clique %d: %v", v, c.id, err)
		}
		c.table = nt
	}
	return nil
}

func findCoveringClique(cliques []*Node, v int, parents []int) *Node {
	for _, c := range cliques {
		if coversAll(c.scope, v, parents) {
			return c
		}
	}
	return nil
}

func coversAll(scope []int, v int, parents []int) bool {
	set := make(map[int]bool, len(scope))
	for _, s := range scope {
		set[s] = true
	}
	if !set[v] {
		return false
	}
	for _, p := range parents {
		if !set[p] {
			return false
		}
	}
	return true
}

func dimsFunc(net network.Network) func(int) int {
	return func(v int) int { return net.DomainSize(v) }
}

func dimsOf(scope []int, dims func(int) int) []int {
	d := make([]int, len(scope))
	for i, v := range scope {
		d[i] = dims(v)
	}
	return d
}

// validate checks that net is a discrete, acyclic, densely-indexed
// network. Anything else is an unsupported network, fatal at compile
// time.
func validate(net network.Network) error {
	n := net.NumVars()
	if n <= 0 {
		return fmt.Errorf("%w: network has no variables", ErrUnsupportedNetwork)
	}
	for v := 0; v < n; v++ {
		if d := net.DomainSize(v); d < 1 {
			return fmt.Errorf("%w: variable %d has non-discrete domain size %d", ErrUnsupportedNetwork, v, d)
		}
		for _, p := range net.Parents(v) {
			if p < 0 || p >= n {
				return fmt.Errorf("%w: variable %d has out-of-range parent %d: variables are not densely indexed", ErrUnsupportedNetwork, v, p)
			}
		}
	}
	if cycle := findCycle(net); cycle != nil {
		return fmt.Errorf("%w: cycle through variables %v", ErrUnsupportedNetwork, cycle)
	}
	return nil
}

// findCycle returns the variables of a cycle in net's parent graph, or
// nil if net is acyclic, using the classic white/gray/black DFS coloring.
func findCycle(net network.Network) []int {
	const (
		white = iota
		gray
		black
	)
	n := net.NumVars()
	color := make([]int, n)
	var path []int
	var cycle []int

	var visit func(v int) bool
	visit = func(v int) bool {
		color[v] = gray
		path = append(path, v)
		for _, p := range net.Parents(v) {
			switch color[p] {
			case gray:
				cycle = append([]int{p}, path[indexOf(path, p):]...)
				return true
			case white:
				if visit(p) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		color[v] = black
		return false
	}

	for v := 0; v < n; v++ {
		if color[v] == white {
			if visit(v) {
				return cycle
			}
		}
	}
	return nil
}

func indexOf(s []int, v int) int {
	for i, u := range s {
		if u == v {
			return i
		}
	}
	return 0
}
