// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package junction_test

import (
	"testing"

	"github.com/js-arias/bayesnet/junction"
)

// testNet is a minimal network.Network for compile tests.
type testNet struct {
	dims    []int
	parents [][]int
	cpt     [][]float64
}

func (n *testNet) NumVars() int          { return len(n.dims) }
func (n *testNet) DomainSize(v int) int  { return n.dims[v] }
func (n *testNet) Parents(v int) []int   { return n.parents[v] }
func (n *testNet) CPT(v int) []float64   { return n.cpt[v] }

// chainNet builds A -> B -> C, each a Bernoulli variable.
func chainNet() *testNet {
	return &testNet{
		dims:    []int{2, 2, 2},
		parents: [][]int{nil, {0}, {1}},
		cpt: [][]float64{
			{0.6, 0.4},                     // P(A)
			{0.9, 0.1, 0.2, 0.8},           // P(B|A)
			{0.7, 0.3, 0.1, 0.9},           // P(C|B)
		},
	}
}

// xorNet builds the v-structure A, B -> C, with C = A XOR B deterministically.
func xorNet() *testNet {
	return &testNet{
		dims:    []int{2, 2, 2},
		parents: [][]int{nil, nil, {0, 1}},
		cpt: [][]float64{
			{0.5, 0.5},
			{0.5, 0.5},
			// P(C|A=0,B=0), P(C|A=0,B=1), P(C|A=1,B=0), P(C|A=1,B=1)
			{1, 0, 0, 1, 0, 1, 1, 0},
		},
	}
}

func TestCompileChainHasOneSeparator(t *testing.T) {
	tree, err := junction.Compile(chainNet(), junction.DefaultOptions())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var cliques, seps int
	for _, n := range tree.Nodes() {
		if n.IsSeparator() {
			seps++
		} else {
			cliques++
		}
	}
	if cliques != 2 || seps != 1 {
		t.Fatalf("got %d cliques and %d separators, want 2 and 1", cliques, seps)
	}

	for _, n := range tree.Nodes() {
		if n.IsSeparator() && len(n.Neighbors()) != 2 {
			t.Fatalf("separator %d has %d neighbors, want 2", n.ID(), len(n.Neighbors()))
		}
	}
}

func TestCompileXORIsSingleClique(t *testing.T) {
	tree, err := junction.Compile(xorNet(), junction.DefaultOptions())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(tree.Nodes()) != 1 {
		t.Fatalf("got %d nodes, want 1 (the collider forces a single clique)", len(tree.Nodes()))
	}
	if tree.Nodes()[0].IsSeparator() {
		t.Fatalf("the sole node must be a clique")
	}
}

func TestRunningIntersection(t *testing.T) {
	tree, err := junction.Compile(chainNet(), junction.DefaultOptions())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, s := range tree.Nodes() {
		if !s.IsSeparator() {
			continue
		}
		if len(s.Neighbors()) != 2 {
			t.Fatalf("separator %d: want 2 neighbors, got %d", s.ID(), len(s.Neighbors()))
		}
		a := tree.Node(s.Neighbors()[0])
		b := tree.Node(s.Neighbors()[1])
		for _, v := range s.Scope() {
			if !a.Table().Has(v) || !b.Table().Has(v) {
				t.Fatalf("separator %d variable %d missing from an adjacent clique", s.ID(), v)
			}
		}
	}
}

func TestOrganizeReorganizesCliquesToSeparatorScope(t *testing.T) {
	tree, err := junction.Compile(chainNet(), junction.DefaultOptions())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := tree.Organize(); err != nil {
		t.Fatalf("Organize: %v", err)
	}

	levels := tree.Levels()
	if len(levels) != 3 {
		t.Fatalf("got %d levels, want 3 (clique, separator, clique)", len(levels))
	}
	if len(levels[0]) != 1 || len(levels[1]) != 1 || len(levels[2]) != 1 {
		t.Fatalf("unexpected level shape: %v", levels)
	}

	for _, id := range levels[2] {
		c := tree.Node(id)
		s := tree.Node(c.Upstream())
		vars := c.Table().Vars()
		sepVars := s.Table().Vars()
		tail := vars[len(vars)-len(sepVars):]
		for i, v := range sepVars {
			if tail[i] != v {
				t.Fatalf("clique %d trailing vars %v do not match separator %d scope %v", c.ID(), tail, s.ID(), sepVars)
			}
		}
	}

	if tree.Snapshot() == nil {
		t.Fatalf("Organize did not take a snapshot")
	}
}

func TestCompileRejectsCycle(t *testing.T) {
	n := &testNet{
		dims:    []int{2, 2},
		parents: [][]int{{1}, {0}},
		cpt: [][]float64{
			{0.5, 0.5, 0.5, 0.5},
			{0.5, 0.5, 0.5, 0.5},
		},
	}
	if _, err := junction.Compile(n, junction.DefaultOptions()); err == nil {
		t.Fatalf("Compile accepted a cyclic network")
	}
}
