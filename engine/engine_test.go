// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package engine_test

import (
	"math"
	"testing"

	"github.com/js-arias/bayesnet/engine"
	"github.com/js-arias/bayesnet/junction"
	"github.com/js-arias/bayesnet/network"
)

type testNet struct {
	dims    []int
	parents [][]int
	cpt     [][]float64
}

func (n *testNet) NumVars() int         { return len(n.dims) }
func (n *testNet) DomainSize(v int) int { return n.dims[v] }
func (n *testNet) Parents(v int) []int  { return n.parents[v] }
func (n *testNet) CPT(v int) []float64  { return n.cpt[v] }

func singleNet() *testNet {
	return &testNet{
		dims:    []int{2},
		parents: [][]int{nil},
		cpt:     [][]float64{{0.3, 0.7}},
	}
}

func chainNet() *testNet {
	return &testNet{
		dims:    []int{2, 2, 2},
		parents: [][]int{nil, {0}, {1}},
		cpt: [][]float64{
			{0.6, 0.4},
			{0.9, 0.1, 0.2, 0.8},
			{0.7, 0.3, 0.1, 0.9},
		},
	}
}

func xorNet() *testNet {
	return &testNet{
		dims:    []int{2, 2, 2},
		parents: [][]int{nil, nil, {0, 1}},
		cpt: [][]float64{
			{0.5, 0.5},
			{0.5, 0.5},
			{1, 0, 0, 1, 0, 1, 1, 0},
		},
	}
}

func deterministicA() *testNet {
	return &testNet{
		dims:    []int{2, 2},
		parents: [][]int{nil, {0}},
		cpt: [][]float64{
			{1, 0},
			{0.5, 0.5, 0.3, 0.7},
		},
	}
}

func newEngine(t *testing.T, net network.Network) *engine.Engine {
	t.Helper()
	e, err := engine.Compile(net, junction.DefaultOptions(), engine.DefaultConfig())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return e
}

func almostEqual(t *testing.T, got, want []float64, msg string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length %d, want %d", msg, len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("%s[%d] = %v, want %v", msg, i, got[i], want[i])
		}
	}
}

func TestSingleNodePosteriorIsThePrior(t *testing.T) {
	e := newEngine(t, singleNet())
	d, dropped, err := e.Query(nil, network.Query(0))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped evidence: %v", dropped)
	}
	almostEqual(t, d.Values, []float64{0.3, 0.7}, "P(A)")
}

func TestChainNoEvidence(t *testing.T) {
	e := newEngine(t, chainNet())
	d, _, err := e.Query(nil, network.Query(2))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	// P(C=0) = P(B=0)*0.7 + P(B=1)*0.1, with P(B=0)=0.62, P(B=1)=0.38.
	almostEqual(t, d.Values, []float64{0.472, 0.528}, "P(C)")
}

func TestChainWithEvidence(t *testing.T) {
	e := newEngine(t, chainNet())
	d, _, err := e.Query(network.Evidence{0: 1}, network.Query(2))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	// P(C|A=1) = 0.2*[0.7,0.3] + 0.8*[0.1,0.9] = [0.22, 0.78].
	almostEqual(t, d.Values, []float64{0.22, 0.78}, "P(C|A=1)")
}

func TestXORCollider(t *testing.T) {
	e := newEngine(t, xorNet())

	d, _, err := e.Query(network.Evidence{0: 0}, network.Query(2))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	// with A=0, C = B, so P(C) must equal the prior of B.
	almostEqual(t, d.Values, []float64{0.5, 0.5}, "P(C|A=0)")

	d2, _, err := e.Query(network.Evidence{0: 1, 1: 1}, network.Query(2))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	// A=1, B=1 => C=0 deterministically.
	almostEqual(t, d2.Values, []float64{1, 0}, "P(C|A=1,B=1)")
}

// TestXORDiagnosticDirection queries a parent of the collider instead of
// the collider itself: evidence on C alone leaves A and B symmetric
// (explaining away has not kicked in yet), but evidence on C and the
// other parent pins the queried parent deterministically.
func TestXORDiagnosticDirection(t *testing.T) {
	e := newEngine(t, xorNet())

	d, _, err := e.Query(network.Evidence{2: 0}, network.Query(0))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	// C=0 means A=B, and A, B are independent uniform priors, so A stays
	// at its prior.
	almostEqual(t, d.Values, []float64{0.5, 0.5}, "P(A|C=0)")

	d2, _, err := e.Query(network.Evidence{2: 0, 1: 1}, network.Query(0))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	// C=0, B=1 => A=1 deterministically (explaining away).
	almostEqual(t, d2.Values, []float64{0, 1}, "P(A|C=0,B=1)")
}

// TestXORFullEvidenceIsDegenerate evidences every variable of the
// collider with a combination the CPT assigns zero joint probability to
// (A=0, B=0 forces C=0, not C=1): the whole tree's potential collapses
// to zero. With every variable evidenced there is no clique left to
// query, so the degeneracy is checked directly on the tree's tables
// rather than through Posterior.
func TestXORFullEvidenceIsDegenerate(t *testing.T) {
	e := newEngine(t, xorNet())
	e.Reset()
	dropped, err := e.LoadEvidence(network.Evidence{0: 0, 1: 0, 2: 1})
	if err != nil {
		t.Fatalf("LoadEvidence: %v", err)
	}
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped evidence: %v", dropped)
	}

	var sum float64
	for _, n := range e.Tree().Nodes() {
		sum += n.Table().Sum()
	}
	if sum != 0 {
		t.Fatalf("joint potential after contradictory evidence = %v, want 0", sum)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	e := newEngine(t, chainNet())

	var first []float64
	for i := 0; i < 3; i++ {
		d, _, err := e.Query(network.Evidence{0: 1}, network.Query(2))
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if i == 0 {
			first = d.Values
			continue
		}
		almostEqual(t, d.Values, first, "repeated Query after Reset")
	}
}

func TestDroppedEvidence(t *testing.T) {
	e := newEngine(t, chainNet())
	_, dropped, err := e.Query(network.Evidence{0: 1, 5: 0, 1: 9}, network.Query(2))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(dropped) != 2 {
		t.Fatalf("got %d dropped evidence entries, want 2: %v", len(dropped), dropped)
	}
}

func TestContradictoryEvidenceIsDegenerate(t *testing.T) {
	e := newEngine(t, deterministicA())
	d, _, err := e.Query(network.Evidence{0: 1}, network.Query(1))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !d.Degenerate {
		t.Fatalf("expected a degenerate posterior for impossible evidence A=1")
	}
	for i, p := range d.Values {
		if p != 0 {
			t.Fatalf("degenerate posterior[%d] = %v, want 0", i, p)
		}
	}
	if d.Entropy() != 0 {
		t.Fatalf("degenerate posterior entropy = %v, want 0", d.Entropy())
	}
}

func TestPosteriorAllCoversEveryVariable(t *testing.T) {
	e := newEngine(t, chainNet())
	e.Reset()
	all, err := e.PosteriorAll()
	if err != nil {
		t.Fatalf("PosteriorAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d posteriors, want 3", len(all))
	}
}

func TestPredictPicksTheMode(t *testing.T) {
	e := newEngine(t, chainNet())
	if _, _, err := e.Query(nil, network.Query(2)); err != nil {
		t.Fatalf("Query: %v", err)
	}
	v, p, err := e.Predict(network.Query(2))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if v != 1 || math.Abs(p-0.528) > 1e-9 {
		t.Fatalf("Predict = (%d, %v), want (1, 0.528)", v, p)
	}
}
