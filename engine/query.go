// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package engine

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/js-arias/bayesnet/junction"
	"github.com/js-arias/bayesnet/network"
)

// A Distribution is a single variable's posterior, extracted from the
// smallest-scope clique that contains the variable.
type Distribution struct {
	// Var is the variable this distribution is over.
	Var int

	// Values holds the probability of each value, indexed by value.
	// If Degenerate is true these are left unnormalized (all zero),
	// since there is no sum to divide by.
	Values []float64

	// Degenerate reports that the raw posterior summed to zero before
	// normalization: every value this variable's clique still assigns
	// nonzero potential to was also ruled out by the evidence,
	// typically because the evidence itself is self-contradictory or
	// assigns zero probability outcomes as if they were observed.
	Degenerate bool
}

// Entropy returns the Shannon entropy, in nats, of the distribution.
// A Degenerate distribution has no well-defined entropy; Entropy
// returns 0 for it.
func (d Distribution) Entropy() float64 {
	if d.Degenerate {
		return 0
	}
	return stat.Entropy(d.Values)
}

// Posterior extracts the current posterior of q from the smallest-scope
// clique that contains it (see findClique). Call after Collect and
// Distribute (or Query) to get a posterior conditioned on loaded
// evidence. Posterior itself does not propagate: called right after
// Reset, it marginalizes an uncalibrated clique table, which in
// general is not the prior of q. A variable fixed by loaded evidence
// is in no clique's scope, and Posterior returns an error for it.
func (e *Engine) Posterior(q network.Query) (Distribution, error) {
	v := int(q)
	if v < 0 || v >= e.net.NumVars() {
		return Distribution{}, fmt.Errorf("engine: Posterior: variable %d out of range", v)
	}
	n := e.findClique(v)
	if n == nil {
		return Distribution{}, fmt.Errorf("engine: Posterior: no clique in the tree covers variable %d", v)
	}
	marg, err := n.Table().MarginalizeTo([]int{v})
	if err != nil {
		return Distribution{}, fmt.Errorf("engine: Posterior: %v", err)
	}

	sum := marg.Sum()
	degenerate := sum == 0
	if !degenerate {
		marg.Normalize()
	}
	values := make([]float64, marg.Size())
	for i := range values {
		values[i] = marg.At(i)
	}
	return Distribution{Var: v, Values: values, Degenerate: degenerate}, nil
}

// PosteriorAll returns Posterior for every variable not fixed by the
// loaded evidence, keyed by variable. An evidenced variable has been
// reduced out of every clique and has no entry in the map.
func (e *Engine) PosteriorAll() (map[int]Distribution, error) {
	out := make(map[int]Distribution, e.net.NumVars())
	for v := 0; v < e.net.NumVars(); v++ {
		if e.findClique(v) == nil {
			continue
		}
		d, err := e.Posterior(network.Query(v))
		if err != nil {
			return nil, err
		}
		out[v] = d
	}
	return out, nil
}

// Predict returns the most probable value of q, breaking ties toward
// the lowest value, and the probability mass assigned to it.
func (e *Engine) Predict(q network.Query) (int, float64, error) {
	d, err := e.Posterior(q)
	if err != nil {
		return 0, 0, err
	}
	if d.Degenerate {
		return 0, 0, fmt.Errorf("engine: Predict: variable %d has a degenerate posterior", int(q))
	}
	best := 0
	for i, p := range d.Values {
		if p > d.Values[best] {
			best = i
		}
	}
	return best, d.Values[best], nil
}

// findClique returns the smallest-scope clique (never a separator)
// whose scope contains v, or nil if none does. Junction-tree consistency
// makes every covering clique agree on v's marginal, so any of them
// would give the same answer; picking the smallest keeps the
// marginalization MarginalizeTo performs as cheap as possible.
func (e *Engine) findClique(v int) *junction.Node {
	var best *junction.Node
	for _, n := range e.tree.Nodes() {
		if n.IsSeparator() || !n.Table().Has(v) {
			continue
		}
		if best == nil || len(n.Scope()) < len(best.Scope()) {
			best = n
		}
	}
	return best
}
