// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package engine

import (
	"fmt"

	"github.com/js-arias/bayesnet/network"
)

// LoadEvidence reduces every node's table over every (variable, value)
// pair in ev, then renormalizes every node once. An out-of-range
// variable or out-of-domain value is either rejected outright, or (if
// Config.DropInvalidEvidence is set) recorded in the returned slice and
// skipped.
//
// Evidence is applied to every node whose scope contains the variable,
// clique or separator alike, rather than only to the clique the
// variable was originally assigned to during compilation: a variable
// can appear in several cliques and both of their separators, and
// every one of those tables must shrink the same way before
// propagation starts, or the running-intersection property the tree
// relies on no longer holds between them.
func (e *Engine) LoadEvidence(ev network.Evidence) ([]network.DroppedEvidence, error) {
	var dropped []network.DroppedEvidence
	applied := make(map[int]int, len(ev))
	for v, k := range ev {
		if v < 0 || v >= e.net.NumVars() {
			d := network.DroppedEvidence{Var: v, Value: k, Reason: "variable index out of range"}
			if !e.cfg.DropInvalidEvidence {
				return nil, fmt.Errorf("engine: LoadEvidence: %v", d)
			}
			dropped = append(dropped, d)
			continue
		}
		if k < 0 || k >= e.net.DomainSize(v) {
			d := network.DroppedEvidence{Var: v, Value: k, Reason: "value out of domain"}
			if !e.cfg.DropInvalidEvidence {
				return nil, fmt.Errorf("engine: LoadEvidence: %v", d)
			}
			dropped = append(dropped, d)
			continue
		}
		applied[v] = k
	}

	for _, n := range e.tree.Nodes() {
		for v, k := range applied {
			if err := n.ReduceEvidence(v, k); err != nil {
				return nil, fmt.Errorf("engine: LoadEvidence: node %d: %v", n.ID(), err)
			}
		}
	}
	for _, n := range e.tree.Nodes() {
		n.Table().Normalize()
	}
	return dropped, nil
}
