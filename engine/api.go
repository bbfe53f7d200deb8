// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"fmt"

	"github.com/js-arias/bayesnet/junction"
	"github.com/js-arias/bayesnet/network"
)

// ErrDegenerate is returned by the package-level Predict when the
// evidence rules out every value of the query variable.
var ErrDegenerate = errors.New("engine: degenerate posterior")

// Posterior compiles net with the default options, conditions it on ev,
// and returns the posterior of q. It is the package-level entry point
// for a one-off query; a caller running many queries against the same
// network should Compile once and reuse the resulting Engine instead.
func Posterior(net network.Network, ev network.Evidence, q network.Query) (Distribution, error) {
	e, err := Compile(net, junction.DefaultOptions(), DefaultConfig())
	if err != nil {
		return Distribution{}, err
	}
	d, _, err := e.Query(ev, q)
	return d, err
}

// Predict compiles net with the default options, conditions it on ev,
// and returns the most probable value of q. It returns ErrDegenerate if
// the evidence rules out every value.
func Predict(net network.Network, ev network.Evidence, q network.Query) (int, error) {
	d, err := Posterior(net, ev, q)
	if err != nil {
		return -1, err
	}
	if d.Degenerate {
		return -1, fmt.Errorf("engine: Predict: variable %d: %w", int(q), ErrDegenerate)
	}
	best := 0
	for i, p := range d.Values {
		if p > d.Values[best] {
			best = i
		}
	}
	return best, nil
}
