// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package engine implements level-synchronous collect/distribute belief
// propagation over a compiled junction tree: loading evidence,
// propagating it through the tree one breadth-first level at a time,
// and extracting posteriors and predictions.
//
// Every level's expensive step — the marginalize of every node of that
// level down to its separator — is flattened into a single
// potential.RunBatch call, so one level runs as one bulk-synchronous
// parallel-for rather than one goroutine per node; the division,
// extension and multiplication that install a level's result run
// serially right after, in the same pattern package potential uses internally for a
// single table operation's pre/main/post decomposition.
package engine

import (
	"fmt"

	"github.com/js-arias/bayesnet/junction"
	"github.com/js-arias/bayesnet/network"
)

// Config controls evidence handling and the propagation schedule.
type Config struct {
	// DropInvalidEvidence, if true, collects out-of-range evidence
	// pairs into the dropped list returned by LoadEvidence instead of
	// failing the call.
	DropInvalidEvidence bool

	// NormalizeOnDistribute renormalizes every separator and clique
	// touched by a Distribute level. Collect always renormalizes every
	// level, to keep a long chain's potentials from underflowing
	// before the root is even reached; Distribute does not need to for
	// correctness (the ratios it multiplies in are already bounded by
	// Collect's renormalized separators), so it is opt-in.
	NormalizeOnDistribute bool

	// Workers caps the goroutines a single level's batch runs with. 0
	// means potential.RunBatch picks runtime.NumCPU().
	Workers int
}

// DefaultConfig returns the default engine configuration: invalid
// evidence is dropped rather than rejected, and Distribute does not
// renormalize.
func DefaultConfig() Config {
	return Config{DropInvalidEvidence: true}
}

// An Engine is a compiled junction tree ready for repeated queries.
type Engine struct {
	tree *junction.Tree
	net  network.Network
	cfg  Config
}

// Compile builds a junction tree from net and organizes it, returning
// an Engine ready for Reset, LoadEvidence, Collect and Distribute (or
// Query, which runs all four).
func Compile(net network.Network, opts junction.Options, cfg Config) (*Engine, error) {
	tree, err := junction.Compile(net, opts)
	if err != nil {
		return nil, fmt.Errorf("engine: Compile: %v", err)
	}
	if err := tree.Organize(); err != nil {
		return nil, fmt.Errorf("engine: Compile: %v", err)
	}
	return &Engine{tree: tree, net: net, cfg: cfg}, nil
}

// Tree returns the underlying compiled junction tree.
func (e *Engine) Tree() *junction.Tree { return e.tree }

// Reset restores every node's table to its post-compilation,
// pre-evidence state, discarding whatever evidence and messages a
// prior query installed.
func (e *Engine) Reset() { e.tree.Reset() }

// Query resets the engine, loads ev, propagates it through the whole
// tree, and returns the posterior of q. It is a convenience wrapper
// around Reset, LoadEvidence, Collect and Distribute for the common
// case of one evidence set answering one query.
func (e *Engine) Query(ev network.Evidence, q network.Query) (Distribution, []network.DroppedEvidence, error) {
	e.Reset()
	dropped, err := e.LoadEvidence(ev)
	if err != nil {
		return Distribution{}, nil, err
	}
	if err := e.Collect(); err != nil {
		return Distribution{}, dropped, err
	}
	if err := e.Distribute(); err != nil {
		return Distribution{}, dropped, err
	}
	d, err := e.Posterior(q)
	return d, dropped, err
}

// workers returns the configured worker cap, or 0 (meaning
// potential.RunBatch decides) if none was set.
func (e *Engine) workers() int {
	if e.cfg.Workers > 0 {
		return e.cfg.Workers
	}
	return 0
}
