// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package engine

import (
	"fmt"

	"github.com/js-arias/bayesnet/potential"
)

// Collect runs the upward (leaf-to-root) half of belief propagation:
// processed one breadth-first clique level at a time, from the deepest
// level to the root, each clique marginalizes its own table down to
// its upstream separator's scope, the separator divides that against
// its previous message to form a ratio, and the ratio (extended to the
// parent's scope) is multiplied into the parent clique. Every level's
// marginalize step across every clique in that level is flattened into
// one potential.RunBatch call; the divide and multiply that follow are
// cheap elementwise work and run serially.
func (e *Engine) Collect() error {
	levels := e.tree.Levels()
	for l := len(levels) - 1; l >= 2; l -= 2 {
		if err := e.collectLevel(levels, l); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) collectLevel(levels [][]int, l int) error {
	cliques := levels[l]

	jobs := make([]potential.Job, len(cliques))
	newSep := make([]*potential.Table, len(cliques))
	for i, cid := range cliques {
		c := e.tree.Node(cid)
		s := e.tree.Node(c.Upstream())
		nt, job, err := c.Table().PrepareMarginalizeTo(s.Table().Vars())
		if err != nil {
			return fmt.Errorf("engine: Collect: clique %d to separator %d: %v", cid, s.ID(), err)
		}
		jobs[i] = job
		newSep[i] = nt
	}
	potential.RunBatch(jobs, e.workers())

	for i, cid := range cliques {
		c := e.tree.Node(cid)
		s := e.tree.Node(c.Upstream())
		ratio, err := newSep[i].Divide(s.Table())
		if err != nil {
			return fmt.Errorf("engine: Collect: separator %d ratio: %v", s.ID(), err)
		}
		if p := s.Upstream(); p >= 0 {
			parent := e.tree.Node(p)
			ext, err := ratio.Extend(parent.Table().Vars(), parent.Table().Dims())
			if err != nil {
				return fmt.Errorf("engine: Collect: extending separator %d to clique %d: %v", s.ID(), parent.ID(), err)
			}
			if err := parent.UpdateMessage(ext); err != nil {
				return fmt.Errorf("engine: Collect: updating clique %d: %v", parent.ID(), err)
			}
		}
		if err := s.UpdateMessage(newSep[i]); err != nil {
			return fmt.Errorf("engine: Collect: installing separator %d: %v", s.ID(), err)
		}
	}

	for _, cid := range cliques {
		c := e.tree.Node(cid)
		s := e.tree.Node(c.Upstream())
		s.Table().Normalize()
		if p := s.Upstream(); p >= 0 {
			e.tree.Node(p).Table().Normalize()
		}
	}
	return nil
}
