// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package engine

import (
	"fmt"

	"github.com/js-arias/bayesnet/potential"
)

// Distribute runs the downward (root-to-leaf) half of belief
// propagation, the mirror of Collect: processed one separator level at
// a time, from the level just below the root out to the leaves, each
// separator marginalizes its upstream clique's now fully collected
// table down to its own scope, divides that against its previous
// message to form a ratio, and the ratio (extended to the downstream
// clique's scope) is multiplied into that clique. Must run after
// Collect; running it first would distribute an un-collected root.
func (e *Engine) Distribute() error {
	levels := e.tree.Levels()
	for l := 1; l <= len(levels)-2; l += 2 {
		if err := e.distributeLevel(levels, l); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) distributeLevel(levels [][]int, l int) error {
	seps := levels[l]

	jobs := make([]potential.Job, len(seps))
	newSep := make([]*potential.Table, len(seps))
	for i, sid := range seps {
		s := e.tree.Node(sid)
		p := e.tree.Node(s.Upstream())
		nt, job, err := p.Table().PrepareMarginalizeTo(s.Table().Vars())
		if err != nil {
			return fmt.Errorf("engine: Distribute: clique %d to separator %d: %v", p.ID(), sid, err)
		}
		jobs[i] = job
		newSep[i] = nt
	}
	potential.RunBatch(jobs, e.workers())

	for i, sid := range seps {
		s := e.tree.Node(sid)
		ratio, err := newSep[i].Divide(s.Table())
		if err != nil {
			return fmt.Errorf("engine: Distribute: separator %d ratio: %v", sid, err)
		}
		for _, did := range s.Downstream() {
			child := e.tree.Node(did)
			ext, err := ratio.Extend(child.Table().Vars(), child.Table().Dims())
			if err != nil {
				return fmt.Errorf("engine: Distribute: extending separator %d to clique %d: %v", sid, did, err)
			}
			if err := child.UpdateMessage(ext); err != nil {
				return fmt.Errorf("engine: Distribute: updating clique %d: %v", did, err)
			}
		}
		if err := s.UpdateMessage(newSep[i]); err != nil {
			return fmt.Errorf("engine: Distribute: installing separator %d: %v", sid, err)
		}
	}

	if e.cfg.NormalizeOnDistribute {
		for _, sid := range seps {
			s := e.tree.Node(sid)
			s.Table().Normalize()
			for _, did := range s.Downstream() {
				e.tree.Node(did).Table().Normalize()
			}
		}
	}
	return nil
}
