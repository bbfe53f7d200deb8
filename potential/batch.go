// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package potential

import (
	"runtime"
	"sync"
)

// A Job is one table operation's main phase, decomposed into its
// destination buffer and the function that computes one entry of it
// from an old table's entries. PrepareExtend and PrepareMarginalizeTo
// produce a Job for Extend and MarginalizeTo, so that a whole
// level of the junction tree can flatten many nodes' jobs into a
// single parallel-for, as §4.5 of the design requires.
type Job struct {
	Dst []float64
	Row func(i int) float64
}

// RunBatch executes a batch of jobs as one flattened, bulk-synchronous
// parallel-for. A prefix sum over job sizes gives the flattened index
// space [0, total); each worker owns a contiguous slice of it, recovers
// the (job, row) a given flattened index belongs to by a bounded linear
// scan over the prefix sum (the number of jobs in one level is small,
// per the design), and writes directly into that job's own destination
// slice — no worker depends on another's output, and a single barrier
// (WaitGroup.Wait) ends the level before any post-phase runs.
func RunBatch(jobs []Job, workers int) {
	if len(jobs) == 0 {
		return
	}
	cum := make([]int, len(jobs)+1)
	for i, j := range jobs {
		cum[i+1] = cum[i] + len(j.Dst)
	}
	total := cum[len(jobs)]
	if total == 0 {
		return
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > total {
		workers = total
	}

	chunk := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < total; start += chunk {
		end := start + chunk
		if end > total {
			end = total
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			j := 0
			for s := start; s < end; s++ {
				for cum[j+1] <= s {
					j++
				}
				row := s - cum[j]
				jobs[j].Dst[row] = jobs[j].Row(row)
			}
		}(start, end)
	}
	wg.Wait()
}
