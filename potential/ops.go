// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package potential

import "fmt"

// Reduce drops v from the scope, keeping only the entries where v
// takes value k. The size shrinks by a factor of dims[v].
//
// Like Marginalize and Extend, Reduce is decomposed into a pre-phase
// (derive the new layout and the position map), a main phase (one
// linear-index-to-linear-index copy per new entry — embarrassingly
// parallel across the new table's indices), and a post-phase (install
// the new layout). The main phase is written as a free function,
// reduceRow, so that a batch of cliques can flatten their per-node
// row counts into one parallel-for, as §4.5 requires.
func (t *Table) Reduce(v, k int) (*Table, error) {
	pos := t.Pos(v)
	if pos < 0 {
		return nil, fmt.Errorf("potential: Reduce: variable %d not in scope", v)
	}
	if k < 0 || k >= t.dims[pos] {
		return nil, fmt.Errorf("potential: Reduce: value %d out of domain [0,%d) for variable %d", k, t.dims[pos], v)
	}

	// pre-phase
	newVars := dropAt(t.vars, pos)
	newDims := dropAt(t.dims, pos)
	loc := locAfterDrop(len(t.vars), pos)
	nt := newTable(newVars, newDims)

	// main phase
	for i := 0; i < nt.size; i++ {
		nt.pot[i] = reduceRow(t, nt, i, pos, k, loc)
	}

	// post-phase: nt is already fully installed, nothing further to do.
	return nt, nil
}

// reduceRow computes one entry of a Reduce result: the old-table entry
// whose v-th coordinate is fixed at k and whose remaining coordinates
// come from the new table's i-th configuration.
func reduceRow(old, new *Table, i, pos, k int, loc []int) float64 {
	nd := digits(i, new.dims, new.cum)
	od := make([]int, len(old.dims))
	od[pos] = k
	for j, d := range nd {
		od[loc[j]] = d
	}
	return old.pot[encode(od, old.cum)]
}

// Marginalize drops v, summing over the dims[v] entries that differ
// only in v.
func (t *Table) Marginalize(v int) (*Table, error) {
	pos := t.Pos(v)
	if pos < 0 {
		return nil, fmt.Errorf("potential: Marginalize: variable %d not in scope", v)
	}

	// pre-phase
	newVars := dropAt(t.vars, pos)
	newDims := dropAt(t.dims, pos)
	loc := locAfterDrop(len(t.vars), pos)
	nt := newTable(newVars, newDims)
	dv := t.dims[pos]

	// main phase
	for i := 0; i < nt.size; i++ {
		nt.pot[i] = marginalizeRow(t, nt, i, pos, dv, loc)
	}

	return nt, nil
}

func marginalizeRow(old, new *Table, i, pos, dv int, loc []int) float64 {
	nd := digits(i, new.dims, new.cum)
	od := make([]int, len(old.dims))
	for j, d := range nd {
		od[loc[j]] = d
	}
	var sum float64
	for k := 0; k < dv; k++ {
		od[pos] = k
		sum += old.pot[encode(od, old.cum)]
	}
	return sum
}

// Extend projects t onto the larger scope newVars (with matching
// newDims), replicating values across the variables newVars adds. It
// is a no-op — t is returned unchanged — when newVars already equals
// t.Vars() in the same order; otherwise newVars must be a superset of
// t.Vars(), in any order, each with the domain size it already has in
// t.
func (t *Table) Extend(newVars, newDims []int) (*Table, error) {
	nt, job, err := t.PrepareExtend(newVars, newDims)
	if err != nil {
		return nil, err
	}
	if nt == t {
		return t, nil
	}
	RunBatch([]Job{job}, 1)
	return nt, nil
}

// PrepareExtend builds the new table and the Job that fills it for
// Extend, without running the Job, so that a caller can flatten several
// tables' extend steps into a single RunBatch. If
// newVars already equals t.Vars() in the same order, it returns t
// itself with a zero Job; callers must check for that before using the
// Job.
func (t *Table) PrepareExtend(newVars, newDims []int) (*Table, Job, error) {
	if slicesEqual(t.vars, newVars) {
		return t, Job{}, nil
	}

	// pre-phase: for every old position, find where that variable
	// lives in the new, larger variable list.
	loc := make([]int, len(t.vars))
	for i, v := range t.vars {
		p := posOf(newVars, v)
		if p < 0 {
			return nil, Job{}, fmt.Errorf("potential: Extend: new scope does not cover variable %d", v)
		}
		if t.dims[i] != newDims[p] {
			return nil, Job{}, fmt.Errorf("potential: Extend: domain size mismatch for variable %d", v)
		}
		loc[i] = p
	}
	nt := newTable(newVars, newDims)
	job := Job{
		Dst: nt.pot,
		Row: func(i int) float64 { return extendRow(t, nt, i, loc) },
	}
	return nt, job, nil
}

func extendRow(old, new *Table, i int, loc []int) float64 {
	nd := digits(i, new.dims, new.cum)
	od := make([]int, len(old.dims))
	for j, p := range loc {
		od[j] = nd[p]
	}
	return old.pot[encode(od, old.cum)]
}

// Reorganize rebuilds t so that its trailing len(target) variables are
// exactly target, in that order. target must be a subset of t.Vars();
// the remaining (leading) variables keep their relative order. This is
// a pure permutation of the potentials array: the sum is invariant.
func (t *Table) Reorganize(target []int) (*Table, error) {
	targetSet := make(map[int]bool, len(target))
	for _, v := range target {
		targetSet[v] = true
	}
	head := make([]int, 0, len(t.vars)-len(target))
	for _, v := range t.vars {
		if !targetSet[v] {
			head = append(head, v)
		}
	}
	if len(head)+len(target) != len(t.vars) {
		return nil, fmt.Errorf("potential: Reorganize: target is not a subset of the table's scope")
	}

	newVars := make([]int, 0, len(t.vars))
	newVars = append(newVars, head...)
	newVars = append(newVars, target...)
	newDims := make([]int, len(newVars))
	loc := make([]int, len(newVars))
	for i, v := range newVars {
		p := t.Pos(v)
		if p < 0 {
			return nil, fmt.Errorf("potential: Reorganize: variable %d not in scope", v)
		}
		newDims[i] = t.dims[p]
		loc[i] = p
	}
	nt := newTable(newVars, newDims)

	for i := 0; i < nt.size; i++ {
		nd := digits(i, nt.dims, nt.cum)
		od := make([]int, len(t.vars))
		for j, p := range loc {
			od[p] = nd[j]
		}
		nt.pot[i] = t.pot[encode(od, t.cum)]
	}

	return nt, nil
}

// PrepareMarginalizeTo builds the new table and the Job that fills it
// for MarginalizeTo, without running the Job. It is exported so the
// engine package can flatten one level's separator updates — each a
// MarginalizeTo call on a different clique — into a single RunBatch.
//
// If t's trailing len(keep) variables are already exactly keep, in
// that order, the sum is a contiguous-stride reduction: cumLevels is a
// suffix product, so the trailing variables are always the
// fastest-varying ones, and t's flat index decomposes as
// leading*sepSize+row with no further index arithmetic needed. This is
// the layout guarantee Tree.Organize's Reorganize call sets up for
// every clique against its upstream separator, so collection's
// marginalize-out-the-non-separator-variables step never pays for a
// digit permutation at query time. Otherwise t is reorganized first.
func (t *Table) PrepareMarginalizeTo(keep []int) (*Table, Job, error) {
	src := t
	n := len(t.vars)
	k := len(keep)
	if k > n {
		return nil, Job{}, fmt.Errorf("potential: MarginalizeTo: keep has more variables than the table's scope")
	}
	if !slicesEqual(t.vars[n-k:], keep) {
		reorg, err := t.Reorganize(keep)
		if err != nil {
			return nil, Job{}, fmt.Errorf("potential: MarginalizeTo: %v", err)
		}
		src = reorg
		n = len(src.vars)
	}

	sepSize := 1
	for _, d := range src.dims[n-k:] {
		sepSize *= d
	}
	leadingSize := src.size / sepSize

	trailingDims := append([]int(nil), src.dims[n-k:]...)
	nt := newTable(keep, trailingDims)
	job := Job{
		Dst: nt.pot,
		Row: func(r int) float64 {
			var sum float64
			for l := 0; l < leadingSize; l++ {
				sum += src.pot[l*sepSize+r]
			}
			return sum
		},
	}
	return nt, job, nil
}

// MarginalizeTo sums out every variable of t not in keep, returning a
// table over exactly keep, in that order. It is equivalent to calling
// Marginalize once per dropped variable followed by Reorganize(keep),
// but is implemented as the single contiguous-stride reduction
// PrepareMarginalizeTo describes.
func (t *Table) MarginalizeTo(keep []int) (*Table, error) {
	nt, job, err := t.PrepareMarginalizeTo(keep)
	if err != nil {
		return nil, err
	}
	RunBatch([]Job{job}, 1)
	return nt, nil
}

// dropAt returns a copy of s with the element at pos removed.
func dropAt(s []int, pos int) []int {
	r := make([]int, 0, len(s)-1)
	r = append(r, s[:pos]...)
	r = append(r, s[pos+1:]...)
	return r
}

// locAfterDrop returns, for a table of size n with position pos
// removed, the mapping from a position in the (n-1)-length remaining
// list to its position in the original n-length list.
func locAfterDrop(n, pos int) []int {
	loc := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i == pos {
			continue
		}
		loc = append(loc, i)
	}
	return loc
}

func posOf(s []int, v int) int {
	for i, u := range s {
		if u == v {
			return i
		}
	}
	return -1
}

func slicesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
