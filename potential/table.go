// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package potential implements the dense, mixed-radix potential table
// that is the central data structure of the junction-tree inference
// engine.
//
// A Table stores the joint potential over an ordered tuple of discrete
// variables as a flat array. The order of the variable list defines the
// mixed-radix layout (the stride, or "cum level", of each variable), and
// every operation on a Table — Reduce, Marginalize, Extend, Multiply,
// Divide, Reorganize, Normalize — is defined purely in terms of that
// layout; there is no sparse representation and no variable reordering
// other than the one Reorganize performs explicitly.
package potential

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// A Table is a dense potential over an ordered tuple of discrete
// variables. Entry at linear index k encodes the configuration whose
// i-th coordinate is ⌊k / cum[i]⌋ mod dims[i].
type Table struct {
	vars  []int
	scope map[int]bool
	dims  []int
	cum   []int
	size  int
	pot   []float64
}

// cumLevels computes the stride of every position in dims:
// cum[n-1] = 1, cum[i] = cum[i+1] * dims[i+1].
func cumLevels(dims []int) []int {
	n := len(dims)
	cum := make([]int, n)
	if n == 0 {
		return cum
	}
	cum[n-1] = 1
	for i := n - 2; i >= 0; i-- {
		cum[i] = cum[i+1] * dims[i+1]
	}
	return cum
}

// digits decodes a linear index into its mixed-radix coordinates.
func digits(idx int, dims, cum []int) []int {
	d := make([]int, len(dims))
	for i := range dims {
		d[i] = (idx / cum[i]) % dims[i]
	}
	return d
}

// encode re-encodes mixed-radix coordinates into a linear index.
func encode(d, cum []int) int {
	idx := 0
	for i, c := range d {
		idx += c * cum[i]
	}
	return idx
}

// newTable allocates a zeroed table over vars with the given dims, in
// the same order. It does not validate that vars has no duplicates;
// callers own that invariant.
func newTable(vars, dims []int) *Table {
	cum := cumLevels(dims)
	size := 1
	for _, d := range dims {
		size *= d
	}
	scope := make(map[int]bool, len(vars))
	for _, v := range vars {
		scope[v] = true
	}
	return &Table{
		vars:  slices.Clone(vars),
		scope: scope,
		dims:  dims,
		cum:   cum,
		size:  size,
		pot:   make([]float64, size),
	}
}

// NewFromCPT builds a table over {node} ∪ parents from a conditional
// probability table. cpt must be in the "natural" row-major order:
// the parents' joint configuration varies slowest, the node's own
// value varies fastest — the same order the node's own variable,
// placed last in vars, gives it under this package's addressing.
func NewFromCPT(node int, parents []int, domainSize func(v int) int, cpt []float64) (*Table, error) {
	vars := make([]int, 0, len(parents)+1)
	vars = append(vars, parents...)
	vars = append(vars, node)

	dims := make([]int, len(vars))
	for i, v := range vars {
		dims[i] = domainSize(v)
	}

	t := newTable(vars, dims)
	if len(cpt) != t.size {
		return nil, fmt.Errorf("potential: CPT for variable %d has %d entries, want %d", node, len(cpt), t.size)
	}
	copy(t.pot, cpt)
	return t, nil
}

// NewOnes builds an all-ones table over vars with the given dims, the
// identity element for Multiply.
func NewOnes(vars, dims []int) *Table {
	t := newTable(vars, dims)
	for i := range t.pot {
		t.pot[i] = 1
	}
	return t
}

// Vars returns the ordered variable list. The returned slice must not
// be mutated.
func (t *Table) Vars() []int { return t.vars }

// Dims returns the domain size of each position in Vars.
func (t *Table) Dims() []int { return t.dims }

// CumLevels returns the stride of each position in Vars.
func (t *Table) CumLevels() []int { return t.cum }

// Size returns the number of entries, the product of Dims.
func (t *Table) Size() int { return t.size }

// Potentials returns the flat potential array. The returned slice must
// not be mutated.
func (t *Table) Potentials() []float64 { return t.pot }

// Has reports whether v is in the table's scope.
func (t *Table) Has(v int) bool { return t.scope[v] }

// Pos returns the position of v in Vars, or -1 if v is not in scope.
func (t *Table) Pos(v int) int {
	for i, u := range t.vars {
		if u == v {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	c := &Table{
		vars:  slices.Clone(t.vars),
		scope: make(map[int]bool, len(t.scope)),
		dims:  slices.Clone(t.dims),
		cum:   slices.Clone(t.cum),
		size:  t.size,
		pot:   slices.Clone(t.pot),
	}
	for v := range t.scope {
		c.scope[v] = true
	}
	return c
}

// Sum returns the sum of all potentials.
func (t *Table) Sum() float64 { return floats.Sum(t.pot) }

// ArgMax returns the linear index of the largest potential, breaking
// ties toward the lowest index.
func (t *Table) ArgMax() int {
	best := 0
	for i, p := range t.pot {
		if p > t.pot[best] {
			best = i
		}
	}
	return best
}

// At returns the potential at linear index k.
func (t *Table) At(k int) float64 { return t.pot[k] }
