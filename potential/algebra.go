// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package potential

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Multiply returns the pointwise product of t and u, which must share
// t's scope in t's order. The identity element is NewOnes over the
// same scope.
func (t *Table) Multiply(u *Table) (*Table, error) {
	if !slicesEqual(t.vars, u.vars) {
		return nil, fmt.Errorf("potential: Multiply: scope mismatch")
	}
	nt := newTable(t.vars, t.dims)
	copy(nt.pot, t.pot)
	floats.Mul(nt.pot, u.pot)
	return nt, nil
}

// Divide returns the pointwise quotient t / u, which must share t's
// scope in t's order. It follows the zero-message convention used
// during message passing: 0/0 -> 0 and x/0 -> 0, rather than the
// IEEE-754 NaN and +Inf that a plain division would produce.
func (t *Table) Divide(u *Table) (*Table, error) {
	if !slicesEqual(t.vars, u.vars) {
		return nil, fmt.Errorf("potential: Divide: scope mismatch")
	}
	nt := newTable(t.vars, t.dims)
	for i, p := range t.pot {
		d := u.pot[i]
		if d == 0 {
			nt.pot[i] = 0
			continue
		}
		nt.pot[i] = p / d
	}
	return nt, nil
}

// Normalize divides every entry by their sum, in place. If the sum is
// zero, Normalize leaves the table unchanged: the spec places the
// burden of guaranteeing a prior renormalization (or tolerating a
// zero-sum degenerate table) on the caller.
func (t *Table) Normalize() {
	sum := floats.Sum(t.pot)
	if sum == 0 {
		return
	}
	floats.Scale(1/sum, t.pot)
}
