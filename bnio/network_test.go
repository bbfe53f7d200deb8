// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package bnio_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/js-arias/bayesnet/bnio"
)

type testNet struct {
	dims    []int
	parents [][]int
	cpt     [][]float64
}

func (n *testNet) NumVars() int         { return len(n.dims) }
func (n *testNet) DomainSize(v int) int { return n.dims[v] }
func (n *testNet) Parents(v int) []int  { return n.parents[v] }
func (n *testNet) CPT(v int) []float64  { return n.cpt[v] }

func TestWriteReadRoundTrip(t *testing.T) {
	want := &testNet{
		dims:    []int{2, 2, 2},
		parents: [][]int{nil, {0}, {1}},
		cpt: [][]float64{
			{0.6, 0.4},
			{0.9, 0.1, 0.2, 0.8},
			{0.7, 0.3, 0.1, 0.9},
		},
	}

	name := filepath.Join(t.TempDir(), "chain.tab")
	if err := bnio.Write(name, want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := bnio.Read(name)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.NumVars() != want.NumVars() {
		t.Fatalf("NumVars = %d, want %d", got.NumVars(), want.NumVars())
	}
	for v := 0; v < want.NumVars(); v++ {
		if got.DomainSize(v) != want.DomainSize(v) {
			t.Fatalf("variable %d: DomainSize = %d, want %d", v, got.DomainSize(v), want.DomainSize(v))
		}
		gp, wp := got.Parents(v), want.Parents(v)
		if len(gp) != len(wp) {
			t.Fatalf("variable %d: Parents = %v, want %v", v, gp, wp)
		}
		for i := range wp {
			if gp[i] != wp[i] {
				t.Fatalf("variable %d: Parents = %v, want %v", v, gp, wp)
			}
		}
		gc, wc := got.CPT(v), want.CPT(v)
		if len(gc) != len(wc) {
			t.Fatalf("variable %d: CPT length = %d, want %d", v, len(gc), len(wc))
		}
		for i := range wc {
			if math.Abs(gc[i]-wc[i]) > 1e-12 {
				t.Fatalf("variable %d: CPT[%d] = %v, want %v", v, i, gc[i], wc[i])
			}
		}
	}
}

func TestReadRejectsWrongCPTLength(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bad.tab")
	content := "variable\tdomain\tparents\tcpt\n0\t2\t\t0.5,0.5\n1\t2\t0\t0.9,0.1\n"
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := bnio.Read(name); err == nil {
		t.Fatalf("Read accepted a CPT with the wrong number of entries")
	}
}

func TestReadRejectsSparseIndices(t *testing.T) {
	name := filepath.Join(t.TempDir(), "sparse.tab")
	content := "variable\tdomain\tparents\tcpt\n0\t2\t\t0.5,0.5\n2\t2\t0\t0.9,0.1,0.2,0.8\n"
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := bnio.Read(name); err == nil {
		t.Fatalf("Read accepted sparse variable indices")
	}
}
