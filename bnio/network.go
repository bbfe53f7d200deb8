// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package bnio implements reading and writing
// of bayesnet network files.
package bnio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/bayesnet/network"
)

var header = []string{
	"variable",
	"domain",
	"parents",
	"cpt",
}

// A Net is a network.Network read from a TSV file.
type Net struct {
	name    string
	dims    []int
	parents [][]int
	cpt     [][]float64
}

func (n *Net) NumVars() int         { return len(n.dims) }
func (n *Net) DomainSize(v int) int { return n.dims[v] }
func (n *Net) Parents(v int) []int  { return n.parents[v] }
func (n *Net) CPT(v int) []float64  { return n.cpt[v] }

// Name returns the file name the network was read from.
func (n *Net) Name() string { return n.name }

// Read reads a network from a TSV file.
//
// The TSV must contain the following fields:
//
//   - variable, the dense integer id of the variable
//   - domain, the number of values the variable can take
//   - parents, a comma-separated list of parent variable ids,
//     empty for a variable with no parents
//   - cpt, a comma-separated list of the variable's conditional
//     probability table, in row-major order with the parents'
//     joint configuration varying slowest and the variable's own
//     value varying fastest
//
// Here is an example file, the chain A -> B -> C:
//
//	# a bayesnet network file
//	variable	domain	parents	cpt
//	0	2		0.6,0.4
//	1	2	0	0.9,0.1,0.2,0.8
//	2	2	1	0.7,0.3,0.1,0.9
func Read(name string) (*Net, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("bnio: %v", err)
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	tsv.FieldsPerRecord = -1

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("bnio: on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("bnio: on file %q: expecting field %q", name, h)
		}
	}

	rows := make(map[int][]string)
	maxVar := -1
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("bnio: on file %q: on row %d: %v", name, ln, err)
		}

		f := "variable"
		v, err := strconv.Atoi(strings.TrimSpace(row[fields[f]]))
		if err != nil {
			return nil, fmt.Errorf("bnio: on file %q: on row %d, field %q: %v", name, ln, f, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("bnio: on file %q: on row %d: negative variable id %d", name, ln, v)
		}
		if _, ok := rows[v]; ok {
			return nil, fmt.Errorf("bnio: on file %q: on row %d: variable %d defined twice", name, ln, v)
		}
		rows[v] = row
		if v > maxVar {
			maxVar = v
		}
	}
	if maxVar < 0 {
		return nil, fmt.Errorf("bnio: on file %q: no variables", name)
	}

	n := &Net{
		name:    name,
		dims:    make([]int, maxVar+1),
		parents: make([][]int, maxVar+1),
		cpt:     make([][]float64, maxVar+1),
	}
	for v := 0; v <= maxVar; v++ {
		row, ok := rows[v]
		if !ok {
			return nil, fmt.Errorf("bnio: on file %q: missing variable %d: variables must be densely indexed", name, v)
		}

		f := "domain"
		d, err := strconv.Atoi(strings.TrimSpace(row[fields[f]]))
		if err != nil {
			return nil, fmt.Errorf("bnio: on file %q: variable %d, field %q: %v", name, v, f, err)
		}
		if d < 1 {
			return nil, fmt.Errorf("bnio: on file %q: variable %d: invalid domain size %d", name, v, d)
		}
		n.dims[v] = d

		f = "parents"
		ps := strings.TrimSpace(row[fields[f]])
		var parents []int
		if ps != "" {
			for _, tok := range strings.Split(ps, ",") {
				p, err := strconv.Atoi(strings.TrimSpace(tok))
				if err != nil {
					return nil, fmt.Errorf("bnio: on file %q: variable %d, field %q: %v", name, v, f, err)
				}
				parents = append(parents, p)
			}
		}
		n.parents[v] = parents

		f = "cpt"
		cs := strings.TrimSpace(row[fields[f]])
		var cpt []float64
		if cs != "" {
			for _, tok := range strings.Split(cs, ",") {
				p, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
				if err != nil {
					return nil, fmt.Errorf("bnio: on file %q: variable %d, field %q: %v", name, v, f, err)
				}
				cpt = append(cpt, p)
			}
		}
		n.cpt[v] = cpt
	}

	for v := 0; v <= maxVar; v++ {
		want := n.dims[v]
		for _, p := range n.parents[v] {
			if p < 0 || p > maxVar {
				return nil, fmt.Errorf("bnio: on file %q: variable %d has out-of-range parent %d", name, v, p)
			}
			want *= n.dims[p]
		}
		if len(n.cpt[v]) != want {
			return nil, fmt.Errorf("bnio: on file %q: variable %d has %d cpt entries, want %d", name, v, len(n.cpt[v]), want)
		}
	}

	return n, nil
}

// Write writes net to name as a TSV file in the format Read expects.
func Write(name string, net network.Network) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("bnio: %v", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := w.Write(header); err != nil {
		return fmt.Errorf("bnio: on file %q: %v", name, err)
	}

	for v := 0; v < net.NumVars(); v++ {
		parents := net.Parents(v)
		ps := make([]string, len(parents))
		for i, p := range parents {
			ps[i] = strconv.Itoa(p)
		}

		cpt := net.CPT(v)
		cs := make([]string, len(cpt))
		for i, p := range cpt {
			cs[i] = strconv.FormatFloat(p, 'g', -1, 64)
		}

		row := []string{
			strconv.Itoa(v),
			strconv.Itoa(net.DomainSize(v)),
			strings.Join(ps, ","),
			strings.Join(cs, ","),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("bnio: on file %q: %v", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("bnio: on file %q: %v", name, err)
	}
	return nil
}
