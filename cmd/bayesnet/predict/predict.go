// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package predict implements a command to report
// the most probable value of a query variable.
package predict

import (
	"fmt"

	"github.com/js-arias/command"

	"github.com/js-arias/bayesnet/bnio"
	"github.com/js-arias/bayesnet/cmd/bayesnet/evidflag"
	"github.com/js-arias/bayesnet/engine"
	"github.com/js-arias/bayesnet/junction"
	"github.com/js-arias/bayesnet/network"
)

var Command = &command.Command{
	Usage: `predict [--evidence <variable>=<value>,...]
	<network-file> <query-variable>`,
	Short: "report the most probable value of a variable",
	Long: `
Command predict compiles the network in the given file into a junction tree,
conditions it on the evidence, and reports the most probable value of the
query variable along with the probability mass assigned to it.

The first argument is the name of the network file, in the format package
bnio reads.

The second argument is the integer id of the query variable.

The flag --evidence sets the observed variables, as a comma-separated list of
"variable=value" pairs. Evidence naming an out-of-range variable or an
out-of-domain value is reported and skipped, rather than rejected.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var evidence string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&evidence, "evidence", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting network file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting query variable")
	}

	net, err := bnio.Read(args[0])
	if err != nil {
		return err
	}

	q, err := parseQuery(args[1])
	if err != nil {
		return err
	}

	ev, err := evidflag.Parse(evidence)
	if err != nil {
		return err
	}

	e, err := engine.Compile(net, junction.DefaultOptions(), engine.DefaultConfig())
	if err != nil {
		return err
	}

	d, dropped, err := e.Query(ev, network.Query(q))
	if err != nil {
		return err
	}
	for _, dr := range dropped {
		fmt.Fprintf(c.Stderr(), "warning: dropped evidence: %v\n", dr)
	}
	if d.Degenerate {
		return fmt.Errorf("variable %d: the evidence rules out every value", q)
	}

	best := 0
	for i, p := range d.Values {
		if p > d.Values[best] {
			best = i
		}
	}
	fmt.Fprintf(c.Stdout(), "%d\t%d\t%.6f\n", q, best, d.Values[best])
	return nil
}

func parseQuery(s string) (int, error) {
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, fmt.Errorf("invalid query variable %q: %v", s, err)
	}
	return v, nil
}
