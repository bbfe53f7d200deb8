// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package posterior implements a command to report
// the full posterior distribution of a query variable.
package posterior

import (
	"fmt"
	"strconv"

	"github.com/js-arias/command"

	"github.com/js-arias/bayesnet/bnio"
	"github.com/js-arias/bayesnet/cmd/bayesnet/evidflag"
	"github.com/js-arias/bayesnet/engine"
	"github.com/js-arias/bayesnet/junction"
	"github.com/js-arias/bayesnet/network"
)

var Command = &command.Command{
	Usage: `posterior [--evidence <variable>=<value>,...]
	<network-file> [<query-variable>]`,
	Short: "report a posterior distribution",
	Long: `
Command posterior compiles the network in the given file into a junction
tree, conditions it on the evidence, and prints the posterior of the query
variable, one value per line with its probability and the distribution's
entropy in nats.

The first argument is the name of the network file, in the format package
bnio reads.

If the query variable is omitted, the posterior of every variable in the
network that is not fixed by the evidence is printed.

The flag --evidence sets the observed variables, as a comma-separated list of
"variable=value" pairs.
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

	net, err := bnio.Read(args[0])
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
	e.Reset()
	dropped, err := e.LoadEvidence(ev)
	if err != nil {
		return err
	}
	for _, dr := range dropped {
		fmt.Fprintf(c.Stderr(), "warning: dropped evidence: %v\n", dr)
	}
	if err := e.Collect(); err != nil {
		return err
	}
	if err := e.Distribute(); err != nil {
		return err
	}

	if len(args) >= 2 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid query variable %q: %v", args[1], err)
		}
		d, err := e.Posterior(network.Query(v))
		if err != nil {
			return err
		}
		return printDistribution(c, d)
	}

	all, err := e.PosteriorAll()
	if err != nil {
		return err
	}
	for v := 0; v < net.NumVars(); v++ {
		d, ok := all[v]
		if !ok {
			continue
		}
		if err := printDistribution(c, d); err != nil {
			return err
		}
	}
	return nil
}

func printDistribution(c *command.Command, d engine.Distribution) error {
	if d.Degenerate {
		fmt.Fprintf(c.Stdout(), "%d\tdegenerate\n", d.Var)
		return nil
	}
	for k, p := range d.Values {
		fmt.Fprintf(c.Stdout(), "%d\t%d\t%.6f\n", d.Var, k, p)
	}
	fmt.Fprintf(c.Stdout(), "%d\tentropy\t%.6f\n", d.Var, d.Entropy())
	return nil
}
