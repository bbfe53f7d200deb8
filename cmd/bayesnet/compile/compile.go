// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package compile implements a command to compile a network file into a
// junction tree and report its clique sizes.
package compile

import (
	"fmt"

	"github.com/js-arias/command"

	"github.com/js-arias/bayesnet/bnio"
	"github.com/js-arias/bayesnet/engine"
	"github.com/js-arias/bayesnet/junction"
)

var Command = &command.Command{
	Usage: `compile <network-file>`,
	Short: "compile a network and report clique sizes",
	Long: `
Command compile reads the network in the given file, compiles it into a
junction tree, and prints one line per clique: its id, the number of
variables in its scope, and the size of its potential table.

The argument is the name of the network file, in the format package bnio
reads.

This command is useful to check that a network compiles, and to gauge
the memory a query against it will need, without running any evidence
or query.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting network file")
	}

	net, err := bnio.Read(args[0])
	if err != nil {
		return err
	}

	e, err := engine.Compile(net, junction.DefaultOptions(), engine.DefaultConfig())
	if err != nil {
		return err
	}

	tree := e.Tree()
	for _, n := range tree.Nodes() {
		if n.IsSeparator() {
			continue
		}
		fmt.Fprintf(c.Stdout(), "%d\t%d\t%d\n", n.ID(), len(n.Scope()), n.Table().Size())
	}
	return nil
}
