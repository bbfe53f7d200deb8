// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Bayesnet is a tool for exact inference on discrete Bayesian networks.
package main

import (
	"github.com/js-arias/command"

	"github.com/js-arias/bayesnet/cmd/bayesnet/compile"
	"github.com/js-arias/bayesnet/cmd/bayesnet/plot"
	"github.com/js-arias/bayesnet/cmd/bayesnet/posterior"
	"github.com/js-arias/bayesnet/cmd/bayesnet/predict"
)

var app = &command.Command{
	Usage: "bayesnet <command> [<argument>...]",
	Short: "exact inference on discrete Bayesian networks",
}

func init() {
	app.Add(compile.Command)
	app.Add(predict.Command)
	app.Add(posterior.Command)
	app.Add(plot.Command)
}

func main() {
	app.Main()
}
