// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plot implements a command to draw
// a query variable's posterior as a bar chart.
package plot

import (
	"fmt"
	"strconv"

	"github.com/js-arias/blind"
	"github.com/js-arias/command"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/js-arias/bayesnet/bnio"
	"github.com/js-arias/bayesnet/cmd/bayesnet/evidflag"
	"github.com/js-arias/bayesnet/engine"
	"github.com/js-arias/bayesnet/junction"
	"github.com/js-arias/bayesnet/network"
)

var Command = &command.Command{
	Usage: `plot [--evidence <variable>=<value>,...]
	-o|--output <file>
	<network-file> <query-variable>`,
	Short: "draw a posterior as a bar chart",
	Long: `
Command plot compiles the network in the given file into a junction tree,
conditions it on the evidence, and draws the posterior of the query variable
as a bar chart, one bar per value, all bars in the single color at the
middle of the Iridescent colorblind-safe scheme.

The first argument is the name of the network file, in the format package
bnio reads.

The second argument is the integer id of the query variable.

The flag --evidence sets the observed variables, as a comma-separated list of
"variable=value" pairs.

The flag --output, or -o, sets the name of the image file. It is required.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var evidence string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&evidence, "evidence", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting network file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting query variable")
	}
	if output == "" {
		return c.UsageError("flag --output is required")
	}

	net, err := bnio.Read(args[0])
	if err != nil {
		return err
	}
	q, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid query variable %q: %v", args[1], err)
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

	if err := barChart(d, output); err != nil {
		return err
	}
	return nil
}

func barChart(d engine.Distribution, file string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("posterior of variable %d", d.Var)
	p.Y.Label.Text = "probability"
	p.Y.Min = 0
	p.Y.Max = 1

	vals := make(plotter.Values, len(d.Values))
	copy(vals, d.Values)

	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return fmt.Errorf("plot: %v", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = blind.Sequential(blind.Iridescent, 0.5)
	p.Add(bars)

	if err := p.Save(5*vg.Inch, 3*vg.Inch, file); err != nil {
		return fmt.Errorf("plot: %v", err)
	}
	return nil
}
