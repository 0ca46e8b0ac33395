// The expsummarize command aggregates the rounds of one or more network
// tests, draws PNG and SVG charts and writes a Markdown and JSON report.
//
// A results folder holds one directory per test, each with rodada_<n>
// round directories:
//
//	<resultados>/<teste>/rodada_<n>/rodada_<n>-<teste>-mpstat.csv
//	<resultados>/<teste>/rodada_<n>/rodada_<n>-<teste>-iperf3_client.csv
//	<resultados>/<teste>/rodada_<n>/rodada_<n>-<teste>-iperf3_server.csv
//
// Example:
//
//	expsummarize -d resultados -t udp_1g -t tcp_1g -c 1,2 -r baseline
package main

import (
	"os"

	"github.com/golang/glog"
	"github.com/pkg/profile"
	"github.com/urfave/cli"

	"github.com/relab/netexp/exp/util"
)

var flags = []cli.Flag{
	cli.StringFlag{Name: "resultados, d", Usage: "results folder"},
	cli.StringSliceFlag{Name: "teste, t", Usage: "test to summarize, may be repeated"},
	cli.StringFlag{Name: "cpus, c", Usage: "comma separated cores for the per-test CPU comparison"},
	cli.StringFlag{Name: "referencia, r", Usage: "test whose server throughput is drawn as reference"},
	cli.BoolFlag{Name: "ic", Usage: "draw 95% confidence intervals"},
	cli.BoolFlag{Name: "media", Usage: "draw the mean line on bar charts"},
	cli.IntFlag{Name: "trabalhadores", Usage: "rounds parsed in parallel (default: number of CPUs)"},
	util.VerbosityFlag,
}

func run(c *cli.Context) error {
	o, err := initOptions(c)
	if err != nil {
		return err
	}
	if profilingEnabled(c) {
		defer profile.Start(generateProfilingConfig(c, o.ResultsDir)...).Stop()
	}
	return NewExperiment(o, os.Stdout).Run()
}

func main() {
	app := cli.NewApp()
	app.Name = "expsummarize"
	app.Usage = "Summarize network test rounds into charts and reports."
	app.Flags = append(flags, profileFlags...)
	app.Before = func(c *cli.Context) error {
		util.SetupGlog(c.Int("verbosity"))
		return nil
	}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		glog.Exit(err)
	}
}
