// The expiperfcsv command reads an iperf3 JSON result (iperf3 -J) on
// stdin and writes the CSV consumed by expsummarize on stdout.
//
//	iperf3 -c host -u -J | expiperfcsv client > rodada_1-udp-iperf3_client.csv
//	cat server.json | expiperfcsv server > rodada_1-udp-iperf3_server.csv
package main

import (
	"bufio"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/urfave/cli"

	"github.com/relab/netexp/exp/iperf"
	"github.com/relab/netexp/exp/util"
)

var clientCmd = cli.Command{
	Name:    "client",
	Aliases: []string{"c"},
	Usage:   "convert the JSON of an iperf3 client",
	Action: func(c *cli.Context) error {
		return convert(iperf.ConvertClient)
	},
}

var serverCmd = cli.Command{
	Name:    "server",
	Aliases: []string{"s"},
	Usage:   "convert the JSON of an iperf3 server, one row per interval",
	Action: func(c *cli.Context) error {
		err := convert(iperf.ConvertServer)
		if err == iperf.ErrInvalidServerJSON {
			return cli.NewExitError(err.Error(), 1)
		}
		return err
	},
}

func convert(fn func(io.Reader, io.Writer) error) error {
	out := bufio.NewWriter(os.Stdout)
	if err := fn(bufio.NewReader(os.Stdin), out); err != nil {
		return err
	}
	return out.Flush()
}

func main() {
	app := cli.NewApp()
	app.Name = "expiperfcsv"
	app.Usage = "Convert iperf3 JSON results to CSV."
	app.Flags = []cli.Flag{util.VerbosityFlag}
	app.Before = func(c *cli.Context) error {
		util.SetupGlog(c.Int("verbosity"))
		return nil
	}
	app.Commands = []cli.Command{
		clientCmd,
		serverCmd,
	}
	if err := app.Run(os.Args); err != nil {
		glog.Exit(err)
	}
}
