// The expmpstatcsv command converts `mpstat -P ALL 1` output read on
// stdin into a CSV of per-core active percentages (100 - %idle), one
// row per report block.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/urfave/cli"

	"github.com/relab/netexp/exp/mpstat"
	"github.com/relab/netexp/exp/util"
)

func run(c *cli.Context) error {
	report, err := mpstat.Parse(bufio.NewReader(os.Stdin))
	if err == mpstat.ErrNoData {
		// Nothing to convert is not a failure of the run.
		fmt.Fprintln(os.Stderr, err)
		return nil
	}
	if err != nil {
		return err
	}
	glog.V(1).Infof("%d blocks, %d cores", len(report.Blocks), report.CPUCount)

	out := bufio.NewWriter(os.Stdout)
	if err := report.WriteCSV(out); err != nil {
		return err
	}
	return out.Flush()
}

func main() {
	app := cli.NewApp()
	app.Name = "expmpstatcsv"
	app.Usage = "Convert mpstat -P ALL output to CSV."
	app.Flags = []cli.Flag{util.VerbosityFlag}
	app.Before = func(c *cli.Context) error {
		util.SetupGlog(c.Int("verbosity"))
		return nil
	}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		glog.Exit(err)
	}
}
