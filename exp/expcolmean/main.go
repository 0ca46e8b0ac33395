// The expcolmean command reads a header-less CSV on stdin and prints the
// mean of every column, rounded to two decimals, as one CSV line.
//
//	$ printf '1,2\n3,4\n5,6\n' | expcolmean
//	3.0,4.0
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/urfave/cli"

	"github.com/relab/netexp/exp/util"
)

func run(c *cli.Context) error {
	means, err := util.ReadColumnMeans(bufio.NewReader(os.Stdin))
	if err == util.ErrEmptyCSV {
		return cli.NewExitError("Erro: O CSV está vazio.", 1)
	}
	if err != nil {
		return err
	}
	fmt.Println(util.JoinFloats(means))
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "expcolmean"
	app.Usage = "Print the mean of every column of a CSV read on stdin."
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
