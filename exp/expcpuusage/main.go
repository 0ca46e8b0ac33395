// The expcpuusage command prints the utilisation of the given cores once
// per second for a number of seconds.
//
//	$ expcpuusage 0 2 10
//	12.00%, 3.50%
//	...
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/relab/netexp/exp/cpustat"
	"github.com/relab/netexp/exp/util"
)

// parseArgs splits "cores... duration".
func parseArgs(args []string) (cores []int, seconds int, err error) {
	if len(args) < 2 {
		return nil, 0, errors.New("expected at least one core and a duration")
	}
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, 0, errors.Errorf("argument %q is not an integer", a)
		}
		cores = append(cores, n)
	}
	return cores[:len(cores)-1], cores[len(cores)-1], nil
}

func formatCores(cores []int) string {
	s := make([]string, len(cores))
	for i, c := range cores {
		s[i] = strconv.Itoa(c)
	}
	return "[" + strings.Join(s, ", ") + "]"
}

func run(c *cli.Context) error {
	cores, seconds, err := parseArgs(c.Args())
	if err != nil {
		cli.ShowAppHelp(c)
		return cli.NewExitError(err.Error(), 1)
	}

	sampler, err := cpustat.NewSampler()
	if err != nil {
		return err
	}
	total, err := sampler.CoreCount()
	if err != nil {
		return err
	}
	if invalid := cpustat.InvalidCores(cores, total); len(invalid) > 0 {
		return cli.NewExitError(fmt.Sprintf(
			"Erro: Os seguintes núcleos não são válidos: %s\nInforme núcleos entre 0 e %d.",
			formatCores(invalid), total-1), 1)
	}
	glog.V(1).Infof("monitoring cores %v for %ds", cores, seconds)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	duration := time.Duration(seconds) * time.Second
	return sampler.Monitor(ctx, cores, duration, cpustat.DefaultInterval, os.Stdout)
}

func main() {
	app := cli.NewApp()
	app.Name = "expcpuusage"
	app.Usage = "Monitor the utilisation of specific CPU cores."
	app.ArgsUsage = "core [core...] duration"
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
