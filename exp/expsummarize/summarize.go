package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/relab/netexp/config"
	"github.com/relab/netexp/exp/util"
)

// NewExperiment prepares a run writing its console summary to out.
func NewExperiment(o Options, out io.Writer) *Experiment {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = config.DefWidth, config.DefHeight
	}
	return &Experiment{Options: o, out: out, charts: newCharts(o)}
}

// Run summarizes every test, renders the cross-test charts and writes
// the reports. Missing inputs are warned about and skipped; malformed
// CSV files abort the run. Chart failures are reported together once
// everything else is done.
func (e *Experiment) Run() error {
	for _, test := range e.Tests {
		dir := testDir(e.ResultsDir, test)
		if !util.IsDir(dir) {
			glog.Warningf("Aviso: Diretório do teste %s não encontrado.", dir)
			continue
		}
		fmt.Fprintf(e.out, "\nProcessando %s ...\n", util.FormatLabel(test))
		ts, err := e.SummarizeTest(test, true)
		if err != nil {
			return err
		}
		e.Summaries = append(e.Summaries, ts)
		printSummary(e.out, ts)
	}

	if err := e.loadReference(); err != nil {
		return err
	}
	e.Scale = e.globalScale()

	dir := e.SummaryDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating summary folder")
	}
	if err := e.charts.RenderComparison(e, dir); err != nil {
		e.chartErrs = multierror.Append(e.chartErrs, err)
	}

	ts := time.Now().Format(timestampFormat)
	if err := e.generateMarkdown(dir, ts); err != nil {
		return err
	}
	if err := e.generateJSONReport(dir, ts); err != nil {
		return err
	}
	return e.chartErrs.ErrorOrNil()
}

// SummaryDir is <results>/sumarizado-<tests>.
func (e *Experiment) SummaryDir() string {
	return filepath.Join(e.ResultsDir, summaryName(e.Tests))
}

// SummarizeTest parses the rounds of a test in parallel, aggregates
// them and, when render is set, draws the round and test charts.
func (e *Experiment) SummarizeTest(test string, render bool) (*TestSummary, error) {
	dir := testDir(e.ResultsDir, test)
	names, err := roundDirs(dir)
	if err != nil {
		return nil, err
	}
	ts := &TestSummary{
		Name:        test,
		DisplayName: displayName(dir, test),
		Dir:         dir,
		Rounds:      make([]*Round, len(names)),
	}

	chartErrs := make([]error, len(names))
	var g errgroup.Group
	g.SetLimit(e.Workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			r, err := ParseRound(dir, test, name)
			if err != nil {
				return err
			}
			ts.Rounds[i] = r
			if render {
				chartErrs[i] = e.charts.RenderRound(test, ts.DisplayName, r)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range ts.Rounds {
		for _, w := range r.Warnings {
			glog.Warning(w)
		}
	}
	ts.Analyse()
	glog.V(1).Infof("%s: %d rounds, %d with CPU data", test, len(ts.Rounds), ts.RoundCount)

	if render {
		for _, err := range chartErrs {
			if err != nil {
				e.chartErrs = multierror.Append(e.chartErrs, err)
			}
		}
		if err := e.charts.RenderTest(ts); err != nil {
			e.chartErrs = multierror.Append(e.chartErrs, err)
		}
	}
	return ts, nil
}

// loadReference summarizes the -r test, reusing it when it is one of
// the tests. A missing directory only disables the reference chart.
func (e *Experiment) loadReference() error {
	if e.Reference == "" {
		return nil
	}
	for _, ts := range e.Summaries {
		if ts.Name == e.Reference {
			e.RefSummary = ts
			return nil
		}
	}
	dir := testDir(e.ResultsDir, e.Reference)
	if !util.IsDir(dir) {
		glog.Warningf("Aviso: Diretório do teste de referência %s não encontrado.", dir)
		return nil
	}
	fmt.Fprintf(e.out, "\nProcessando teste de referência %s ...\n", util.FormatLabel(e.Reference))
	ts, err := e.SummarizeTest(e.Reference, false)
	if err != nil {
		return err
	}
	e.RefSummary = ts
	return nil
}

// globalScale is the unit of every throughput in the reports.
func (e *Experiment) globalScale() util.BpsScale {
	var all []float64
	for _, ts := range e.Summaries {
		all = append(all, ts.ClientBps.Mean, ts.ServerBps.Mean)
	}
	return util.ChooseBpsScaleFor(all...)
}
