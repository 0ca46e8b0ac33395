package main

import (
	"github.com/golang/glog"

	"github.com/relab/netexp/config"
	"github.com/relab/netexp/exp/util"
)

// displayName reads Nome from the [Teste] section of the test's INI
// file, falling back to a formatted directory name.
func displayName(dir, test string) string {
	fallback := util.FormatLabel(test)
	file := confFile(dir, test)
	if ok, _ := util.Exists(file); !ok {
		return fallback
	}
	cfg, err := config.LoadINI(file, config.TestSection)
	if err != nil {
		glog.Warningf("Aviso: %v", err)
		return fallback
	}
	return cfg.GetString(config.TestNameKey, fallback)
}

// Analyse aggregates the rounds of the summary. Each metric only uses
// the rounds that produced it.
func (ts *TestSummary) Analyse() {
	ts.analyseCPU()
	ts.analyseThroughput()
	ts.analyseLoss()
}

func (ts *TestSummary) analyseCPU() {
	means := make(map[string][]float64)
	series := make(map[string][][]float64)
	ts.RoundCount = 0
	ts.Cores = nil

	for _, r := range ts.Rounds {
		if !r.HasCPU {
			continue
		}
		ts.RoundCount++
		for i, core := range r.Cores {
			if _, seen := means[core]; !seen {
				ts.Cores = append(ts.Cores, core)
			}
			means[core] = append(means[core], r.CPUUsage[i].Mean)
			series[core] = append(series[core], r.CPUSeries[i])
		}
	}

	ts.CPUUsage = make([]util.Estimate, len(ts.Cores))
	ts.CPUSeries = make([][]float64, len(ts.Cores))
	for i, core := range ts.Cores {
		ts.CPUUsage[i] = util.NewEstimate(means[core])
		ts.CPUSeries[i] = util.MeanSeries(series[core]...)
		ts.logTruncation(core, series[core], len(ts.CPUSeries[i]))
	}
}

func (ts *TestSummary) analyseThroughput() {
	var (
		client, server             []float64
		clientSeries, serverSeries [][]float64
	)
	for _, r := range ts.Rounds {
		if !r.HasThroughput {
			continue
		}
		client = append(client, r.ClientBps.Mean)
		server = append(server, r.ServerBps.Mean)
		if r.ClientSeries != nil {
			clientSeries = append(clientSeries, r.ClientSeries)
		}
		if r.ServerSeries != nil {
			serverSeries = append(serverSeries, r.ServerSeries)
		}
	}
	ts.ClientBps = util.NewEstimate(client)
	ts.ServerBps = util.NewEstimate(server)

	// Client and server are drawn on one time axis, so both are cut to
	// the shortest series of either side.
	all := append(append([][]float64(nil), clientSeries...), serverSeries...)
	n := util.CommonLength(all...)
	ts.logTruncation("throughput", all, n)
	ts.ClientSeries = truncate(util.MeanSeries(clientSeries...), n)
	ts.ServerSeries = truncate(util.MeanSeries(serverSeries...), n)
}

func (ts *TestSummary) analyseLoss() {
	var (
		means  []float64
		series [][]float64
	)
	ts.LossMetrics = nil
	for _, r := range ts.Rounds {
		if !r.HasLoss {
			continue
		}
		means = append(means, r.Loss.Mean)
		ts.LossMetrics = append(ts.LossMetrics, r.LossMetric)
		if r.LossSeries != nil {
			series = append(series, r.LossSeries)
		}
	}
	ts.Loss = util.NewEstimate(means)
	ts.LossSeries = util.MeanSeries(series...)
	ts.logTruncation("loss", series, len(ts.LossSeries))
}

// logTruncation reports samples dropped by averaging series of
// different lengths.
func (ts *TestSummary) logTruncation(metric string, series [][]float64, n int) {
	if longest := util.LongestLength(series...); longest > n {
		glog.V(1).Infof("%s: %s over time cut from %d to %d samples", ts.Name, metric, longest, n)
	}
}

func truncate(v []float64, n int) []float64 {
	if len(v) > n {
		return v[:n]
	}
	return v
}
