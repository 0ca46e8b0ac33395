package main

import (
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/relab/netexp/exp/util"
)

// Options control one summarizer invocation. Flags are merged over the
// optional sumarizar.ini of the results folder.
type Options struct {
	ResultsDir string
	Tests      []string
	CPUs       []string
	Reference  string

	ShowCI   bool
	ShowMean bool
	Workers  int

	// Chart size in inches.
	Width, Height float64
}

// LossMetric tells which column a loss value was read from. UDP loss is
// measured at the receiver, TCP retransmissions at the sender, and the
// two are not comparable.
type LossMetric int

const (
	LossNone LossMetric = iota
	LossPercent
	LossRetransmits
)

func (m LossMetric) String() string {
	switch m {
	case LossPercent:
		return "Perda (%)"
	case LossRetransmits:
		return "Retransmissões"
	}
	return "Perda"
}

// lossLabel is the axis title for a set of metrics: the metric itself
// when they agree, both names otherwise.
func lossLabel(metrics ...LossMetric) string {
	seen := LossNone
	for _, m := range metrics {
		if m == LossNone {
			continue
		}
		if seen != LossNone && seen != m {
			return "Perda/Retransmissões"
		}
		seen = m
	}
	return seen.String()
}

type Round struct {
	Name   string
	Number int
	Dir    string

	Warnings []string

	// CPU, per mpstat column.
	HasCPU    bool
	Cores     []string
	CPUUsage  []util.Estimate
	CPUSeries [][]float64

	// Throughput in bits per second.
	HasThroughput bool
	ClientBps     util.Estimate
	ServerBps     util.Estimate
	ClientSeries  []float64
	ServerSeries  []float64

	HasLoss    bool
	LossMetric LossMetric
	Loss       util.Estimate
	LossSeries []float64
}

// TestSummary aggregates the rounds of one test. Every estimate is
// taken over the per-round means.
type TestSummary struct {
	Name        string
	DisplayName string
	Dir         string

	Rounds []*Round

	// Rounds with CPU data.
	RoundCount int

	Cores     []string
	CPUUsage  []util.Estimate
	CPUSeries [][]float64

	ClientBps    util.Estimate
	ServerBps    util.Estimate
	ClientSeries []float64
	ServerSeries []float64

	LossMetrics []LossMetric
	Loss        util.Estimate
	LossSeries  []float64
}

// LossLabel is the axis title for the loss values of this test.
func (ts *TestSummary) LossLabel() string {
	return lossLabel(ts.LossMetrics...)
}

// CoreUsage returns the aggregate of the named core column.
func (ts *TestSummary) CoreUsage(core string) (util.Estimate, bool) {
	for i, c := range ts.Cores {
		if c == core {
			return ts.CPUUsage[i], true
		}
	}
	return util.Estimate{}, false
}

// Experiment is the whole summarizer run.
type Experiment struct {
	Options

	// Tests found on disk, in the order they were given.
	Summaries  []*TestSummary
	RefSummary *TestSummary

	// Unit shared by every throughput value of the report.
	Scale util.BpsScale

	out       io.Writer
	charts    charts
	chartErrs *multierror.Error
}
