package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"text/template"

	"github.com/pkg/errors"

	"github.com/relab/netexp/exp/expjsonreport"
	"github.com/relab/netexp/exp/util"
)

const noValue = "-"

type reportRow struct {
	Name   string
	Client string
	Server string
	Loss   string
	CPU    []string
}

type reportTest struct {
	Name        string
	DisplayName string
	LossLabel   string
	RoundCount  int
	Rows        []reportRow
}

type markdownReport struct {
	Title     string
	Timestamp string
	Unit      string
	ShowCI    bool
	Cores     []string
	Overview  []reportRow
	Tests     []reportTest
	Reference *reportRow
}

func formatEstimate(e util.Estimate, format string) string {
	if e.N == 0 {
		return noValue
	}
	return fmt.Sprintf(format+" ± "+format, e.Mean, e.HalfWidth)
}

func (e *Experiment) bps(est util.Estimate) string {
	return formatEstimate(est.Scale(e.Scale.Factor), "%.2f")
}

func (e *Experiment) summaryRow(name string, ts *TestSummary, cores []string) reportRow {
	row := reportRow{
		Name:   name,
		Client: e.bps(ts.ClientBps),
		Server: e.bps(ts.ServerBps),
		Loss:   formatEstimate(ts.Loss, "%.4f"),
		CPU:    make([]string, len(cores)),
	}
	for i, core := range cores {
		row.CPU[i] = noValue
		if u, ok := ts.CoreUsage(core); ok {
			row.CPU[i] = formatEstimate(u, "%.2f")
		}
	}
	return row
}

func (e *Experiment) roundRow(r *Round, cores []string) reportRow {
	row := reportRow{
		Name:   util.FormatLabel(r.Name),
		Client: noValue,
		Server: noValue,
		Loss:   noValue,
		CPU:    make([]string, len(cores)),
	}
	if r.HasThroughput {
		row.Client, row.Server = e.bps(r.ClientBps), e.bps(r.ServerBps)
	}
	if r.HasLoss {
		row.Loss = formatEstimate(r.Loss, "%.4f")
	}
	for i, core := range cores {
		row.CPU[i] = noValue
		for j, c := range r.Cores {
			if c == core {
				row.CPU[i] = formatEstimate(r.CPUUsage[j], "%.2f")
			}
		}
	}
	return row
}

func (e *Experiment) buildMarkdownReport(timestamp string) *markdownReport {
	cores := allCores(e.Summaries)
	rep := &markdownReport{
		Title:     summaryName(e.Tests),
		Timestamp: timestamp,
		Unit:      e.Scale.Name,
		ShowCI:    e.ShowCI,
		Cores:     coreLabels(cores),
	}
	for _, ts := range e.Summaries {
		rep.Overview = append(rep.Overview, e.summaryRow(ts.DisplayName, ts, cores))

		rt := reportTest{
			Name:        ts.Name,
			DisplayName: ts.DisplayName,
			LossLabel:   ts.LossLabel(),
			RoundCount:  ts.RoundCount,
		}
		for _, r := range ts.Rounds {
			rt.Rows = append(rt.Rows, e.roundRow(r, cores))
		}
		rt.Rows = append(rt.Rows, e.summaryRow("Agregado", ts, cores))
		rep.Tests = append(rep.Tests, rt)
	}
	if e.RefSummary != nil {
		row := e.summaryRow(e.RefSummary.DisplayName, e.RefSummary, cores)
		rep.Reference = &row
	}
	return rep
}

// generateMarkdown writes <summary dir>/sumarizado-<tests>.md.
func (e *Experiment) generateMarkdown(dir, timestamp string) error {
	b := new(bytes.Buffer)
	tmpl := template.Must(template.New("report").Parse(templateReport))
	if err := tmpl.Execute(b, e.buildMarkdownReport(timestamp)); err != nil {
		return errors.Wrap(err, "generateMarkdown")
	}

	file := filepath.Join(dir, summaryName(e.Tests)+".md")
	if err := ioutil.WriteFile(file, b.Bytes(), 0644); err != nil {
		return errors.Wrap(err, "generateMarkdown")
	}
	return nil
}

func jsonEstimate(e util.Estimate) expjsonreport.Estimate {
	return expjsonreport.Estimate{Mean: e.Mean, HalfWidth: e.HalfWidth, N: e.N}
}

func testReport(ts *TestSummary) expjsonreport.TestReport {
	tr := expjsonreport.TestReport{
		TestName:    ts.Name,
		DisplayName: ts.DisplayName,
		RoundCount:  ts.RoundCount,
		ClientBps:   jsonEstimate(ts.ClientBps),
		ServerBps:   jsonEstimate(ts.ServerBps),
		LossMetric:  ts.LossLabel(),
		Loss:        jsonEstimate(ts.Loss),
	}
	for i, core := range ts.Cores {
		tr.CPU = append(tr.CPU, expjsonreport.CoreReport{Core: core, Usage: jsonEstimate(ts.CPUUsage[i])})
	}
	return tr
}

// generateJSONReport writes <summary dir>/sumarizado-<tests>.json.
func (e *Experiment) generateJSONReport(dir, timestamp string) error {
	report := expjsonreport.JSONReport{
		ResultsFolder: e.ResultsDir,
		Timestamp:     timestamp,
	}
	for _, ts := range e.Summaries {
		report.Tests = append(report.Tests, testReport(ts))
	}
	if e.RefSummary != nil {
		ref := testReport(e.RefSummary)
		report.Reference = &ref
	}
	return report.Write(filepath.Join(dir, summaryName(e.Tests)+".json"))
}
