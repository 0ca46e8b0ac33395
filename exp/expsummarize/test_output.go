package main

import (
	"fmt"
	"strconv"

	"github.com/relab/netexp/exp/util"
)

// RenderTest writes the aggregate charts of one test into its
// directory.
func (ch charts) RenderTest(ts *TestSummary) error {
	cs := ch.into(ts.Dir)
	prefix := ts.Name + "-"
	name := ts.DisplayName

	if len(ts.Cores) > 0 {
		cs.bars(prefix+"uso_de_cpu_barra", barChart{
			Title:  name + " - Uso de CPU " + roundsMeanTag,
			XLabel: labelCore,
			YLabel: labelCPUMean,
			Groups: coreNumbers(ts.Cores),
			Series: []barSeries{estimateSeries("", ts.CPUUsage)},
		})
		cs.lines(prefix+"CPU_temporal", cpuLines(name+" - CPU Temporal "+roundsMeanTag, ts.Cores, ts.CPUSeries))
		cs.bars(prefix+"uso_de_cpu_barra_por_rodada", cpuByRound(ts))
	}

	if ts.ClientBps.N > 0 {
		cs.bars(prefix+"vazao_barra", throughputBars(name+" - Vazão "+roundsMeanTag, ts.ClientBps, ts.ServerBps))
		cs.lines(prefix+"vazao_temporal", throughputLines(name+" - Vazão Temporal", ts.ClientSeries, ts.ServerSeries))
		cs.bars(prefix+"vazao_barra_comparativo_por_rodada", throughputByRound(ts))
	}

	if ts.Loss.N > 0 {
		label := ts.LossLabel()
		cs.bars(prefix+"perda_barra", lossBar(name+" - Perda "+roundsMeanTag, label, ts.Loss))
		cs.lines(prefix+"perda_temporal", lossLines(name+" - Perda Temporal "+roundsMeanTag, label, ts.LossSeries))
		cs.bars(prefix+"perda_barra_comparativo", lossByRound(ts))
	}

	return cs.Err()
}

func roundTick(r *Round) string {
	if r.Number >= 0 {
		return strconv.Itoa(r.Number)
	}
	return r.Name
}

// cpuByRound groups by core, one bar per round.
func cpuByRound(ts *TestSummary) barChart {
	bc := barChart{
		Title:  ts.DisplayName + " - Comparativo do uso de CPU por rodada",
		XLabel: labelCore,
		YLabel: labelCPUMean,
		Groups: coreLabels(ts.Cores),
	}
	for _, r := range ts.Rounds {
		if !r.HasCPU {
			continue
		}
		usage := make([]util.Estimate, len(ts.Cores))
		for i, core := range ts.Cores {
			for j, c := range r.Cores {
				if c == core {
					usage[i] = r.CPUUsage[j]
				}
			}
		}
		bc.Series = append(bc.Series, estimateSeries("Rodada "+roundTick(r), usage))
	}
	return bc
}

// throughputByRound groups by round, client and server side by side.
func throughputByRound(ts *TestSummary) barChart {
	var (
		ticks          []string
		client, server []util.Estimate
		all            []float64
	)
	for _, r := range ts.Rounds {
		if !r.HasThroughput {
			continue
		}
		ticks = append(ticks, roundTick(r))
		client = append(client, r.ClientBps)
		server = append(server, r.ServerBps)
		all = append(all, r.ClientBps.Mean, r.ServerBps.Mean)
	}
	scale := util.ChooseBpsScaleFor(all...)
	return barChart{
		Title:  ts.DisplayName + " - Vazão média por rodada",
		XLabel: labelRound,
		YLabel: throughputLabel(scale),
		Groups: ticks,
		Series: []barSeries{
			estimateSeries(labelClient, scaleAll(client, scale)),
			estimateSeries(labelServer, scaleAll(server, scale)),
		},
	}
}

// lossByRound has one bar per round, each labelled with its metric.
func lossByRound(ts *TestSummary) barChart {
	var (
		ticks  []string
		labels []string
		loss   []util.Estimate
	)
	for _, r := range ts.Rounds {
		if !r.HasLoss {
			continue
		}
		ticks = append(ticks, roundTick(r))
		loss = append(loss, r.Loss)
		labels = append(labels, fmt.Sprintf("%.4f (%s)", r.Loss.Mean, r.LossMetric))
	}
	label := ts.LossLabel()
	s := estimateSeries("", loss)
	s.Labels = labels
	return barChart{
		Title:  ts.DisplayName + " - " + label + " por rodada",
		XLabel: labelRound,
		YLabel: label,
		Groups: ticks,
		Series: []barSeries{s},
	}
}

func scaleAll(es []util.Estimate, scale util.BpsScale) []util.Estimate {
	out := make([]util.Estimate, len(es))
	for i, e := range es {
		out[i] = e.Scale(scale.Factor)
	}
	return out
}
