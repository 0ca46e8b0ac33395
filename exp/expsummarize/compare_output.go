package main

import (
	"sort"
	"strings"

	"github.com/relab/netexp/exp/util"
)

// sorted returns the summaries ordered by test name.
func sorted(summaries []*TestSummary) []*TestSummary {
	out := append([]*TestSummary(nil), summaries...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func withCPU(summaries []*TestSummary) []*TestSummary {
	var out []*TestSummary
	for _, ts := range summaries {
		if len(ts.Cores) > 0 {
			out = append(out, ts)
		}
	}
	return out
}

func displayNames(summaries []*TestSummary) []string {
	names := make([]string, len(summaries))
	for i, ts := range summaries {
		names[i] = ts.DisplayName
	}
	return names
}

func testNames(summaries []*TestSummary) []string {
	names := make([]string, len(summaries))
	for i, ts := range summaries {
		names[i] = ts.Name
	}
	return names
}

// allCores lists every core column seen in any test, in first-seen
// order.
func allCores(summaries []*TestSummary) []string {
	var cores []string
	seen := make(map[string]bool)
	for _, ts := range summaries {
		for _, c := range ts.Cores {
			if !seen[c] {
				seen[c] = true
				cores = append(cores, c)
			}
		}
	}
	return cores
}

// matchCore finds the core column of a CPU number given on the command
// line: "1" matches "CPU_1", "cpu1" and "cpu_1".
func matchCore(cores []string, cpu string) (string, bool) {
	for _, c := range cores {
		k := strings.ToLower(c)
		if !strings.HasPrefix(k, "cpu") {
			continue
		}
		if strings.TrimPrefix(k[3:], "_") == cpu {
			return c, true
		}
	}
	return "", false
}

// RenderComparison writes the cross-test charts into the summary
// directory.
func (ch charts) RenderComparison(e *Experiment, dir string) error {
	cs := ch.into(dir)
	prefix := comparePrefix(e.Tests) + "-"
	tests := sorted(e.Summaries)

	if cpuTests := withCPU(tests); len(cpuTests) > 0 {
		cores := allCores(cpuTests)
		cs.bars(prefix+"uso_de_cpu_por_teste_barra_comparativo", cpuByTest(cpuTests, cores))
		cs.bars(prefix+"uso_de_cpu_por_nucleo_barra_comparativo", cpuByCore(cpuTests, cores))
		if len(e.CPUs) > 0 {
			name := strings.Join(testNames(cpuTests), "-") + "-" + cpuSuffix(e.CPUs) + "-comparativo_cpu_por_teste"
			cs.bars(name, cpuSubset(cpuTests, e.CPUs))
		}
	}

	if len(tests) > 0 {
		cs.bars(prefix+"perda_barra_comparativo", lossByTest(tests))
		cs.bars(prefix+"vazao_barra_comparativo_por_teste", throughputByTest(tests))
		cs.bars(prefix+"vazao_servidor_comparativo", serverByTest(tests))
		cs.lines(prefix+"perda_temporal_comparativo", lossOverTime(tests))
	}

	if e.RefSummary != nil && len(e.Summaries) > 0 {
		name := e.RefSummary.Name + "-" + strings.Join(e.Tests, "-") + "-comparativo_vazao_com_referencia"
		cs.bars(name, withReference(e.RefSummary, e.Summaries))
	}

	return cs.Err()
}

func cpuSuffix(cpus []string) string {
	s := make([]string, len(cpus))
	for i, c := range cpus {
		s[i] = "cpu_" + c
	}
	return strings.Join(s, "-")
}

func usageOf(ts *TestSummary, core string) util.Estimate {
	e, _ := ts.CoreUsage(core)
	return e
}

// cpuByTest groups by test, one bar per core.
func cpuByTest(tests []*TestSummary, cores []string) barChart {
	bc := barChart{
		Title:  "Uso de CPU por teste",
		XLabel: labelTest,
		YLabel: labelCPUMean,
		Groups: displayNames(tests),
	}
	for _, core := range cores {
		usage := make([]util.Estimate, len(tests))
		for i, ts := range tests {
			usage[i] = usageOf(ts, core)
		}
		bc.Series = append(bc.Series, estimateSeries(util.FormatLabel(core), usage))
	}
	return bc
}

// cpuByCore groups by core, one bar per test.
func cpuByCore(tests []*TestSummary, cores []string) barChart {
	bc := barChart{
		Title:  "Uso de CPU de cada teste por Núcleo",
		XLabel: labelCore,
		YLabel: labelCPUMean,
		Groups: coreLabels(cores),
	}
	for _, ts := range tests {
		usage := make([]util.Estimate, len(cores))
		for i, core := range cores {
			usage[i] = usageOf(ts, core)
		}
		bc.Series = append(bc.Series, estimateSeries(ts.DisplayName, usage))
	}
	return bc
}

// cpuSubset is cpuByTest restricted to the CPUs given with -c. A CPU a
// test does not have counts as zero.
func cpuSubset(tests []*TestSummary, cpus []string) barChart {
	bc := barChart{
		Title:  "Uso de CPU Comparativo por Teste (CPUs Selecionadas)",
		XLabel: labelTest,
		YLabel: labelCPUMean,
		Groups: displayNames(tests),
	}
	for _, cpu := range cpus {
		usage := make([]util.Estimate, len(tests))
		for i, ts := range tests {
			if core, ok := matchCore(ts.Cores, cpu); ok {
				usage[i] = usageOf(ts, core)
			}
		}
		bc.Series = append(bc.Series, estimateSeries("CPU "+cpu, usage))
	}
	return bc
}

func lossByTest(tests []*TestSummary) barChart {
	var metrics []LossMetric
	loss := make([]util.Estimate, len(tests))
	for i, ts := range tests {
		loss[i] = ts.Loss
		metrics = append(metrics, ts.LossMetrics...)
	}
	s := estimateSeries("", loss)
	s.Labels = formatLabels(s.Values, "%.4f")
	return barChart{
		Title:  "Perda Comparativo por Teste",
		XLabel: labelTest,
		YLabel: lossLabel(metrics...),
		Groups: displayNames(tests),
		Series: []barSeries{s},
	}
}

func throughputByTest(tests []*TestSummary) barChart {
	client := make([]util.Estimate, len(tests))
	server := make([]util.Estimate, len(tests))
	var all []float64
	for i, ts := range tests {
		client[i], server[i] = ts.ClientBps, ts.ServerBps
		all = append(all, ts.ClientBps.Mean, ts.ServerBps.Mean)
	}
	scale := util.ChooseBpsScaleFor(all...)
	return barChart{
		Title:  "Vazão média por teste",
		XLabel: labelTest,
		YLabel: throughputLabel(scale),
		Groups: displayNames(tests),
		Series: []barSeries{
			estimateSeries(labelClient, scaleAll(client, scale)),
			estimateSeries(labelServer, scaleAll(server, scale)),
		},
	}
}

func serverByTest(tests []*TestSummary) barChart {
	server := make([]util.Estimate, len(tests))
	for i, ts := range tests {
		server[i] = ts.ServerBps
	}
	scale := util.ChooseBpsScaleFor(util.MeansOf(server)...)
	return barChart{
		Title:  "Vazão do Servidor Comparativo",
		XLabel: labelTest,
		YLabel: "Vazão Média do Servidor (" + scale.Name + ")",
		Groups: displayNames(tests),
		Series: []barSeries{estimateSeries("", scaleAll(server, scale))},
	}
}

func lossOverTime(tests []*TestSummary) lineChart {
	var metrics []LossMetric
	lc := lineChart{
		Title:  "Perda Temporal Comparativo por Teste",
		XLabel: labelTime,
	}
	for _, ts := range tests {
		metrics = append(metrics, ts.LossMetrics...)
		lc.Series = append(lc.Series, lineSeries{Name: ts.DisplayName, Values: ts.LossSeries})
	}
	lc.YLabel = lossLabel(metrics...)
	return lc
}

// withReference puts the reference server throughput next to the
// server throughput of every test, in the order the tests were given.
func withReference(ref *TestSummary, tests []*TestSummary) barChart {
	refs := make([]util.Estimate, len(tests))
	server := make([]util.Estimate, len(tests))
	all := []float64{ref.ServerBps.Mean}
	for i, ts := range tests {
		refs[i] = ref.ServerBps
		server[i] = ts.ServerBps
		all = append(all, ts.ServerBps.Mean)
	}
	scale := util.ChooseBpsScaleFor(all...)
	return barChart{
		Title:  "Vazão do Servidor - Comparativo com Referência",
		XLabel: labelTest,
		YLabel: "Vazão Média do Servidor (" + scale.Name + ")",
		Groups: displayNames(tests),
		Series: []barSeries{
			estimateSeries("Referência", scaleAll(refs, scale)),
			estimateSeries(labelTest, scaleAll(server, scale)),
		},
	}
}
