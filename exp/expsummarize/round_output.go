package main

import (
	"fmt"

	"github.com/relab/netexp/exp/util"
)

const (
	labelCPUMean  = "Uso médio de CPU (%)"
	labelCPU      = "Uso de CPU (%)"
	labelCore     = "Núcleo"
	labelTime     = "Tempo (s)"
	labelOrigin   = "Origem"
	labelRound    = "Rodada"
	labelTest     = "Teste"
	labelClient   = "Cliente"
	labelServer   = "Servidor"
	labelLossBar  = "Perda"
	roundsMeanTag = "(Média das Rodadas)"
)

func throughputLabel(scale util.BpsScale) string {
	return fmt.Sprintf("Vazão Média (%s)", scale.Name)
}

func coreNumbers(cores []string) []string {
	n := make([]string, len(cores))
	for i, c := range cores {
		n[i] = coreNumber(c)
	}
	return n
}

func coreLabels(cores []string) []string {
	n := make([]string, len(cores))
	for i, c := range cores {
		n[i] = util.FormatLabel(c)
	}
	return n
}

// throughputBars draws client and server side by side, in the unit that
// fits the larger of the two.
func throughputBars(title string, client, server util.Estimate) barChart {
	scale := util.ChooseBpsScaleFor(client.Mean, server.Mean)
	c, s := client.Scale(scale.Factor), server.Scale(scale.Factor)
	return barChart{
		Title:  title,
		XLabel: labelOrigin,
		YLabel: throughputLabel(scale),
		Groups: []string{labelClient, labelServer},
		Series: []barSeries{{
			Values: []float64{c.Mean, s.Mean},
			Errors: []float64{c.HalfWidth, s.HalfWidth},
		}},
	}
}

func lossBar(title string, metric string, loss util.Estimate) barChart {
	return barChart{
		Title:  title,
		YLabel: metric,
		Groups: []string{labelLossBar},
		Series: []barSeries{{
			Values: []float64{loss.Mean},
			Errors: []float64{loss.HalfWidth},
			Labels: []string{fmt.Sprintf("%.4f", loss.Mean)},
		}},
	}
}

func cpuLines(title string, cores []string, series [][]float64) lineChart {
	lc := lineChart{Title: title, XLabel: labelTime, YLabel: labelCPU}
	for i, core := range cores {
		lc.Series = append(lc.Series, lineSeries{Name: util.FormatLabel(core), Values: series[i]})
	}
	return lc
}

func throughputLines(title string, client, server []float64) lineChart {
	scale := util.ChooseBpsScaleFor(append(append([]float64(nil), client...), server...)...)
	return lineChart{
		Title:  title,
		XLabel: labelTime,
		YLabel: fmt.Sprintf("Vazão (%s)", scale.Name),
		Series: []lineSeries{
			{Name: labelClient, Values: scaled(client, scale)},
			{Name: labelServer, Values: scaled(server, scale)},
		},
	}
}

func lossLines(title, metric string, series []float64) lineChart {
	return lineChart{
		Title:  title,
		XLabel: labelTime,
		YLabel: metric,
		Series: []lineSeries{{Name: metric, Values: series}},
	}
}

func scaled(v []float64, scale util.BpsScale) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = f / scale.Factor
	}
	return out
}

// RenderRound writes the charts of one round into its directory.
func (ch charts) RenderRound(test string, display string, r *Round) error {
	cs := ch.into(r.Dir)
	prefix := r.Name + "-" + test + "-"
	where := util.FormatLabel(r.Name) + " - " + display

	if r.HasCPU {
		s := estimateSeries("", r.CPUUsage)
		cs.bars(prefix+"uso_de_cpu_barra", barChart{
			Title:  "Uso de CPU - " + where,
			XLabel: labelCore,
			YLabel: labelCPUMean,
			Groups: coreNumbers(r.Cores),
			Series: []barSeries{s},
		})
		cs.lines(prefix+"CPU_temporal", cpuLines("CPU Temporal - "+where, r.Cores, r.CPUSeries))
	}

	if r.HasThroughput {
		cs.bars(prefix+"vazao_barra", throughputBars("Vazão - "+where, r.ClientBps, r.ServerBps))
		cs.lines(prefix+"vazao_temporal", throughputLines("Vazão Temporal - "+where, r.ClientSeries, r.ServerSeries))
	}

	if r.HasLoss {
		metric := r.LossMetric.String()
		cs.bars(prefix+"perda_barra", lossBar("Perda - "+where, metric, r.Loss))
		cs.lines(prefix+"perda_temporal", lossLines("Perda Temporal - "+where, metric, r.LossSeries))
	}

	return cs.Err()
}
