package main

import (
	"fmt"
	"io"

	"github.com/relab/netexp/exp/util"
)

// printSummary writes the per-test block shown while the summarizer
// runs.
func printSummary(w io.Writer, ts *TestSummary) {
	scale := util.ChooseBpsScaleFor(ts.ClientBps.Mean, ts.ServerBps.Mean)

	fmt.Fprintf(w, "\nResumo para %s:\n", ts.DisplayName)
	fmt.Fprintf(w, "\nUso de CPU por núcleo:\n")
	for i, core := range ts.Cores {
		fmt.Fprintf(w, "    %s: %.2f%%\n", util.FormatLabel(core), ts.CPUUsage[i].Mean)
	}

	fmt.Fprintf(w, "\nVazão:\n")
	fmt.Fprintf(w, "%-10s%-15s\n", "Origem", "Vazão ("+scale.Name+")")
	fmt.Fprintf(w, "%-10s%-15.2f\n", labelClient, ts.ClientBps.Mean/scale.Factor)
	fmt.Fprintf(w, "%-10s%-15.2f\n", labelServer, ts.ServerBps.Mean/scale.Factor)

	fmt.Fprintf(w, "\n%s:\n", ts.LossLabel())
	fmt.Fprintf(w, "%-10s%-15.4f\n", "Média", ts.Loss.Mean)

	fmt.Fprintf(w, "\nNúmero de rodadas computadas: %d\n\n", ts.RoundCount)
}
