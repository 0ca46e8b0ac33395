package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/relab/netexp/exp/iperf"
	"github.com/relab/netexp/exp/util"
)

// ParseRound reads the three CSV files of one round and reduces them to
// per-round estimates. Missing files only add warnings; a malformed
// file is an error.
func ParseRound(dir, test, name string) (*Round, error) {
	r := &Round{
		Name:   name,
		Number: parseRoundNumber(name),
		Dir:    filepath.Join(dir, name),
	}

	cpuFile := roundFile(dir, name, test, kindCPU)
	cpu, err := r.readTable(cpuFile)
	if err != nil {
		return nil, err
	}
	client, err := r.readTable(roundFile(dir, name, test, kindClient))
	if err != nil {
		return nil, err
	}
	server, err := r.readTable(roundFile(dir, name, test, kindServer))
	if err != nil {
		return nil, err
	}

	if cpu == nil {
		r.warnf("Aviso: %s não encontrado.", cpuFile)
	} else if err := r.parseCPU(cpu); err != nil {
		return nil, err
	}

	if client == nil || server == nil {
		r.warnf("Aviso: Arquivos de vazão não encontrados em %s.", r.Dir)
	} else if err := r.parseThroughput(client, server); err != nil {
		return nil, err
	}

	if client == nil && server == nil {
		r.warnf("Aviso: Nenhum arquivo iperf3 encontrado para %s.", name)
	} else if err := r.parseLoss(client, server); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Round) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// readTable returns nil without error when the file does not exist.
func (r *Round) readTable(path string) (*Table, error) {
	t, err := ReadTable(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return t, err
}

func (r *Round) parseCPU(t *Table) error {
	r.HasCPU = true
	for _, col := range t.Header {
		values, err := t.Column(col)
		if err != nil {
			return err
		}
		r.Cores = append(r.Cores, col)
		r.CPUUsage = append(r.CPUUsage, util.NewEstimate(values))
		r.CPUSeries = append(r.CPUSeries, values)
	}
	return nil
}

func (r *Round) parseThroughput(client, server *Table) error {
	var err error
	r.HasThroughput = true
	r.ClientBps, r.ClientSeries, err = bpsColumn(client, iperf.ColBitsPerSec)
	if err != nil {
		return err
	}
	r.ServerBps, r.ServerSeries, err = bpsColumn(server, iperf.ColBitsPerSec, iperf.ColServerBitsPerSec)
	return err
}

// bpsColumn reduces the first throughput column found. A table without
// one, or without rows, counts as zero throughput.
func bpsColumn(t *Table, cols ...string) (util.Estimate, []float64, error) {
	col, ok := t.FirstColumn(cols...)
	if !ok || t.Rows() == 0 {
		return util.Estimate{}, nil, nil
	}
	values, err := t.Column(col)
	if err != nil {
		return util.Estimate{}, nil, err
	}
	return util.NewEstimate(values), values, nil
}

// selectLoss applies the loss policy: receiver-side UDP loss first,
// then sender-side TCP retransmissions.
func selectLoss(client, server *Table) (LossMetric, *Table, string) {
	if server != nil && server.Has(iperf.ColServerLostPercent) {
		return LossPercent, server, iperf.ColServerLostPercent
	}
	if client != nil && client.Has(iperf.ColRetransmits) {
		return LossRetransmits, client, iperf.ColRetransmits
	}
	return LossNone, nil, ""
}

func (r *Round) parseLoss(client, server *Table) error {
	r.HasLoss = true
	metric, t, col := selectLoss(client, server)
	r.LossMetric = metric
	if metric == LossNone {
		r.warnf("Aviso: sem coluna de perda ou retransmissões em %s; usando 0.", r.Name)
		return nil
	}

	values, err := t.Column(col)
	if err != nil {
		return err
	}
	r.Loss = util.NewEstimate(values)
	r.LossSeries = values
	return nil
}
