package main

import (
	"bytes"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gc "gopkg.in/check.v1"

	"github.com/relab/netexp/exp/expjsonreport"
)

func Test(t *testing.T) { gc.TestingT(t) }

const (
	cpuCSV = "CPU_0,CPU_1\n10,20\n30,40\n"

	udpClientCSV = "host_destino,porta_destino,protocolo,pacotes_perdidos,%_pacotes_perdidos,bytes_transferidos,bits_por_segundo\n" +
		"10.0.0.2,5201,UDP,0,0,125000,1000000.00\n" +
		"10.0.0.2,5201,UDP,0,0,375000,3000000.00\n"

	udpServerCSV = "total_bytes_transferidos,taxa_de_bits_por_segundo,jitter,total_pacotes_perdidos,porcentagem_pacotes_perdidos\n" +
		"125000,1000000,0.01,1,0.5\n" +
		"125000,1000000,0.02,3,1.5\n"

	tcpClientCSV = "bits_por_segundo,retransmissoes\n" +
		"4000000,2\n" +
		"6000000,4\n"
)

// -----------------------------------------------------------------------
// Initialization

type sumSuite struct {
	results string
}

var _ = gc.Suite(&sumSuite{})

func (s *sumSuite) SetUpTest(c *gc.C) {
	s.results = c.MkDir()
}

func (s *sumSuite) write(c *gc.C, content string, elem ...string) {
	path := filepath.Join(append([]string{s.results}, elem...)...)
	c.Assert(os.MkdirAll(filepath.Dir(path), 0755), gc.IsNil)
	c.Assert(ioutil.WriteFile(path, []byte(content), 0644), gc.IsNil)
}

func (s *sumSuite) round(c *gc.C, test, round, kind, content string) {
	s.write(c, content, test, round, round+"-"+test+"-"+kind+".csv")
}

// udp has three rounds with throughput; rodada_3 has no mpstat file.
func (s *sumSuite) udp(c *gc.C) {
	for _, r := range []string{"rodada_1", "rodada_2", "rodada_3"} {
		s.round(c, "udp", r, kindClient, udpClientCSV)
		s.round(c, "udp", r, kindServer, udpServerCSV)
	}
	s.round(c, "udp", "rodada_1", kindCPU, cpuCSV)
	s.round(c, "udp", "rodada_2", kindCPU, cpuCSV)
	s.write(c, "[Teste]\nNome = UDP 1G\n", "udp", "udp-conf.ini")
}

// tcp has one round and no server percent column.
func (s *sumSuite) tcp(c *gc.C) {
	s.round(c, "tcp", "rodada_1", kindCPU, cpuCSV)
	s.round(c, "tcp", "rodada_1", kindClient, tcpClientCSV)
	s.round(c, "tcp", "rodada_1", kindServer, "total_bytes_transferidos,taxa_de_bits_por_segundo\n1,5000000\n")
}

func (s *sumSuite) exists(c *gc.C, elem ...string) {
	path := filepath.Join(append([]string{s.results}, elem...)...)
	_, err := os.Stat(path)
	c.Check(err, gc.IsNil, gc.Commentf("missing %s", path))
}

func (s *sumSuite) missing(c *gc.C, elem ...string) {
	path := filepath.Join(append([]string{s.results}, elem...)...)
	_, err := os.Stat(path)
	c.Check(os.IsNotExist(err), gc.Equals, true, gc.Commentf("unexpected %s", path))
}

// -----------------------------------------------------------------------
// Tests: round parsing

func (s *sumSuite) TestRoundDirsSorted(c *gc.C) {
	for _, r := range []string{"rodada_10", "rodada_2", "rodada_1", "outros"} {
		c.Assert(os.MkdirAll(filepath.Join(s.results, "t", r), 0755), gc.IsNil)
	}
	s.write(c, "", "t", "rodada_9.txt")

	rounds, err := roundDirs(filepath.Join(s.results, "t"))
	c.Assert(err, gc.IsNil)
	c.Assert(rounds, gc.DeepEquals, []string{"rodada_1", "rodada_2", "rodada_10"})
}

func (s *sumSuite) TestParseRound(c *gc.C) {
	s.udp(c)
	r, err := ParseRound(filepath.Join(s.results, "udp"), "udp", "rodada_1")
	c.Assert(err, gc.IsNil)

	c.Assert(r.Number, gc.Equals, 1)
	c.Assert(r.Warnings, gc.HasLen, 0)
	c.Assert(r.HasCPU, gc.Equals, true)
	c.Assert(r.Cores, gc.DeepEquals, []string{"CPU_0", "CPU_1"})
	c.Assert(r.CPUUsage[0].Mean, gc.Equals, 20.0)
	c.Assert(r.CPUUsage[1].Mean, gc.Equals, 30.0)

	c.Assert(r.HasThroughput, gc.Equals, true)
	c.Assert(r.ClientBps.Mean, gc.Equals, 2e6)
	c.Assert(r.ServerBps.Mean, gc.Equals, 1e6)
	c.Assert(r.ServerBps.HalfWidth, gc.Equals, 0.0)

	c.Assert(r.LossMetric, gc.Equals, LossPercent)
	c.Assert(r.Loss.Mean, gc.Equals, 1.0)
	c.Assert(r.LossSeries, gc.DeepEquals, []float64{0.5, 1.5})
}

func (s *sumSuite) TestParseRoundMissingCPU(c *gc.C) {
	s.udp(c)
	r, err := ParseRound(filepath.Join(s.results, "udp"), "udp", "rodada_3")
	c.Assert(err, gc.IsNil)
	c.Assert(r.HasCPU, gc.Equals, false)
	c.Assert(r.HasThroughput, gc.Equals, true)
	c.Assert(r.Warnings, gc.HasLen, 1)
	c.Assert(r.Warnings[0], gc.Matches, "Aviso: .*rodada_3-udp-mpstat.csv não encontrado.")
}

func (s *sumSuite) TestLossFallsBackToRetransmissions(c *gc.C) {
	s.round(c, "tcp", "rodada_1", kindClient, tcpClientCSV)
	r, err := ParseRound(filepath.Join(s.results, "tcp"), "tcp", "rodada_1")
	c.Assert(err, gc.IsNil)

	c.Assert(r.HasThroughput, gc.Equals, false)
	c.Assert(r.HasLoss, gc.Equals, true)
	c.Assert(r.LossMetric, gc.Equals, LossRetransmits)
	c.Assert(r.Loss.Mean, gc.Equals, 3.0)
}

func (s *sumSuite) TestServerLossWinsOverRetransmissions(c *gc.C) {
	s.round(c, "mix", "rodada_1", kindClient, tcpClientCSV)
	s.round(c, "mix", "rodada_1", kindServer, udpServerCSV)
	r, err := ParseRound(filepath.Join(s.results, "mix"), "mix", "rodada_1")
	c.Assert(err, gc.IsNil)
	c.Assert(r.LossMetric, gc.Equals, LossPercent)
	c.Assert(r.Loss.Mean, gc.Equals, 1.0)
}

func (s *sumSuite) TestNoLossColumn(c *gc.C) {
	s.tcp(c)
	s.round(c, "tcp", "rodada_1", kindClient, "bits_por_segundo\n1\n")
	r, err := ParseRound(filepath.Join(s.results, "tcp"), "tcp", "rodada_1")
	c.Assert(err, gc.IsNil)
	c.Assert(r.LossMetric, gc.Equals, LossNone)
	c.Assert(r.Loss.N, gc.Equals, 0)
	c.Assert(r.Warnings, gc.HasLen, 1)
	c.Assert(r.LossMetric.String(), gc.Equals, "Perda")
}

func (s *sumSuite) TestNoIperfFiles(c *gc.C) {
	s.round(c, "t", "rodada_1", kindCPU, cpuCSV)
	r, err := ParseRound(filepath.Join(s.results, "t"), "t", "rodada_1")
	c.Assert(err, gc.IsNil)
	c.Assert(r.HasLoss, gc.Equals, false)
	c.Assert(r.Warnings, gc.HasLen, 2)
}

func (s *sumSuite) TestMalformedCSV(c *gc.C) {
	s.round(c, "t", "rodada_1", kindCPU, "CPU_0\nabc\n")
	_, err := ParseRound(filepath.Join(s.results, "t"), "t", "rodada_1")
	c.Assert(err, gc.ErrorMatches, `.*"abc" is not a number`)
}

// -----------------------------------------------------------------------
// Tests: tables and labels

func (s *sumSuite) TestTableColumn(c *gc.C) {
	s.write(c, "a, b\n1,\n2,x\n", "t.csv")
	t, err := ReadTable(filepath.Join(s.results, "t.csv"))
	c.Assert(err, gc.IsNil)
	c.Assert(t.Header, gc.DeepEquals, []string{"a", "b"})
	c.Assert(t.Rows(), gc.Equals, 2)

	a, err := t.Column("a")
	c.Assert(err, gc.IsNil)
	c.Assert(a, gc.DeepEquals, []float64{1, 2})

	_, err = t.Column("b")
	c.Assert(err, gc.ErrorMatches, `.*row 3 column "b".*`)
	_, err = t.Column("c")
	c.Assert(err, gc.ErrorMatches, `.*no column "c"`)

	col, ok := t.FirstColumn("c", "b", "a")
	c.Assert(ok, gc.Equals, true)
	c.Assert(col, gc.Equals, "b")
}

func (s *sumSuite) TestTableEmptyCell(c *gc.C) {
	s.write(c, "a\n1\n\"\"\n3\n", "t.csv")
	t, err := ReadTable(filepath.Join(s.results, "t.csv"))
	c.Assert(err, gc.IsNil)
	a, err := t.Column("a")
	c.Assert(err, gc.IsNil)
	c.Assert(a, gc.HasLen, 3)
	c.Assert(math.IsNaN(a[1]), gc.Equals, true)
}

func (s *sumSuite) TestReadTableMissing(c *gc.C) {
	_, err := ReadTable(filepath.Join(s.results, "nope.csv"))
	c.Assert(os.IsNotExist(err), gc.Equals, true)
}

func (*sumSuite) TestLossLabel(c *gc.C) {
	c.Assert(lossLabel(), gc.Equals, "Perda")
	c.Assert(lossLabel(LossNone), gc.Equals, "Perda")
	c.Assert(LossNone.String(), gc.Equals, "Perda")
	c.Assert(lossLabel(LossNone, LossRetransmits), gc.Equals, "Retransmissões")
	c.Assert(lossLabel(LossPercent, LossPercent), gc.Equals, "Perda (%)")
	c.Assert(lossLabel(LossPercent, LossRetransmits), gc.Equals, "Perda/Retransmissões")
}

func (*sumSuite) TestMatchCore(c *gc.C) {
	cores := []string{"CPU_0", "CPU_1", "CPU_12"}
	core, ok := matchCore(cores, "1")
	c.Assert(ok, gc.Equals, true)
	c.Assert(core, gc.Equals, "CPU_1")
	_, ok = matchCore(cores, "2")
	c.Assert(ok, gc.Equals, false)
}

func (*sumSuite) TestNames(c *gc.C) {
	c.Assert(summaryName([]string{"udp", "tcp"}), gc.Equals, "sumarizado-udp-tcp")
	c.Assert(comparePrefix([]string{"udp", "tcp"}), gc.Equals, "tcp-udp")
	c.Assert(parseRoundNumber("rodada_12"), gc.Equals, 12)
	c.Assert(parseRoundNumber("outros"), gc.Equals, -1)
	c.Assert(coreNumber("CPU_3"), gc.Equals, "3")
	c.Assert(cpuSuffix([]string{"1", "2"}), gc.Equals, "cpu_1-cpu_2")
}

// -----------------------------------------------------------------------
// Tests: whole run

func (s *sumSuite) TestSummarizeTest(c *gc.C) {
	s.udp(c)
	e := NewExperiment(Options{ResultsDir: s.results, Tests: []string{"udp"}}, ioutil.Discard)
	ts, err := e.SummarizeTest("udp", false)
	c.Assert(err, gc.IsNil)

	c.Assert(ts.DisplayName, gc.Equals, "UDP 1G")
	c.Assert(ts.Rounds, gc.HasLen, 3)
	c.Assert(ts.RoundCount, gc.Equals, 2)
	c.Assert(ts.CPUUsage[0].N, gc.Equals, 2)
	c.Assert(ts.ClientBps.N, gc.Equals, 3)
	c.Assert(ts.ClientBps.Mean, gc.Equals, 2e6)
	c.Assert(ts.ClientSeries, gc.DeepEquals, []float64{1e6, 3e6})
	c.Assert(ts.LossLabel(), gc.Equals, "Perda (%)")
}

func (s *sumSuite) TestRun(c *gc.C) {
	s.udp(c)
	s.tcp(c)

	out := new(bytes.Buffer)
	e := NewExperiment(Options{
		ResultsDir: s.results,
		Tests:      []string{"udp", "tcp", "ausente"},
		CPUs:       []string{"1"},
		Reference:  "udp",
		ShowCI:     true,
		ShowMean:   true,
		Workers:    2,
	}, out)
	c.Assert(e.Run(), gc.IsNil)

	c.Assert(e.Summaries, gc.HasLen, 2)
	c.Assert(e.RefSummary, gc.Equals, e.Summaries[0])
	c.Assert(e.Scale.Name, gc.Equals, "Mbps")
	c.Assert(out.String(), gc.Matches, "(?s).*Resumo para UDP 1G.*Número de rodadas computadas: 2.*")

	s.exists(c, "udp", "rodada_1", "rodada_1-udp-uso_de_cpu_barra.png")
	s.exists(c, "udp", "rodada_3", "rodada_3-udp-vazao_barra.svg")
	s.exists(c, "udp", "udp-vazao_barra.png")
	s.exists(c, "tcp", "tcp-perda_barra.svg")

	sum := "sumarizado-udp-tcp-ausente"
	s.exists(c, sum, "ausente-tcp-udp-vazao_barra_comparativo_por_teste.png")
	s.exists(c, sum, "tcp-udp-cpu_1-comparativo_cpu_por_teste.svg")
	s.exists(c, sum, "udp-udp-tcp-ausente-comparativo_vazao_com_referencia.png")

	md, err := ioutil.ReadFile(filepath.Join(s.results, sum, sum+".md"))
	c.Assert(err, gc.IsNil)
	c.Assert(strings.Contains(string(md), "| UDP 1G | 2.00 ± 0.00 | 1.00 ± 0.00 |"), gc.Equals, true)
	c.Assert(strings.Contains(string(md), "| Agregado |"), gc.Equals, true)

	report, err := expjsonreport.Read(filepath.Join(s.results, sum, sum+".json"))
	c.Assert(err, gc.IsNil)
	c.Assert(report.Tests, gc.HasLen, 2)
	c.Assert(report.Tests[1].LossMetric, gc.Equals, "Retransmissões")
	c.Assert(report.Reference, gc.NotNil)
	c.Assert(report.Reference.TestName, gc.Equals, "udp")
}

func (s *sumSuite) TestRunSeparateReference(c *gc.C) {
	s.udp(c)
	s.tcp(c)

	e := NewExperiment(Options{
		ResultsDir: s.results,
		Tests:      []string{"tcp"},
		Reference:  "udp",
		Workers:    2,
	}, ioutil.Discard)
	c.Assert(e.Run(), gc.IsNil)

	c.Assert(e.RefSummary, gc.NotNil)
	c.Assert(e.RefSummary.Name, gc.Equals, "udp")
	c.Assert(e.RefSummary.RoundCount, gc.Equals, 2)
	s.exists(c, "sumarizado-tcp", "udp-tcp-comparativo_vazao_com_referencia.png")
	s.exists(c, "sumarizado-tcp", "udp-tcp-comparativo_vazao_com_referencia.svg")

	// The reference gets no charts of its own.
	s.missing(c, "udp", "udp-vazao_barra.png")
	s.missing(c, "udp", "rodada_1", "rodada_1-udp-vazao_barra.png")

	report, err := expjsonreport.Read(filepath.Join(s.results, "sumarizado-tcp", "sumarizado-tcp.json"))
	c.Assert(err, gc.IsNil)
	c.Assert(report.Tests, gc.HasLen, 1)
	c.Assert(report.Reference, gc.NotNil)
	c.Assert(report.Reference.TestName, gc.Equals, "udp")
}

func (s *sumSuite) TestRunMissingReference(c *gc.C) {
	s.tcp(c)

	e := NewExperiment(Options{
		ResultsDir: s.results,
		Tests:      []string{"tcp"},
		Reference:  "nada",
	}, ioutil.Discard)
	c.Assert(e.Run(), gc.IsNil)

	c.Assert(e.RefSummary, gc.IsNil)
	s.missing(c, "sumarizado-tcp", "nada-tcp-comparativo_vazao_com_referencia.png")
	s.exists(c, "sumarizado-tcp", "sumarizado-tcp.md")

	report, err := expjsonreport.Read(filepath.Join(s.results, "sumarizado-tcp", "sumarizado-tcp.json"))
	c.Assert(err, gc.IsNil)
	c.Assert(report.Reference, gc.IsNil)
}

// -----------------------------------------------------------------------
// Tests: settings file

func (s *sumSuite) TestLoadSettings(c *gc.C) {
	s.write(c, "[sumarizar]\nlargura = 10\nic = true\ncor = azul\n", "sumarizar.ini")
	cfg, err := loadSettings(s.results)
	c.Assert(err, gc.IsNil)
	c.Assert(cfg.GetFloat("largura", 0), gc.Equals, 10.0)
	c.Assert(unknownKeys(cfg), gc.DeepEquals, []string{"cor"})

	flagSet := func(k string) bool { return k == "ic" || k == "media" }
	c.Assert(overridden(cfg, flagSet), gc.DeepEquals, []string{"ic"})
}

func (s *sumSuite) TestLoadSettingsMissing(c *gc.C) {
	cfg, err := loadSettings(s.results)
	c.Assert(err, gc.IsNil)
	c.Assert(unknownKeys(cfg), gc.HasLen, 0)
	c.Assert(overridden(cfg, func(string) bool { return true }), gc.HasLen, 0)
}
