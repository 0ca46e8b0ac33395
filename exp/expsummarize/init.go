package main

import (
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/urfave/cli"

	"github.com/relab/netexp/config"
	"github.com/relab/netexp/exp/util"
)

const timestampFormat = "Mon Jan 2 15:04:05 2006"

// loadSettings reads <results>/sumarizar.ini. A missing file gives an
// empty Config so every getter returns its default.
func loadSettings(results string) (*config.Config, error) {
	file := filepath.Join(results, config.SummarizerINI)
	if ok, err := util.Exists(file); err != nil || !ok {
		return config.NewConfig(), err
	}
	glog.V(1).Infof("reading settings from %s", file)
	cfg, err := config.LoadINI(file, config.SummarizerSection)
	if err != nil {
		return nil, err
	}
	for _, k := range unknownKeys(cfg) {
		glog.Warningf("Aviso: chave desconhecida %q em %s.", k, file)
	}
	return cfg, nil
}

// Settings keys, each also a flag of the same name when it has one.
var settingsKeys = []string{
	config.WidthKey,
	config.HeightKey,
	config.WorkersKey,
	config.ShowCIKey,
	config.ShowMeanKey,
}

// unknownKeys lists, sorted, the keys of cfg that no setting reads.
func unknownKeys(cfg *config.Config) []string {
	var unknown []string
	for k := range cfg.CloneToKeyValueMap() {
		known := false
		for _, s := range settingsKeys {
			known = known || k == s
		}
		if !known {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// overridden lists the settings present in cfg that a flag replaces.
func overridden(cfg *config.Config, isSet func(string) bool) []string {
	var keys []string
	for _, k := range settingsKeys {
		if cfg.Has(k) && isSet(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// parseCPUs splits "1, 2,3" into {"1", "2", "3"}.
func parseCPUs(s string) []string {
	var cpus []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cpus = append(cpus, c)
		}
	}
	return cpus
}

// initOptions merges command line flags over the settings file.
func initOptions(c *cli.Context) (Options, error) {
	o := Options{
		ResultsDir: c.String("resultados"),
		Tests:      c.StringSlice("teste"),
		CPUs:       parseCPUs(c.String("cpus")),
		Reference:  c.String("referencia"),
	}
	if o.ResultsDir == "" || len(o.Tests) == 0 {
		return o, cli.NewExitError("Erro: informe o diretório de resultados (-d) e ao menos um teste (-t).", 1)
	}

	cfg, err := loadSettings(o.ResultsDir)
	if err != nil {
		return o, err
	}
	o.Width = cfg.GetFloat(config.WidthKey, config.DefWidth)
	o.Height = cfg.GetFloat(config.HeightKey, config.DefHeight)
	o.Workers = cfg.GetInt(config.WorkersKey, config.DefWorkers)
	o.ShowCI = cfg.GetBool(config.ShowCIKey, config.DefShowCI)
	o.ShowMean = cfg.GetBool(config.ShowMeanKey, config.DefShowMean)

	for _, k := range overridden(cfg, c.IsSet) {
		glog.V(1).Infof("flag --%s overrides %s from %s", k, k, config.SummarizerINI)
	}
	if c.IsSet("ic") {
		o.ShowCI = c.Bool("ic")
	}
	if c.IsSet("media") {
		o.ShowMean = c.Bool("media")
	}
	if c.IsSet("trabalhadores") {
		o.Workers = c.Int("trabalhadores")
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Width <= 0 || o.Height <= 0 {
		glog.Warningf("invalid chart size %gx%g, using %gx%g", o.Width, o.Height, config.DefWidth, config.DefHeight)
		o.Width, o.Height = config.DefWidth, config.DefHeight
	}
	return o, nil
}
