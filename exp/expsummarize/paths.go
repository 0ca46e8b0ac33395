package main

import (
	"io/ioutil"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/relab/netexp/config"
)

const (
	roundPrefix   = "rodada_"
	summaryPrefix = "sumarizado-"

	kindCPU    = "mpstat"
	kindClient = "iperf3_client"
	kindServer = "iperf3_server"
)

var (
	roundNumber = regexp.MustCompile(`rodada_(\d+)`)
	digits      = regexp.MustCompile(`\d+`)
)

func testDir(results, test string) string {
	return filepath.Join(results, test)
}

// roundFile is <testDir>/<round>/<round>-<test>-<kind>.csv.
func roundFile(dir, round, test, kind string) string {
	return filepath.Join(dir, round, round+"-"+test+"-"+kind+".csv")
}

func confFile(dir, test string) string {
	return filepath.Join(dir, test+config.TestConfSuffix)
}

// summaryName is sumarizado-<tests in the given order>.
func summaryName(tests []string) string {
	return summaryPrefix + strings.Join(tests, "-")
}

// comparePrefix names cross-test charts after the sorted test names.
func comparePrefix(tests []string) string {
	sorted := append([]string(nil), tests...)
	sort.Strings(sorted)
	return strings.Join(sorted, "-")
}

// parseRoundNumber returns N of rodada_N, or -1.
func parseRoundNumber(name string) int {
	m := roundNumber.FindStringSubmatch(name)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return n
}

// coreNumber returns the digits of a core column name: "CPU_3" -> "3".
func coreNumber(col string) string {
	if d := digits.FindString(col); d != "" {
		return d
	}
	return col
}

// roundDirs lists the rodada_* directories of a test, sorted by round
// number and then by name.
func roundDirs(dir string) ([]string, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing rounds of %s", dir)
	}

	var rounds []string
	for _, fi := range entries {
		if fi.IsDir() && strings.HasPrefix(fi.Name(), roundPrefix) {
			rounds = append(rounds, fi.Name())
		}
	}
	sort.Slice(rounds, func(i, j int) bool {
		ni, nj := parseRoundNumber(rounds[i]), parseRoundNumber(rounds[j])
		if ni != nj {
			return ni < nj
		}
		return rounds[i] < rounds[j]
	})
	return rounds, nil
}
