// Package mpstat turns the text report of `mpstat -P ALL <interval>`
// into a CSV of per-core active percentages, one row per report block.
package mpstat

import (
	"bufio"
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/relab/netexp/exp/util"
)

// ErrNoData is returned when the input holds no per-core data line.
var ErrNoData = errors.New("Nenhum dado válido encontrado.")

// A per-core line has the timestamp, the core index and ten
// percentages; anything shorter is ignored.
const minFields = 12

var (
	ansiSeq    = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	headerLine = regexp.MustCompile(`^\d{2}:\d{2}:\d{2} (AM|PM)?\s+CPU\s+%usr`)
	coreLine   = regexp.MustCompile(`^\d{2}:\d{2}:\d{2} (AM|PM)?\s+\d+`)
)

// Report is the parsed mpstat output.
type Report struct {
	// One slice of active percentages per report block, in core order.
	Blocks [][]float64

	// Number of cores seen in the first block.
	CPUCount int
}

// Header returns CPU_0..CPU_{n-1}.
func (r *Report) Header() []string {
	h := make([]string, r.CPUCount)
	for i := range h {
		h[i] = "CPU_" + strconv.Itoa(i)
	}
	return h
}

func cleanLine(line string) string {
	line = ansiSeq.ReplaceAllString(line, "")
	line = strings.NewReplacer("\r", "", "\n", "").Replace(line)
	return strings.TrimSpace(line)
}

// Parse reads mpstat text. A header line closes the block in progress.
// For every per-core line the active percentage, 100 - %idle rounded
// to two decimals, is appended to the current block. The "all" line
// and lines with a non-numeric %idle are skipped.
func Parse(r io.Reader) (*Report, error) {
	var (
		report  Report
		current []float64
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := cleanLine(scanner.Text())

		if headerLine.MatchString(line) {
			if len(current) > 0 {
				report.Blocks = append(report.Blocks, current)
				current = nil
			}
			continue
		}

		if !coreLine.MatchString(line) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < minFields {
			continue
		}
		idle, err := util.ParseDecimal(fields[len(fields)-1])
		if err != nil {
			glog.V(1).Infof("mpstat: skipping line with %%idle %q", fields[len(fields)-1])
			continue
		}
		current = append(current, util.Round2(100-idle))
		if len(report.Blocks) == 0 {
			report.CPUCount++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "mpstat: reading input")
	}

	if len(current) > 0 {
		report.Blocks = append(report.Blocks, current)
	}
	if len(report.Blocks) == 0 {
		return nil, ErrNoData
	}
	return &report, nil
}

// WriteCSV writes the header and one row per block.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Header()); err != nil {
		return errors.Wrap(err, "mpstat: writing header")
	}
	for _, block := range r.Blocks {
		row := make([]string, len(block))
		for i, v := range block {
			row[i] = util.FormatFloat(v)
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "mpstat: writing row")
		}
	}
	cw.Flush()
	return cw.Error()
}
