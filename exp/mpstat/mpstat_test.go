package mpstat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoBlocks = `Linux 6.1.0 (host) 	01/02/2025 	_x86_64_	(2 CPU)

10:00:01     CPU    %usr   %nice    %sys %iowait    %irq   %soft  %steal  %guest  %gnice   %idle
10:00:02     all    1.00    0.00    0.50    0.00    0.00    0.00    0.00    0.00    0.00   98.50
10:00:02       0    2.00    0.00    1.00    0.00    0.00    0.00    0.00    0.00    0.00   97.00
10:00:02       1    0.00    0.00    0.00    0.00    0.00    0.00    0.00    0.00    0.00  100.00

10:00:02     CPU    %usr   %nice    %sys %iowait    %irq   %soft  %steal  %guest  %gnice   %idle
10:00:03     all   10.00    0.00    5.00    0.00    0.00    0.00    0.00    0.00    0.00   85.00
10:00:03       0   20.00    0.00   10.00    0.00    0.00    0.00    0.00    0.00    0.00   70,25
10:00:03       1    0.00    0.00    0.00    0.00    0.00    0.00    0.00    0.00    0.00   99.99
`

func TestParseActivePercentPerBlock(t *testing.T) {
	report, err := Parse(strings.NewReader(twoBlocks))
	require.NoError(t, err)

	assert.Equal(t, 2, report.CPUCount)
	assert.Equal(t, [][]float64{{3, 0}, {29.75, 0.01}}, report.Blocks)
}

func TestWriteCSV(t *testing.T) {
	report, err := Parse(strings.NewReader(twoBlocks))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, report.WriteCSV(&out))
	assert.Equal(t, "CPU_0,CPU_1\n3.0,0.0\n29.75,0.01\n", out.String())
}

func TestParseTwelveHourClockAndANSI(t *testing.T) {
	in := "\x1b[1m10:00:01 AM  CPU    %usr   %nice    %sys %iowait    %irq   %soft  %steal  %guest  %gnice   %idle\x1b[0m\r\n" +
		"10:00:02 AM    0    2.00    0.00    1.00    0.00    0.00    0.00    0.00    0.00    0.00   \x1b[32m90.00\x1b[0m\r\n"

	report, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{10}}, report.Blocks)
}

func TestParseSkipsNonNumericIdle(t *testing.T) {
	in := `10:00:01     CPU    %usr   %nice    %sys %iowait    %irq   %soft  %steal  %guest  %gnice   %idle
10:00:02       0    2.00    0.00    1.00    0.00    0.00    0.00    0.00    0.00    0.00   n/a
10:00:02       1    2.00    0.00    1.00    0.00    0.00    0.00    0.00    0.00    0.00   50.00
10:00:02       2    2.00    0.00    1.00
`
	report, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 1, report.CPUCount)
	assert.Equal(t, [][]float64{{50}}, report.Blocks)
}

func TestParseNoData(t *testing.T) {
	_, err := Parse(strings.NewReader("Linux 6.1.0 (host)\n\nAverage: all 1 2 3\n"))
	assert.Equal(t, ErrNoData, err)
}
