// Package cpustat samples per-core CPU utilisation from /proc/stat.
//
// Utilisation over a window is the share of non-idle time between two
// snapshots: busy = total - idle - iowait, where total leaves out guest
// time since the kernel already counts it as user time.
package cpustat

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/prometheus/procfs"
)

// DefaultInterval is the sampling window of one output line.
const DefaultInterval = time.Second

// Times are the cumulative busy and total seconds of one core.
type Times struct {
	Busy  float64
	Total float64
}

// TimesOf reduces a /proc/stat cpuN line.
func TimesOf(c procfs.CPUStat) Times {
	total := c.User + c.Nice + c.System + c.Idle + c.Iowait +
		c.IRQ + c.SoftIRQ + c.Steal
	return Times{
		Busy:  total - c.Idle - c.Iowait,
		Total: total,
	}
}

// Percent is the busy share between two snapshots of the same core,
// clamped to [0, 100]. A window with no elapsed ticks gives 0.
func Percent(before, after Times) float64 {
	dTotal := after.Total - before.Total
	if dTotal <= 0 {
		return 0
	}
	p := (after.Busy - before.Busy) / dTotal * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// StatReader is implemented by procfs.FS.
type StatReader interface {
	Stat() (procfs.Stat, error)
}

// Sampler takes per-core snapshots through a StatReader.
type Sampler struct {
	src StatReader
}

// NewSampler reads the default /proc mount.
func NewSampler() (*Sampler, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, errors.Wrap(err, "cpustat: opening procfs")
	}
	return NewSamplerFrom(fs), nil
}

func NewSamplerFrom(src StatReader) *Sampler {
	return &Sampler{src: src}
}

// Snapshot returns the cumulative times of every core, by core index.
func (s *Sampler) Snapshot() ([]Times, error) {
	st, err := s.src.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "cpustat: reading stat")
	}
	out := make([]Times, len(st.CPU))
	for i, c := range st.CPU {
		out[i] = TimesOf(c)
	}
	return out, nil
}

// CoreCount is the number of cores listed in /proc/stat.
func (s *Sampler) CoreCount() (int, error) {
	t, err := s.Snapshot()
	if err != nil {
		return 0, err
	}
	return len(t), nil
}

// Sample blocks for interval and returns the utilisation of every core
// over that window.
func (s *Sampler) Sample(ctx context.Context, interval time.Duration) ([]float64, error) {
	before, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	after, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	if len(after) != len(before) {
		return nil, errors.Errorf("cpustat: core count changed from %d to %d", len(before), len(after))
	}

	pcts := make([]float64, len(after))
	for i := range after {
		pcts[i] = Percent(before[i], after[i])
	}
	return pcts, nil
}

// InvalidCores returns the requested indices outside [0, total).
func InvalidCores(cores []int, total int) []int {
	var invalid []int
	for _, c := range cores {
		if c < 0 || c >= total {
			invalid = append(invalid, c)
		}
	}
	return invalid
}

// FormatLine renders percentages as "12.34%, 5.00%".
func FormatLine(pcts []float64) string {
	s := make([]string, len(pcts))
	for i, p := range pcts {
		s[i] = fmt.Sprintf("%.2f%%", p)
	}
	return strings.Join(s, ", ")
}

// Monitor writes one line per interval with the utilisation of the
// given cores until duration has elapsed or ctx is done. The cores must
// have been validated with InvalidCores.
func (s *Sampler) Monitor(ctx context.Context, cores []int, duration, interval time.Duration, w io.Writer) error {
	end := time.Now().Add(duration)
	for time.Now().Before(end) {
		pcts, err := s.Sample(ctx, interval)
		if err == context.Canceled || err == context.DeadlineExceeded {
			glog.V(1).Infoln("cpustat: monitor stopped:", err)
			return nil
		}
		if err != nil {
			return err
		}

		selected := make([]float64, len(cores))
		for i, c := range cores {
			if c >= len(pcts) {
				return errors.Errorf("cpustat: core %d not in /proc/stat", c)
			}
			selected[i] = pcts[c]
		}
		if _, err := fmt.Fprintln(w, FormatLine(selected)); err != nil {
			return errors.Wrap(err, "cpustat: writing sample")
		}
	}
	return nil
}
