package main

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/relab/netexp/exp/util"
)

// Every chart is written in both formats.
var chartFormats = []string{".png", ".svg"}

// errEmptyChart is returned for charts without data. Such charts are
// skipped, not reported.
var errEmptyChart = errors.New("nothing to draw")

const (
	groupWidth  = 0.8
	maxBarWidth = 0.5
	headroom    = 1.15
)

// charts renders and saves the figures of one run.
type charts struct {
	width, height vg.Length
	showCI        bool
	showMean      bool
}

func newCharts(o Options) charts {
	return charts{
		width:    vg.Length(o.Width) * vg.Inch,
		height:   vg.Length(o.Height) * vg.Inch,
		showCI:   o.ShowCI,
		showMean: o.ShowMean,
	}
}

// barSeries is one colour of a grouped bar chart: one value per group.
type barSeries struct {
	Name   string
	Values []float64
	Errors []float64

	// Text drawn above each bar. Values with two decimals if nil.
	Labels []string
}

type barChart struct {
	Title, XLabel, YLabel string

	// Tick label of every group.
	Groups []string
	Series []barSeries
}

type lineSeries struct {
	Name   string
	Values []float64
}

// lineChart plots series against their sample index, one sample per
// second.
type lineChart struct {
	Title, XLabel, YLabel string
	Series                []lineSeries
}

// estimateSeries splits estimates into values and half-widths.
func estimateSeries(name string, es []util.Estimate) barSeries {
	s := barSeries{Name: name, Values: make([]float64, len(es)), Errors: make([]float64, len(es))}
	for i, e := range es {
		s.Values[i] = e.Mean
		s.Errors[i] = e.HalfWidth
	}
	return s
}

func formatLabels(values []float64, format string) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = fmt.Sprintf(format, v)
	}
	return labels
}

// bars draws rectangles centred on X with height Y. Unlike
// plotter.BarChart the width is in data units, so error bars and labels
// placed at the same X line up with every bar of a group.
type bars struct {
	plotter.XYs
	Width     float64
	Color     color.Color
	LineStyle draw.LineStyle
}

func (b *bars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, pt := range b.XYs {
		x0, x1 := trX(pt.X-b.Width/2), trX(pt.X+b.Width/2)
		y0, y1 := trY(0), trY(pt.Y)
		poly := []vg.Point{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
		c.FillPolygon(b.Color, c.ClipPolygonY(poly))
		c.StrokeLines(b.LineStyle, c.ClipLinesY(append(poly, poly[0]))...)
	}
}

func (b *bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	for _, pt := range b.XYs {
		xmin = math.Min(xmin, pt.X-b.Width/2)
		xmax = math.Max(xmax, pt.X+b.Width/2)
		ymin = math.Min(ymin, pt.Y)
		ymax = math.Max(ymax, pt.Y)
	}
	return
}

func (b *bars) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.Color, pts)
	c.StrokeLines(b.LineStyle, append(pts, pts[0]))
}

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Legend.Top = true
	return p
}

// Bars lays out len(Series) bars per group, centred on the group's
// tick.
func (ch charts) Bars(bc barChart) (*plot.Plot, error) {
	p := newPlot(bc.Title, bc.XLabel, bc.YLabel)
	p.Add(plotter.NewGrid())

	k := len(bc.Series)
	if k == 0 || len(bc.Groups) == 0 {
		return nil, errors.Wrapf(errEmptyChart, "chart %q", bc.Title)
	}
	width := math.Min(groupWidth/float64(k), maxBarWidth)

	var (
		top   float64
		drawn []float64
	)
	for j, s := range bc.Series {
		offset := (float64(j) - float64(k-1)/2) * width
		pts := make(plotter.XYs, len(s.Values))
		yerrs := make(plotter.YErrors, len(s.Values))
		for i, v := range s.Values {
			if !isFinite(v) {
				v = 0
			}
			pts[i].X = float64(i) + offset
			pts[i].Y = v
			if i < len(s.Errors) && isFinite(s.Errors[i]) {
				yerrs[i].Low, yerrs[i].High = s.Errors[i], s.Errors[i]
			}
			hi := v
			if ch.showCI {
				hi += yerrs[i].High
			}
			top = math.Max(top, hi)
			drawn = append(drawn, v)
		}

		b := &bars{
			XYs:       pts,
			Width:     width,
			Color:     plotutil.Color(j),
			LineStyle: plotter.DefaultLineStyle,
		}
		p.Add(b)
		if s.Name != "" {
			p.Legend.Add(s.Name, b)
		}

		if ch.showCI {
			eb, err := plotter.NewYErrorBars(errorPoints{XYs: pts, YErrors: yerrs})
			if err != nil {
				return nil, errors.Wrapf(err, "chart %q", bc.Title)
			}
			p.Add(eb)
		}

		labels := s.Labels
		if labels == nil {
			labels = formatLabels(yValues(pts), "%.2f")
		}
		l, err := barLabels(pts, labels)
		if err != nil {
			return nil, errors.Wrapf(err, "chart %q", bc.Title)
		}
		p.Add(l)
	}

	if ch.showMean && len(drawn) > 0 {
		mean := util.MeanFloat64(drawn...)
		f := plotter.NewFunction(func(float64) float64 { return mean })
		f.LineStyle.Color = color.Black
		f.LineStyle.Width = vg.Points(1)
		f.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(f)
		p.Legend.Add(fmt.Sprintf("Média (%.2f)", mean), f)
	}

	p.NominalX(bc.Groups...)
	p.X.Min = -0.5
	p.X.Max = float64(len(bc.Groups)) - 0.5
	p.Y.Min = 0
	p.Y.Max = top * headroom
	if p.Y.Max == 0 {
		p.Y.Max = 1
	}
	return p, nil
}

func yValues(pts plotter.XYs) []float64 {
	v := make([]float64, len(pts))
	for i := range pts {
		v[i] = pts[i].Y
	}
	return v
}

func barLabels(pts plotter.XYs, labels []string) (*plotter.Labels, error) {
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = text.XCenter
		l.TextStyle[i].YAlign = text.YBottom
	}
	l.Offset = vg.Point{Y: vg.Points(2)}
	return l, nil
}

// Lines draws every non-empty series. Non-finite samples are left out.
func (ch charts) Lines(lc lineChart) (*plot.Plot, error) {
	p := newPlot(lc.Title, lc.XLabel, lc.YLabel)
	p.Add(plotter.NewGrid())

	var drawn int
	for i, s := range lc.Series {
		pts := make(plotter.XYs, 0, len(s.Values))
		for x, y := range s.Values {
			if isFinite(y) {
				pts = append(pts, plotter.XY{X: float64(x), Y: y})
			}
		}
		if len(pts) == 0 {
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "chart %q", lc.Title)
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(s.Name, l)
		drawn++
	}
	if drawn == 0 {
		return nil, errors.Wrapf(errEmptyChart, "chart %q", lc.Title)
	}
	p.Y.Min = 0
	return p, nil
}

// Save writes <dir>/<name>.png and <dir>/<name>.svg.
func (ch charts) Save(p *plot.Plot, dir, name string) error {
	var result *multierror.Error
	for _, ext := range chartFormats {
		file := filepath.Join(dir, name+ext)
		if err := p.Save(ch.width, ch.height, file); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "saving %s", file))
		}
	}
	return result.ErrorOrNil()
}

// chartSet renders a list of charts into one directory and collects
// every failure.
type chartSet struct {
	ch  charts
	dir string
	err *multierror.Error
}

func (ch charts) into(dir string) *chartSet {
	return &chartSet{ch: ch, dir: dir}
}

func (cs *chartSet) bars(name string, bc barChart) {
	p, err := cs.ch.Bars(bc)
	cs.save(name, p, err)
}

func (cs *chartSet) lines(name string, lc lineChart) {
	p, err := cs.ch.Lines(lc)
	cs.save(name, p, err)
}

func (cs *chartSet) save(name string, p *plot.Plot, err error) {
	if errors.Cause(err) == errEmptyChart {
		glog.V(1).Infof("skipping %s: %v", name, err)
		return
	}
	if err == nil {
		err = cs.ch.Save(p, cs.dir, name)
	}
	if err != nil {
		cs.err = multierror.Append(cs.err, errors.Wrap(err, name))
		return
	}
	glog.V(2).Infof("wrote %s", filepath.Join(cs.dir, name))
}

func (cs *chartSet) Err() error {
	return cs.err.ErrorOrNil()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
