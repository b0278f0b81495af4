package render

import (
	"errors"
	"io"
	"math"
	"sort"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/report"
	"github.com/wcharczuk/go-chart/v2"
)

// Messages shown in place of a chart.
const (
	MsgIncomplete = "Select at least one X and one Y column."
	MsgNoData     = "No data for the current selection."
)

var ErrNilChart = errors.New("render: nil chart")

// Chart writes c as a PNG. Empty charts render the no-data placeholder.
func Chart(w io.Writer, c *report.Chart, opts Options) error {
	if c == nil {
		return ErrNilChart
	}
	opts = opts.normalized()
	if c.Empty() {
		return Placeholder(w, c.Title, MsgNoData, opts)
	}

	switch c.Kind {
	case domain.ChartPie:
		return pie(w, c, opts)
	case domain.ChartBoxPlot:
		return boxPlot(w, c, opts)
	case domain.ChartHistogram:
		return histogram(w, c, opts)
	default:
		return cartesian(w, c, opts)
	}
}

func pie(w io.Writer, c *report.Chart, opts Options) error {
	var values []chart.Value
	for i, p := range c.Series[0].Points {
		if p.Y <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: truncate(p.X.Label(), 24),
			Value: p.Y,
			Style: chart.Style{FillColor: seriesColor(i)},
		})
	}
	if len(values) == 0 {
		return Placeholder(w, c.Title, MsgNoData, opts)
	}
	pc := chart.PieChart{
		Title:  c.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Values: values,
	}
	return writePNGFunc(w, c.Title, func(dst io.Writer) error { return pc.Render(chart.PNG, dst) })
}

func boxPlot(w io.Writer, c *report.Chart, opts Options) error {
	labels := make([]string, len(c.Series))
	boxes := make([]report.BoxStats, len(c.Series))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, s := range c.Series {
		labels[i] = s.Name
		if s.Box == nil {
			continue
		}
		boxes[i] = *s.Box
		if s.Box.N > 0 {
			lo = math.Min(lo, s.Box.Min)
			hi = math.Max(hi, s.Box.Max)
		}
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		XAxis:      chart.XAxis{Ticks: categoryTicks(labels), TickStyle: tickStyle(len(labels))},
		YAxis:      chart.YAxis{Range: paddedRange(lo, hi, false)},
		Series:     []chart.Series{boxSeries{Name: c.Title, Style: barStyle(seriesColor(0)), Boxes: boxes}},
	}
	return writePNG(w, ch)
}

func histogram(w io.Writer, c *report.Chart, opts Options) error {
	cats := newCategories()
	for _, s := range c.Series {
		for _, b := range s.Bins {
			cats.add(b.Label)
		}
	}

	var series []chart.Series
	hi := 0.0
	for i, s := range c.Series {
		values := make([]float64, cats.len())
		for _, b := range s.Bins {
			values[cats.index(b.Label)] += float64(b.Count)
		}
		for _, v := range values {
			hi = math.Max(hi, v)
		}
		series = append(series, barSeries{
			Name:   s.Name,
			Style:  barStyle(seriesColor(i)),
			Values: values,
			Slot:   i,
			Slots:  len(c.Series),
		})
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		XAxis:      chart.XAxis{Name: xName(c), Ticks: categoryTicks(cats.labels), TickStyle: tickStyle(cats.len())},
		YAxis:      chart.YAxis{Name: "count", Range: paddedRange(0, hi, true)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return writePNG(w, ch)
}

// cartesian renders bar, line, scatter and combined charts. Bars and text
// X columns use a categorical axis; numeric and date X columns are
// continuous.
func cartesian(w io.Writer, c *report.Chart, opts Options) error {
	x := c.Series[0].X
	categorical := !x.IsNumeric() && !x.IsDate()
	for _, s := range c.Series {
		if s.Kind == report.SeriesBar {
			categorical = true
		}
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
	}

	var primary, secondary extent
	var bars []report.Series
	for _, s := range c.Series {
		if s.Kind == report.SeriesBar {
			bars = append(bars, s)
		}
	}

	if categorical {
		cats := newCategories()
		for _, s := range c.Series {
			for _, p := range s.Points {
				cats.add(p.X.Label())
			}
		}
		for i, s := range bars {
			values := make([]float64, cats.len())
			for _, p := range s.Points {
				values[cats.index(p.X.Label())] += p.Y
			}
			primary.include(values...)
			primary.zero = true
			ch.Series = append(ch.Series, barSeries{
				Name:   s.Name,
				Style:  barStyle(seriesColor(i)),
				Values: values,
				Slot:   i,
				Slots:  len(bars),
			})
		}
		for i, s := range c.Series {
			if s.Kind == report.SeriesBar || len(s.Points) == 0 {
				continue
			}
			xs := make([]float64, len(s.Points))
			ys := make([]float64, len(s.Points))
			for j, p := range s.Points {
				xs[j] = float64(cats.index(p.X.Label()))
				ys[j] = p.Y
			}
			ch.Series = append(ch.Series, continuous(s, i, xs, ys, &primary, &secondary))
		}
		ch.XAxis = chart.XAxis{Name: string(x), Ticks: categoryTicks(cats.labels), TickStyle: tickStyle(cats.len())}
	} else {
		var xe extent
		for i, s := range c.Series {
			pts := sortedPoints(s.Points, s.Kind == report.SeriesLine)
			if len(pts) == 0 {
				continue
			}
			xs := make([]float64, len(pts))
			ys := make([]float64, len(pts))
			for j, p := range pts {
				xs[j] = xValue(p.X)
				ys[j] = p.Y
			}
			xe.include(xs...)
			ch.Series = append(ch.Series, continuous(s, i, xs, ys, &primary, &secondary))
		}
		ch.XAxis = chart.XAxis{Name: string(x), Range: paddedRange(xe.lo, xe.hi, false)}
		if x.IsDate() {
			ch.XAxis.ValueFormatter = dateFormatter
		}
	}

	if len(ch.Series) == 0 {
		return Placeholder(w, c.Title, MsgNoData, opts)
	}

	ch.YAxis = chart.YAxis{Name: yName(c, report.AxisPrimary), Range: primary.rangeOrUnit()}
	if c.DualAxis && secondary.set {
		ch.YAxisSecondary = chart.YAxis{Name: yName(c, report.AxisSecondary), Range: secondary.rangeOrUnit()}
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return writePNG(w, ch)
}

func continuous(s report.Series, i int, xs, ys []float64, primary, secondary *extent) chart.Series {
	col := seriesColor(i)
	style := lineStyle(col)
	if s.Kind == report.SeriesScatter {
		style = pointStyle(col)
	}
	axis := chart.YAxisPrimary
	if s.Axis == report.AxisSecondary {
		axis = chart.YAxisSecondary
		secondary.include(ys...)
	} else {
		primary.include(ys...)
	}
	return chart.ContinuousSeries{Name: s.Name, Style: style, YAxis: axis, XValues: xs, YValues: ys}
}

// sortedPoints keeps points with a numeric or date X, ordered by X when
// byX is set.
func sortedPoints(pts []report.Point, byX bool) []report.Point {
	var out []report.Point
	for _, p := range pts {
		if !math.IsNaN(xValue(p.X)) {
			out = append(out, p)
		}
	}
	if byX {
		sort.SliceStable(out, func(i, j int) bool { return xValue(out[i].X) < xValue(out[j].X) })
	}
	return out
}

func xValue(v domain.Value) float64 {
	if f, ok := v.Float(); ok {
		return f
	}
	if t, ok := v.Time(); ok {
		return float64(t.UnixNano())
	}
	return math.NaN()
}

func xName(c *report.Chart) string {
	if len(c.Series) == 0 {
		return ""
	}
	return string(c.Series[0].X)
}

func yName(c *report.Chart, axis report.Axis) string {
	for _, s := range c.Series {
		if s.Axis == axis {
			return string(s.Y)
		}
	}
	return ""
}

// extent accumulates the value range of one axis.
type extent struct {
	lo, hi float64
	set    bool
	zero   bool
}

func (e *extent) include(vs ...float64) {
	for _, v := range vs {
		if math.IsNaN(v) {
			continue
		}
		if !e.set {
			e.lo, e.hi, e.set = v, v, true
			continue
		}
		e.lo = math.Min(e.lo, v)
		e.hi = math.Max(e.hi, v)
	}
}

func (e extent) rangeOrUnit() *chart.ContinuousRange {
	if !e.set {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	return paddedRange(e.lo, e.hi, e.zero)
}

// categories interns labels in order of first appearance.
type categories struct {
	labels []string
	idx    map[string]int
}

func newCategories() *categories {
	return &categories{idx: make(map[string]int)}
}

func (c *categories) add(label string) {
	if _, ok := c.idx[label]; !ok {
		c.idx[label] = len(c.labels)
		c.labels = append(c.labels, label)
	}
}

func (c *categories) index(label string) int {
	c.add(label)
	return c.idx[label]
}

func (c *categories) len() int { return len(c.labels) }
