package report

import (
	"fmt"

	"github.com/alexanderramin/suivi/internal/domain"
)

// SeriesKind is the mark used to draw a series.
type SeriesKind string

const (
	SeriesBar       SeriesKind = "bar"
	SeriesLine      SeriesKind = "line"
	SeriesPie       SeriesKind = "pie"
	SeriesScatter   SeriesKind = "scatter"
	SeriesHistogram SeriesKind = "histogram"
	SeriesBox       SeriesKind = "box"
)

// Axis identifies the vertical axis a series is bound to.
type Axis int

const (
	AxisPrimary Axis = iota
	AxisSecondary
)

// Point is one (x, y) observation. X keeps its cell value so renderers can
// decide between categorical and continuous placement.
type Point struct {
	X domain.Value
	Y float64
}

// Series is one trace of a chart.
type Series struct {
	Name   string
	Kind   SeriesKind
	Axis   Axis
	X      domain.Column
	Y      domain.Column
	Points []Point
	// Bins is set for histogram series.
	Bins []Bin
	// Box is set for box series.
	Box *BoxStats
}

// Chart is a renderable chart built from a dataset and a ChartSpec.
type Chart struct {
	Title    string
	Kind     domain.ChartKind
	DualAxis bool
	Series   []Series
}

// Empty reports whether no series carries any data.
func (c *Chart) Empty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 || len(s.Bins) > 0 || (s.Box != nil && s.Box.N > 0) {
			return false
		}
	}
	return true
}

var seriesKinds = map[domain.ChartKind]SeriesKind{
	domain.ChartBar:       SeriesBar,
	domain.ChartLine:      SeriesLine,
	domain.ChartScatter:   SeriesScatter,
	domain.ChartHistogram: SeriesHistogram,
}

// BuildChart maps spec onto ds. It returns false when the spec is
// incomplete; zero rows still yield a valid chart.
func BuildChart(ds *domain.Dataset, spec domain.ChartSpec) (*Chart, bool) {
	if !spec.Complete() {
		return nil, false
	}

	chart := &Chart{Title: spec.Title, Kind: spec.Kind}
	if chart.Title == "" {
		chart.Title = spec.Kind.Label()
	}

	switch spec.Kind {
	case domain.ChartPie:
		if len(spec.Y) > 0 {
			x, y := spec.X[0], spec.Y[0]
			chart.Series = append(chart.Series, Series{
				Name:   seriesName(x, y),
				Kind:   SeriesPie,
				X:      x,
				Y:      y,
				Points: pieSlices(ds, x, y),
			})
		}
	case domain.ChartBoxPlot:
		for _, y := range spec.Y {
			stats := ComputeBoxStats(numbers(ds, y))
			chart.Series = append(chart.Series, Series{
				Name: string(y),
				Kind: SeriesBox,
				Y:    y,
				Box:  &stats,
			})
		}
	case domain.ChartCombined:
		chart.DualAxis = true
		x := spec.X[0]
		for _, y := range spec.Y {
			chart.Series = append(chart.Series, Series{
				Name:   seriesName(x, y),
				Kind:   SeriesBar,
				Axis:   AxisPrimary,
				X:      x,
				Y:      y,
				Points: points(ds, x, y),
			})
		}
		for _, y := range spec.SecondaryY {
			chart.Series = append(chart.Series, Series{
				Name:   seriesName(x, y),
				Kind:   SeriesLine,
				Axis:   AxisSecondary,
				X:      x,
				Y:      y,
				Points: points(ds, x, y),
			})
		}
	default:
		kind, ok := seriesKinds[spec.Kind]
		if !ok {
			kind = SeriesBar
		}
		for _, x := range spec.X {
			for _, y := range spec.Y {
				s := Series{Name: seriesName(x, y), Kind: kind, X: x, Y: y}
				if kind == SeriesHistogram {
					s.Bins = Histogram(ds, x, y)
				} else {
					s.Points = points(ds, x, y)
				}
				chart.Series = append(chart.Series, s)
			}
		}
	}
	return chart, true
}

func seriesName(x, y domain.Column) string {
	return fmt.Sprintf("%s - %s", x, y)
}

// points pairs every row's x cell with its y number. Rows without a y are
// dropped.
func points(ds *domain.Dataset, x, y domain.Column) []Point {
	var out []Point
	for _, row := range ds.Rows {
		f, ok := row.Get(ds, y).Float()
		if !ok {
			continue
		}
		out = append(out, Point{X: row.Get(ds, x), Y: f})
	}
	return out
}

// pieSlices sums y per distinct x label, in order of first appearance.
func pieSlices(ds *domain.Dataset, x, y domain.Column) []Point {
	idx := make(map[string]int)
	var out []Point
	for _, p := range points(ds, x, y) {
		l := p.X.Label()
		if i, ok := idx[l]; ok {
			out[i].Y += p.Y
			continue
		}
		idx[l] = len(out)
		out = append(out, p)
	}
	return out
}

func numbers(ds *domain.Dataset, col domain.Column) []float64 {
	var out []float64
	for _, v := range ds.Column(col) {
		if f, ok := v.Float(); ok {
			out = append(out, f)
		}
	}
	return out
}
