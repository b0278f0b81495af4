package render

import (
	"math"

	"github.com/alexanderramin/suivi/internal/report"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// The series below implement chart.Series for marks go-chart lacks:
// grouped bars, box plots and horizontal interval bars. Axis ranges are
// always set explicitly by the caller, so none of them provide values.

// barSeries draws one bar per category. Slot and Slots place the bar
// within its category group when several bar series share an axis.
type barSeries struct {
	Name   string
	Style  chart.Style
	YAxis  chart.YAxisType
	Values []float64
	Slot   int
	Slots  int
}

func (s barSeries) GetName() string           { return s.Name }
func (s barSeries) GetStyle() chart.Style     { return s.Style }
func (s barSeries) GetYAxis() chart.YAxisType { return s.YAxis }
func (s barSeries) Validate() error           { return nil }

func (s barSeries) Render(r chart.Renderer, canvas chart.Box, xr, yr chart.Range, defaults chart.Style) {
	style := s.Style.InheritFrom(defaults)
	slots := max(s.Slots, 1)
	group := 0.8 * math.Abs(float64(xr.Translate(1)-xr.Translate(0)))
	width := group / float64(slots)
	zero := canvas.Bottom - yr.Translate(0)

	for i, v := range s.Values {
		center := float64(canvas.Left + xr.Translate(float64(i)))
		left := int(center - group/2 + float64(s.Slot)*width)
		top := canvas.Bottom - yr.Translate(v)
		chart.Draw.Box(r, chart.Box{
			Left:   left,
			Right:  left + max(int(width), 1),
			Top:    min(top, zero),
			Bottom: max(top, zero),
		}, style)
	}
}

// boxSeries draws one box-and-whisker glyph per category.
type boxSeries struct {
	Name  string
	Style chart.Style
	Boxes []report.BoxStats
}

func (s boxSeries) GetName() string           { return s.Name }
func (s boxSeries) GetStyle() chart.Style     { return s.Style }
func (s boxSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s boxSeries) Validate() error           { return nil }

func (s boxSeries) Render(r chart.Renderer, canvas chart.Box, xr, yr chart.Range, defaults chart.Style) {
	half := 0.25 * math.Abs(float64(xr.Translate(1)-xr.Translate(0)))
	y := func(v float64) int { return canvas.Bottom - yr.Translate(v) }

	for i, b := range s.Boxes {
		if b.N == 0 {
			continue
		}
		style := s.Style.InheritFrom(defaults)
		style.FillColor = seriesColor(i).WithAlpha(160)
		style.StrokeColor = seriesColor(i)
		cx := canvas.Left + xr.Translate(float64(i))
		left, right := cx-int(half), cx+int(half)

		chart.Draw.Box(r, chart.Box{Left: left, Right: right, Top: y(b.Q3), Bottom: y(b.Q1)}, style)

		style.GetStrokeOptions().WriteToRenderer(r)
		line(r, left, y(b.Median), right, y(b.Median))
		line(r, cx, y(b.Q3), cx, y(b.UpperWhisker))
		line(r, cx, y(b.Q1), cx, y(b.LowerWhisker))
		line(r, cx-int(half/2), y(b.UpperWhisker), cx+int(half/2), y(b.UpperWhisker))
		line(r, cx-int(half/2), y(b.LowerWhisker), cx+int(half/2), y(b.LowerWhisker))

		for _, o := range b.Outliers {
			r.SetFillColor(style.StrokeColor)
			r.Circle(3, cx, y(o))
			r.Fill()
		}
	}
}

func line(r chart.Renderer, x1, y1, x2, y2 int) {
	r.MoveTo(x1, y1)
	r.LineTo(x2, y2)
	r.Stroke()
}

// hbar is one horizontal bar spanning From..To on row Row. A non-zero
// Color overrides the series fill.
type hbar struct {
	Row   int
	From  float64
	To    float64
	Color drawing.Color
}

// hbarSeries draws horizontal bars, used for the interval and progress
// views where rows are tasks and X is time or days.
type hbarSeries struct {
	Name      string
	Style     chart.Style
	Bars      []hbar
	Thickness float64 // fraction of a row
}

func (s hbarSeries) GetName() string           { return s.Name }
func (s hbarSeries) GetStyle() chart.Style     { return s.Style }
func (s hbarSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s hbarSeries) Validate() error           { return nil }

func (s hbarSeries) Render(r chart.Renderer, canvas chart.Box, xr, yr chart.Range, defaults chart.Style) {
	thickness := s.Thickness
	if thickness <= 0 {
		thickness = 0.4
	}
	half := thickness / 2 * math.Abs(float64(yr.Translate(1)-yr.Translate(0)))

	for _, b := range s.Bars {
		if b.To <= b.From {
			continue
		}
		style := s.Style.InheritFrom(defaults)
		if !b.Color.IsZero() {
			style.FillColor = b.Color
			style.StrokeColor = b.Color
		}
		cy := canvas.Bottom - yr.Translate(float64(b.Row))
		chart.Draw.Box(r, chart.Box{
			Left:   canvas.Left + xr.Translate(b.From),
			Right:  canvas.Left + xr.Translate(b.To),
			Top:    cy - int(half),
			Bottom: cy + max(int(half), 1),
		}, style)
	}
}

// messageSeries draws centered text and nothing else.
type messageSeries struct {
	Text string
}

func (s messageSeries) GetName() string           { return "" }
func (s messageSeries) GetStyle() chart.Style     { return chart.Style{} }
func (s messageSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s messageSeries) Validate() error           { return nil }

func (s messageSeries) Render(r chart.Renderer, canvas chart.Box, _, _ chart.Range, defaults chart.Style) {
	style := chart.Style{FontSize: 14, FontColor: colorText}.InheritFrom(defaults)
	style.GetTextOptions().WriteToRenderer(r)
	tb := r.MeasureText(s.Text)
	x := canvas.Left + (canvas.Width()-tb.Width())/2
	y := canvas.Top + (canvas.Height()+tb.Height())/2
	r.Text(s.Text, x, y)
}
