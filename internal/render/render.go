// Package render draws dashboard charts and schedule views as PNG images
// using go-chart.
package render

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Options sizes the rendered images in pixels.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions sizes charts for a laptop screen.
func DefaultOptions() Options {
	return Options{Width: 1024, Height: 600}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

// Gruvbox palette shared with the terminal formatter.
var palette = []drawing.Color{
	{R: 0x83, G: 0xa5, B: 0x98, A: 255},
	{R: 0xfe, G: 0x80, B: 0x19, A: 255},
	{R: 0x8e, G: 0xc0, B: 0x7c, A: 255},
	{R: 0xd3, G: 0x86, B: 0x9b, A: 255},
	{R: 0xfa, G: 0xbd, B: 0x2f, A: 255},
	{R: 0xfb, G: 0x49, B: 0x34, A: 255},
	{R: 0x92, G: 0x83, B: 0x74, A: 255},
}

var (
	colorCompleted = drawing.Color{R: 0x98, G: 0x97, B: 0x1a, A: 255}
	colorRemaining = drawing.Color{R: 0x92, G: 0x83, B: 0x74, A: 255}
	colorText      = drawing.Color{R: 0x50, G: 0x49, B: 0x45, A: 255}
)

func seriesColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

func barStyle(col drawing.Color) chart.Style {
	return chart.Style{
		FillColor:   col.WithAlpha(200),
		StrokeColor: col,
		StrokeWidth: 1,
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

// pointStyle renders points only, with no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    4,
		DotColor:    col,
	}
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// paddedRange returns a non-degenerate range covering [lo, hi] with a 5%
// margin. When zero is true the range is widened to include zero, which
// bars grow from.
func paddedRange(lo, hi float64, zero bool) *chart.ContinuousRange {
	if zero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) || math.IsNaN(lo) || math.IsNaN(hi) {
		lo, hi = 0, 1
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * 0.05
	if zero && lo == 0 {
		return &chart.ContinuousRange{Min: 0, Max: hi + pad}
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// categoryTicks labels positions 0..n-1 and adds blank half-step ticks at
// both ends so the outer categories are not clipped.
func categoryTicks(labels []string) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(labels)+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, l := range labels {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: truncate(l, 24)})
	}
	return append(ticks, chart.Tick{Value: float64(len(labels)) - 0.5})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func tickStyle(n int) chart.Style {
	if n > 6 {
		return chart.Style{TextRotationDegrees: 45}
	}
	return chart.Style{}
}

func dateFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return time.Unix(0, int64(f)).UTC().Format("2006-01-02")
	}
	return ""
}

func writePNG(w io.Writer, ch chart.Chart) error {
	return writePNGFunc(w, ch.Title, func(dst io.Writer) error { return ch.Render(chart.PNG, dst) })
}

// writePNGFunc buffers the image so a failed render never leaves a
// partial file behind.
func writePNGFunc(w io.Writer, title string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("rendering %q: %w", title, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Placeholder renders a blank image carrying a centered message. It is
// used for incomplete specs and empty data.
func Placeholder(w io.Writer, title, message string, opts Options) error {
	opts = opts.normalized()
	ch := chart.Chart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		XAxis:      chart.XAxis{Style: chart.Style{Hidden: true}, Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		YAxis:      chart.YAxis{Style: chart.Style{Hidden: true}, Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		Series:     []chart.Series{messageSeries{Text: message}},
	}
	return writePNG(w, ch)
}
