package render

import (
	"io"
	"math"
	"time"

	"github.com/alexanderramin/suivi/internal/report"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	GanttTitle    = "Gantt"
	ProgressTitle = "Gantt with progress"
)

// taskRows maps each task to a row so the first task is drawn on top.
func taskRows(tasks []string) (map[string]int, []string) {
	n := len(tasks)
	rows := make(map[string]int, n)
	labels := make([]string, n)
	for i, t := range tasks {
		rows[t] = n - 1 - i
		labels[n-1-i] = t
	}
	return rows, labels
}

// Gantt renders the interval view: one bar per item from planned start to
// planned end, rows grouped by task and colored by task rank.
func Gantt(w io.Writer, s *report.Schedule, opts Options) error {
	opts = opts.normalized()
	intervals := s.Intervals()
	if len(intervals) == 0 {
		return Placeholder(w, GanttTitle, MsgNoData, opts)
	}

	var tasks []string
	seen := make(map[string]bool)
	for _, iv := range intervals {
		if !seen[iv.Task] {
			seen[iv.Task] = true
			tasks = append(tasks, iv.Task)
		}
	}
	rows, labels := taskRows(tasks)

	var xe extent
	bars := make([]hbar, 0, len(intervals))
	for _, iv := range intervals {
		from, to := timeValue(iv.Start), timeValue(iv.End)
		if to == from {
			// Same-day tasks still get a visible sliver.
			to = timeValue(iv.End.Add(24 * time.Hour))
		}
		xe.include(from, to)
		bars = append(bars, hbar{Row: rows[iv.Task], From: from, To: to, Color: toDrawing(iv.Color)})
	}

	ch := chart.Chart{
		Title:      GanttTitle,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		XAxis:      chart.XAxis{Range: paddedRange(xe.lo, xe.hi, false), ValueFormatter: dateFormatter},
		YAxis:      chart.YAxis{Ticks: categoryTicks(labels)},
		Series: []chart.Series{
			hbarSeries{Name: "Tasks", Style: barStyle(seriesColor(0)), Bars: bars, Thickness: 0.3},
		},
	}
	return writePNG(w, ch)
}

// Progress renders the stacked view: per task a completed segment followed
// by the remaining segment. Negative remaining durations are kept in the
// data but cannot be stacked, so they are drawn with zero length.
func Progress(w io.Writer, s *report.Schedule, opts Options) error {
	opts = opts.normalized()
	segments := s.Stacked()
	if len(segments) == 0 {
		return Placeholder(w, ProgressTitle, MsgNoData, opts)
	}

	rows, labels := taskRows(s.Tasks)
	completed := make([]float64, len(labels))
	remaining := make([]float64, len(labels))
	for _, seg := range segments {
		row := rows[seg.Task]
		if seg.Completed != nil {
			completed[row] += math.Max(*seg.Completed, 0)
		}
		if seg.Remaining != nil {
			remaining[row] += math.Max(*seg.Remaining, 0)
		}
	}

	var done, rest []hbar
	hi := 0.0
	for row := range labels {
		c, r := completed[row], remaining[row]
		done = append(done, hbar{Row: row, From: 0, To: c})
		rest = append(rest, hbar{Row: row, From: c, To: c + r})
		hi = math.Max(hi, c+r)
	}

	ch := chart.Chart{
		Title:      ProgressTitle,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		XAxis:      chart.XAxis{Name: "Duration (days)", Range: paddedRange(0, hi, true)},
		YAxis:      chart.YAxis{Name: "Tasks", Ticks: categoryTicks(labels)},
		Series: []chart.Series{
			hbarSeries{Name: "Completed", Style: barStyle(colorCompleted), Bars: done},
			hbarSeries{Name: "Remaining", Style: barStyle(colorRemaining), Bars: rest},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return writePNG(w, ch)
}

func timeValue(t time.Time) float64 {
	return float64(t.UnixNano())
}

func toDrawing(c report.Color) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(c.A * 255))}
}
