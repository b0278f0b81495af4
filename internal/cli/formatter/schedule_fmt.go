package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/suivi/internal/render"
	"github.com/alexanderramin/suivi/internal/report"
	"github.com/charmbracelet/lipgloss"
)

const (
	labelWidth   = 20
	minTrack     = 10
	partialBlock = "▒"
)

func trackWidth(width int) int {
	return max(width-labelWidth-14, minTrack)
}

// FormatGantt draws the interval view as a text timeline. Each task gets
// one row; every dated item of the task marks its span on that row.
func FormatGantt(s *report.Schedule, width int) string {
	var b strings.Builder
	b.WriteString(Header(render.GanttTitle))
	b.WriteString("\n")

	intervals := s.Intervals()
	if len(intervals) == 0 {
		b.WriteString(Dim(render.MsgNoData))
		b.WriteString("\n")
		return b.String()
	}

	lo, hi := intervals[0].Start, intervals[0].End
	var order []string
	byTask := make(map[string][]report.Interval)
	for _, iv := range intervals {
		if iv.Start.Before(lo) {
			lo = iv.Start
		}
		if iv.End.After(hi) {
			hi = iv.End
		}
		if _, ok := byTask[iv.Task]; !ok {
			order = append(order, iv.Task)
		}
		byTask[iv.Task] = append(byTask[iv.Task], iv)
	}
	hi = hi.Add(24 * time.Hour)
	span := hi.Sub(lo).Hours()
	track := trackWidth(width)

	col := func(t time.Time) int {
		c := int(math.Floor(t.Sub(lo).Hours() / span * float64(track)))
		return min(max(c, 0), track)
	}

	for _, task := range order {
		cells := make([]bool, track)
		for _, iv := range byTask[task] {
			from, to := col(iv.Start), col(iv.End.Add(24*time.Hour))
			to = max(to, from+1)
			for i := from; i < to && i < track; i++ {
				cells[i] = true
			}
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(s.Colors[task])))
		var row strings.Builder
		for _, on := range cells {
			if on {
				row.WriteString(filledBlock)
			} else {
				row.WriteString(" ")
			}
		}
		fmt.Fprintf(&b, "%-*s │%s│\n", labelWidth, Truncate(task, labelWidth), style.Render(row.String()))
	}
	fmt.Fprintf(&b, "%-*s  %s%*s\n", labelWidth, "", Dim(lo.Format("2006-01-02")),
		max(track-10, 0), Dim(hi.Add(-24*time.Hour).Format("2006-01-02")))
	return b.String()
}

// FormatProgressView draws the completed/remaining view as stacked text
// bars, one per task. Negative remaining durations draw as zero and are
// flagged next to the totals.
func FormatProgressView(s *report.Schedule, width int) string {
	var b strings.Builder
	b.WriteString(Header(render.ProgressTitle))
	b.WriteString("\n")

	segments := s.Stacked()
	if len(segments) == 0 {
		b.WriteString(Dim(render.MsgNoData))
		b.WriteString("\n")
		return b.String()
	}

	completed := make(map[string]float64)
	remaining := make(map[string]float64)
	overrun := make(map[string]bool)
	for _, seg := range segments {
		if seg.Completed != nil {
			completed[seg.Task] += math.Max(*seg.Completed, 0)
		}
		if seg.Remaining != nil {
			if *seg.Remaining < 0 {
				overrun[seg.Task] = true
			}
			remaining[seg.Task] += math.Max(*seg.Remaining, 0)
		}
	}

	peak := 0.0
	for _, task := range s.Tasks {
		peak = math.Max(peak, completed[task]+remaining[task])
	}
	track := trackWidth(width)
	cells := func(v float64) int {
		if peak == 0 {
			return 0
		}
		return int(math.Round(v / peak * float64(track)))
	}

	for _, task := range s.Tasks {
		c, r := completed[task], remaining[task]
		nc := cells(c)
		nr := min(cells(c+r)-nc, track-nc)
		bar := StyleGreen.Render(strings.Repeat(filledBlock, nc)) +
			StyleYellow.Render(strings.Repeat(partialBlock, max(nr, 0))) +
			strings.Repeat(" ", max(track-nc-max(nr, 0), 0))
		note := fmt.Sprintf("%s / %s", FormatAmount(c), FormatDays(c+r))
		if overrun[task] {
			note += StyleRed.Render(" !")
		}
		fmt.Fprintf(&b, "%-*s │%s│ %s\n", labelWidth, Truncate(task, labelWidth), bar, note)
	}
	fmt.Fprintf(&b, "%-*s  %s %s\n", labelWidth, "", StyleGreen.Render(filledBlock+" completed"), StyleYellow.Render(partialBlock+" remaining"))
	return b.String()
}

func hexColor(c report.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
