package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/suivi/internal/app"
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/render"
	"github.com/alexanderramin/suivi/internal/report"
)

// FormatSummary renders the scalar metrics as a boxed key/value block.
func FormatSummary(s report.Summary) string {
	variance := FormatAmount(s.TotalVariance)
	switch {
	case s.TotalVariance < 0:
		variance = StyleRed.Render(variance)
	case s.TotalVariance > 0:
		variance = StyleGreen.Render(variance)
	}

	lines := []string{
		fmt.Sprintf("%s  %s", Dim("Rows      "), Bold(fmt.Sprint(s.RowCount))),
		fmt.Sprintf("%s  %s", Dim("Owners    "), Bold(fmt.Sprint(s.OwnerCount))),
		fmt.Sprintf("%s  %s Ar", Dim("Budget    "), Bold(FormatAmount(s.TotalBudget))),
		fmt.Sprintf("%s  %s", Dim("Progress  "), RenderProgress(s.MeanProgress, 20)),
		fmt.Sprintf("%s  %s Ar", Dim("Variance  "), variance),
	}
	return RenderBox("Summary", strings.Join(lines, "\n"))
}

// FormatFilters renders the active selection on one line.
func FormatFilters(sel domain.FilterSelection) string {
	if sel.IsEmpty() {
		return Dim("Filters: none")
	}
	var parts []string
	if len(sel.Statuses) > 0 {
		parts = append(parts, "status="+strings.Join(sel.Statuses, ","))
	}
	if len(sel.Owners) > 0 {
		parts = append(parts, "owner="+strings.Join(sel.Owners, ","))
	}
	if sel.MinStart != nil {
		parts = append(parts, "from="+FormatDate(sel.MinStart))
	}
	if sel.MaxEnd != nil {
		parts = append(parts, "to="+FormatDate(sel.MaxEnd))
	}
	return Dim("Filters: ") + StyleBlue.Render(strings.Join(parts, "  "))
}

// FormatChart renders a textual digest of one configured chart.
func FormatChart(n int, r app.ChartResult) string {
	var b strings.Builder
	if !r.Complete || r.Chart == nil {
		b.WriteString(Header(fmt.Sprintf("Chart %d", n)))
		b.WriteString("\n")
		b.WriteString(Dim(render.MsgIncomplete))
		b.WriteString("\n")
		return b.String()
	}

	c := r.Chart
	kind := c.Kind.Label()
	if c.DualAxis {
		kind += ", dual axis"
	}
	b.WriteString(Header(fmt.Sprintf("Chart %d: %s", n, c.Title)))
	b.WriteString("\n")
	b.WriteString(Dim(kind))
	b.WriteString("\n")
	if c.Empty() {
		b.WriteString(Dim(render.MsgNoData))
		b.WriteString("\n")
		return b.String()
	}

	for i, s := range c.Series {
		b.WriteString(StylePurple.Render("▸ " + s.Name))
		if s.Axis == report.AxisSecondary {
			b.WriteString(Dim(" (right axis)"))
		}
		b.WriteString("\n")
		switch s.Kind {
		case report.SeriesBox:
			b.WriteString(formatBox(s.Box))
		case report.SeriesHistogram:
			b.WriteString(formatBins(s.Bins))
		case report.SeriesPie:
			b.WriteString(formatPie(s.Points))
		default:
			b.WriteString(formatPoints(s.Points))
		}
		if i < len(c.Series)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

const maxDigestPoints = 8

func formatPoints(pts []report.Point) string {
	if len(pts) == 0 {
		return Dim("  no points") + "\n"
	}
	peak := 0.0
	for _, p := range pts {
		peak = math.Max(peak, math.Abs(p.Y))
	}
	var b strings.Builder
	for i, p := range pts {
		if i == maxDigestPoints {
			b.WriteString(Dim(fmt.Sprintf("  … %d more points", len(pts)-i)) + "\n")
			break
		}
		fmt.Fprintf(&b, "  %-18s %s %s\n", Truncate(p.X.String(), 18), hbar(p.Y, peak, 16), FormatAmount(p.Y))
	}
	return b.String()
}

func formatBins(bins []report.Bin) string {
	if len(bins) == 0 {
		return Dim("  no values") + "\n"
	}
	peak := 0.0
	for _, bin := range bins {
		peak = math.Max(peak, float64(bin.Count))
	}
	var b strings.Builder
	for _, bin := range bins {
		fmt.Fprintf(&b, "  %-18s %s %d\n", Truncate(bin.Label, 18), hbar(float64(bin.Count), peak, 16), bin.Count)
	}
	return b.String()
}

func formatPie(pts []report.Point) string {
	total := 0.0
	for _, p := range pts {
		if p.Y > 0 {
			total += p.Y
		}
	}
	if total == 0 {
		return Dim("  no positive slices") + "\n"
	}
	var b strings.Builder
	for _, p := range pts {
		if p.Y <= 0 {
			continue
		}
		fmt.Fprintf(&b, "  %-18s %5.1f%%  %s\n", Truncate(p.X.String(), 18), 100*p.Y/total, FormatAmount(p.Y))
	}
	return b.String()
}

func formatBox(s *report.BoxStats) string {
	if s == nil || s.N == 0 {
		return Dim("  no values") + "\n"
	}
	out := fmt.Sprintf("  n=%d  min=%s  q1=%s  median=%s  q3=%s  max=%s\n",
		s.N, FormatAmount(s.Min), FormatAmount(s.Q1), FormatAmount(s.Median), FormatAmount(s.Q3), FormatAmount(s.Max))
	if len(s.Outliers) > 0 {
		vals := make([]string, len(s.Outliers))
		for i, o := range s.Outliers {
			vals[i] = FormatAmount(o)
		}
		out += Dim("  outliers: "+strings.Join(vals, ", ")) + "\n"
	}
	return out
}

func hbar(v, peak float64, width int) string {
	if peak <= 0 {
		return strings.Repeat(" ", width)
	}
	n := int(math.Round(math.Abs(v) / peak * float64(width)))
	style := StyleBlue
	if v < 0 {
		style = StyleRed
	}
	return style.Render(strings.Repeat(filledBlock, n)) + strings.Repeat(" ", width-n)
}

// FormatDashboard renders a full dashboard response: filters, metrics,
// chart digests, both schedule views and the first rows of the table.
func FormatDashboard(resp *app.DashboardResponse, sel domain.FilterSelection, rows, width int) string {
	var b strings.Builder
	b.WriteString(Header(resp.Sheet))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%d of %d rows", resp.Filtered.Len(), resp.Source)), FormatFilters(sel))
	b.WriteString("\n")
	b.WriteString(FormatSummary(resp.Summary))
	b.WriteString("\n\n")
	for i, c := range resp.Charts {
		b.WriteString(FormatChart(i+1, c))
		b.WriteString("\n")
	}
	b.WriteString(FormatGantt(resp.Schedule, width))
	b.WriteString("\n")
	b.WriteString(FormatProgressView(resp.Schedule, width))
	b.WriteString("\n")
	b.WriteString(Header("Data"))
	b.WriteString("\n")
	b.WriteString(FormatDataset(resp.Filtered, rows))
	return b.String()
}
