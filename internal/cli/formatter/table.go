package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	colGap       = 2
	maxCellWidth = 28
)

// RenderTable renders an aligned table with a header separator line.
// Columns are padded to the widest visible cell; cells longer than
// maxCellWidth are truncated.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	clip := func(s string) string {
		if lipgloss.Width(s) > maxCellWidth {
			return Truncate(s, maxCellWidth)
		}
		return s
	}

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = max(widths[i], lipgloss.Width(clip(h)))
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(clip(row[i])))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = clip(cells[i])
			}
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			b.WriteString(style(cell))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}

	return b.String()
}

// FormatDataset renders up to limit rows of ds as a table. A non-positive
// limit renders every row.
func FormatDataset(ds *domain.Dataset, limit int) string {
	if ds == nil || len(ds.Headers) == 0 {
		return Dim("No data loaded.")
	}
	if ds.Len() == 0 {
		return Dim("No rows match the current filters.")
	}

	n := ds.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		cells := make([]string, len(ds.Headers))
		for j, v := range ds.Rows[i] {
			cells[j] = v.String()
		}
		rows[i] = cells
	}

	out := RenderTable(ds.Headers, rows)
	if n < ds.Len() {
		out += Dim(fmt.Sprintf("… %d more rows\n", ds.Len()-n))
	}
	return out
}
