package formatter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatAmount renders a number with space-separated thousands and at most
// two decimals, e.g. 1234567.5 -> "1 234 567.5".
func FormatAmount(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "--"
	}
	s := strconv.FormatFloat(math.Abs(f), 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if f < 0 && s != "0" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// FormatDays renders a duration in days, e.g. "12 j" or "2.5 j".
func FormatDays(f float64) string {
	return FormatAmount(f) + " j"
}

// FormatOptionalDays renders a duration that may be absent.
func FormatOptionalDays(f *float64) string {
	if f == nil {
		return StyleDim.Render("--")
	}
	return FormatDays(*f)
}

// FormatDate renders a calendar date, or a dim placeholder when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return StyleDim.Render("--")
	}
	return t.Format("2006-01-02")
}

// Truncate shortens s to n visible runes with a trailing ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
