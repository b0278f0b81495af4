package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Status labels vary between workbooks; these are the usual spellings.
var (
	doneStatuses    = []string{"closed", "done", "terminé", "termine", "fini", "clôturé"}
	activeStatuses  = []string{"open", "en cours", "in progress", "ouvert"}
	blockedStatuses = []string{"blocked", "bloqué", "en retard", "late", "suspendu"}
)

// StatusStyle returns the style used for a free-text status label.
func StatusStyle(status string) lipgloss.Style {
	s := strings.ToLower(strings.TrimSpace(status))
	switch {
	case matchesAny(s, doneStatuses):
		return StyleGreen
	case matchesAny(s, blockedStatuses):
		return StyleRed
	case matchesAny(s, activeStatuses):
		return StyleYellow
	default:
		return StyleFg
	}
}

func matchesAny(s string, candidates []string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}

// StatusPill returns a colored status indicator such as "● Open".
func StatusPill(status string) string {
	if strings.TrimSpace(status) == "" {
		return StyleDim.Render("○ --")
	}
	return StatusStyle(status).Render("● " + status)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
