package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/suivi/internal/cli/formatter"
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/report"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// suiviHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func suiviHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(suiviHuhTheme()).WithShowHelp(false)
}

// loginDraft holds the values bound to the login form.
type loginDraft struct {
	username string
	password string
}

// wizardLogin creates the sign-in form. failure, when set, is shown as
// the form description so a retry keeps the reason visible.
func wizardLogin(d *loginDraft, failure string) *huh.Form {
	note := "Sign in to open the workbook."
	if failure != "" {
		note = formatter.StyleRed.Render(failure)
	}
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Description(note).
				Value(&d.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&d.password),
		),
	)
}

// wizardSelectSheet creates a form to pick one sheet of the workbook.
// It returns nil when there is nothing to choose.
func wizardSelectSheet(sheets []string, current string, result *string) *huh.Form {
	if len(sheets) == 0 {
		return nil
	}
	*result = current
	if *result == "" {
		*result = sheets[0]
	}
	options := make([]huh.Option[string], 0, len(sheets))
	for _, s := range sheets {
		options = append(options, huh.NewOption(s, s))
	}
	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which sheet?").
				Options(options...).
				Value(result),
		),
	)
}

// filterDraft holds the values bound to the filter form.
type filterDraft struct {
	statuses []string
	owners   []string
	from     string
	to       string
}

func newFilterDraft(sel domain.FilterSelection) *filterDraft {
	d := &filterDraft{
		statuses: append([]string(nil), sel.Statuses...),
		owners:   append([]string(nil), sel.Owners...),
	}
	if sel.MinStart != nil {
		d.from = sel.MinStart.Format(dateLayout)
	}
	if sel.MaxEnd != nil {
		d.to = sel.MaxEnd.Format(dateLayout)
	}
	return d
}

// selection converts the draft back into a FilterSelection. The form
// validates dates, so parse errors are not expected here.
func (d *filterDraft) selection() (domain.FilterSelection, error) {
	sel := domain.FilterSelection{Statuses: d.statuses, Owners: d.owners}
	var err error
	if sel.MinStart, err = parseDateFlag("from", strings.TrimSpace(d.from)); err != nil {
		return sel, err
	}
	if sel.MaxEnd, err = parseDateFlag("to", strings.TrimSpace(d.to)); err != nil {
		return sel, err
	}
	return sel, nil
}

func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func multiOptions(values, selected []string) []huh.Option[string] {
	picked := make(map[string]bool, len(selected))
	for _, s := range selected {
		picked[s] = true
	}
	out := make([]huh.Option[string], 0, len(values))
	for _, v := range values {
		label := v
		if label == "" {
			label = "(blank)"
		}
		out = append(out, huh.NewOption(label, v).Selected(picked[v]))
	}
	return out
}

// wizardFilters creates the filter form from the unfiltered sheet's
// options and date bounds.
func wizardFilters(opts report.FilterOptions, bounds report.Bounds, d *filterDraft) *huh.Form {
	var fields []huh.Field
	if len(opts.Statuses) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Status").
			Description("None selected keeps every status.").
			Options(multiOptions(opts.Statuses, d.statuses)...).
			Value(&d.statuses))
	}
	if len(opts.Owners) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Owner").
			Description("None selected keeps every owner.").
			Options(multiOptions(opts.Owners, d.owners)...).
			Value(&d.owners))
	}
	fields = append(fields,
		huh.NewInput().
			Title("Planned start on or after").
			Placeholder(boundHint(bounds.MinStart)).
			Validate(validateDate).
			Value(&d.from),
		huh.NewInput().
			Title("Planned end on or before").
			Placeholder(boundHint(bounds.MaxEnd)).
			Validate(validateDate).
			Value(&d.to),
	)
	return newForm(huh.NewGroup(fields...))
}

func boundHint(t *time.Time) string {
	if t == nil {
		return "YYYY-MM-DD"
	}
	return t.Format(dateLayout)
}

// chartDraft holds the values bound to a chart form.
type chartDraft struct {
	title string
	kind  string
	xs    []string
	ys    []string
	y2s   []string
}

func newChartDraft(spec domain.ChartSpec) *chartDraft {
	d := &chartDraft{title: spec.Title, kind: string(spec.Kind)}
	if d.kind == "" {
		d.kind = string(domain.ChartBar)
	}
	for _, c := range spec.X {
		d.xs = append(d.xs, string(c))
	}
	for _, c := range spec.Y {
		d.ys = append(d.ys, string(c))
	}
	for _, c := range spec.SecondaryY {
		d.y2s = append(d.y2s, string(c))
	}
	return d
}

func (d *chartDraft) spec() (domain.ChartSpec, error) {
	return domain.ParseChartSpec(strings.TrimSpace(d.title), d.kind, d.xs, d.ys, d.y2s)
}

func columnNames(cols []domain.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = string(c)
	}
	return out
}

// wizardChart creates the configuration form for chart n.
func wizardChart(n int, d *chartDraft) *huh.Form {
	kinds := make([]huh.Option[string], 0, len(domain.ChartKinds))
	for _, k := range domain.ChartKinds {
		kinds = append(kinds, huh.NewOption(k.Label(), string(k)))
	}
	numeric := columnNames(domain.NumericColumns())

	return newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Chart %d type", n)).
				Options(kinds...).
				Value(&d.kind),
			huh.NewInput().
				Title("Title").
				Placeholder("default: chart type").
				Value(&d.title),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("X axis").
				Options(multiOptions(columnNames(domain.RequiredColumns), d.xs)...).
				Value(&d.xs),
			huh.NewMultiSelect[string]().
				Title("Y axis").
				Options(multiOptions(numeric, d.ys)...).
				Value(&d.ys),
			huh.NewMultiSelect[string]().
				Title("Secondary Y axis").
				Description("Used by combined charts only.").
				Options(multiOptions(numeric, d.y2s)...).
				Value(&d.y2s),
		),
	)
}
