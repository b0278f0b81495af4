package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/suivi/internal/auth"
	"github.com/alexanderramin/suivi/internal/cli/formatter"
	"github.com/alexanderramin/suivi/internal/importer"
	tea "github.com/charmbracelet/bubbletea"
)

// loginWizard pushes the sign-in form. The wizard cannot be cancelled
// while no session exists.
func loginWizard(state *SharedState, failure string) tea.Cmd {
	d := &loginDraft{}
	return openForm(state, "Sign in", wizardLogin(d, failure), func() tea.Cmd {
		return loginCmd(state, d.username, d.password)
	}, mandatoryForm())
}

func loginCmd(state *SharedState, username, password string) tea.Cmd {
	svc := state.App.Service
	return func() tea.Msg {
		session, err := svc.Login(context.Background(), username, password)
		return sessionMsg{session: session, err: err}
	}
}

func openWorkbookCmd(state *SharedState) tea.Cmd {
	svc, session, path := state.App.Service, state.Session, state.Path
	return func() tea.Msg {
		wb, err := svc.OpenWorkbook(context.Background(), session, path)
		return workbookMsg{wb: wb, err: err}
	}
}

func loadSheetCmd(state *SharedState, sheet string) tea.Cmd {
	svc, session, wb := state.App.Service, state.Session, state.Workbook
	return func() tea.Msg {
		ds, err := svc.LoadSheet(context.Background(), session, wb, sheet)
		return sheetMsg{ds: ds, err: err}
	}
}

// selectSheetWizard lets the user switch sheets. A single-sheet workbook
// loads directly.
func selectSheetWizard(state *SharedState) tea.Cmd {
	if state.Workbook == nil {
		return outputCmd(formatter.Dim("No workbook open."))
	}
	sheets := state.Workbook.Sheets
	if len(sheets) == 1 {
		return loadSheetCmd(state, sheets[0])
	}
	var choice string
	form := wizardSelectSheet(sheets, state.SheetName(), &choice)
	return openForm(state, "Sheet", form, func() tea.Cmd {
		return loadSheetCmd(state, choice)
	})
}

func filterWizard(state *SharedState) tea.Cmd {
	if state.Last == nil {
		return outputCmd(formatter.Dim("Load a sheet first."))
	}
	d := newFilterDraft(state.Selection)
	form := wizardFilters(state.Last.Options, state.Last.Bounds, d)
	return openForm(state, "Filters", form, func() tea.Cmd {
		sel, err := d.selection()
		if err != nil {
			return outputCmd(formatter.StyleRed.Render(err.Error()))
		}
		state.Selection = sel
		return nil
	})
}

// chartWizard configures chart slot i (zero-based).
func chartWizard(state *SharedState, i int) tea.Cmd {
	if i < 0 || i >= len(state.Charts) {
		return nil
	}
	d := newChartDraft(state.Charts[i])
	return openForm(state, fmt.Sprintf("Chart %d", i+1), wizardChart(i+1, d), func() tea.Cmd {
		spec, err := d.spec()
		if err != nil {
			return outputCmd(formatter.StyleRed.Render(err.Error()))
		}
		state.Charts[i] = spec
		return nil
	})
}

func exportCmd(state *SharedState) tea.Cmd {
	resp := state.Last
	app := state.App
	if resp == nil {
		return outputCmd(formatter.Dim("Nothing to export yet."))
	}
	return func() tea.Msg {
		paths, err := exportDashboard(app.Config.Output.Dir, resp, app.renderOptions())
		if err != nil {
			return cmdOutputMsg{output: formatter.StyleRed.Render("Export failed: " + err.Error())}
		}
		var b strings.Builder
		b.WriteString(formatter.Header("Exported"))
		b.WriteString("\n")
		for _, p := range paths {
			b.WriteString("  " + p + "\n")
		}
		return cmdOutputMsg{output: b.String()}
	}
}

// describeLoadError renders a load failure, listing every missing column
// of a schema failure.
func describeLoadError(err error) string {
	var missing *importer.MissingColumnsError
	if errors.As(err, &missing) {
		var b strings.Builder
		b.WriteString(formatter.StyleRed.Render(fmt.Sprintf("Sheet %q is missing required columns:", missing.Sheet)))
		b.WriteString("\n")
		for _, c := range missing.Missing {
			b.WriteString("  • " + string(c) + "\n")
		}
		return b.String()
	}
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return formatter.StyleRed.Render("Incorrect username or password.")
	}
	return formatter.StyleRed.Render("Error: " + err.Error())
}
