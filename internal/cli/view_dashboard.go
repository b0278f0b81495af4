package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/suivi/internal/app"
	"github.com/alexanderramin/suivi/internal/cli/formatter"
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── messages ─────────────────────────────────────────────────────────────────

// dashboardLoadedMsg carries one recomputation pass.
type dashboardLoadedMsg struct {
	resp *app.DashboardResponse
	err  error
}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the home screen of the TUI. It shows the metrics and
// active selections side by side, then the chart digests and both
// schedule views in a scrollable viewport.
type dashboardView struct {
	state   *SharedState
	vp      viewport.Model
	loading bool
	err     error
}

func newDashboardView(state *SharedState) *dashboardView {
	vp := viewport.New(state.Width, state.ContentHeight())
	vp.KeyMap = scrollKeyMap()
	return &dashboardView{state: state, vp: vp}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		key.NewBinding(key.WithKeys("1", "2"), key.WithHelp("1/2", "charts")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sheet")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "table")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.load()
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *dashboardView) load() tea.Cmd {
	if v.state.Dataset == nil || !v.state.Session.Authorized {
		return nil
	}
	v.loading = true
	svc, session, ds, req := v.state.App.Service, v.state.Session, v.state.Dataset, v.state.Request()
	return func() tea.Msg {
		resp, err := svc.Build(context.Background(), session, ds, req)
		return dashboardLoadedMsg{resp: resp, err: err}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		v.vp.SetContent(v.content())
		return v, nil

	case dashboardLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.state.Last = msg.resp
		}
		v.vp.SetContent(v.content())
		return v, nil

	case refreshViewMsg:
		v.err = nil
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "f":
			return v, filterWizard(v.state)
		case "1", "2":
			return v, chartWizard(v.state, int(msg.Runes[0]-'1'))
		case "s":
			return v, selectSheetWizard(v.state)
		case "t":
			if v.state.Last == nil {
				return v, nil
			}
			return v, pushView(newTableView(v.state))
		case "e":
			return v, exportCmd(v.state)
		case "r":
			v.state.Selection = domain.FilterSelection{}
			return v, v.load()
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

const splitMinWidth = 90

func (v *dashboardView) View() string {
	switch {
	case !v.state.Session.Authorized:
		return "\n  " + formatter.Dim("Signing in...")
	case v.state.Dataset == nil:
		return "\n  " + formatter.Dim("No sheet loaded. Press 's' to choose one.")
	case v.loading && v.state.Last == nil:
		return "\n  " + formatter.Dim("Loading...")
	case v.err != nil:
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	return v.vp.View()
}

func (v *dashboardView) content() string {
	resp := v.state.Last
	if resp == nil {
		return ""
	}
	width := max(v.state.Width, 40)

	var b strings.Builder
	b.WriteString("\n")
	summary := formatter.FormatSummary(resp.Summary)
	side := v.renderSelections(resp)
	if width >= splitMinWidth {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, summary, "   ", side))
	} else {
		b.WriteString(summary + "\n\n" + side)
	}
	b.WriteString("\n\n")

	for i, c := range resp.Charts {
		b.WriteString(formatter.FormatChart(i+1, c))
		b.WriteString("\n")
	}
	b.WriteString(formatter.FormatGantt(resp.Schedule, width))
	b.WriteString("\n")
	b.WriteString(formatter.FormatProgressView(resp.Schedule, width))
	return b.String()
}

func (v *dashboardView) renderSelections(resp *app.DashboardResponse) string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("SHEET") + "  " + formatter.Bold(resp.Sheet) + "\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("%d of %d rows", resp.Filtered.Len(), resp.Source)) + "\n\n")
	b.WriteString(formatter.FormatFilters(v.state.Selection) + "\n\n")
	for i, c := range resp.Charts {
		label := formatter.Dim("not configured")
		if c.Complete && c.Chart != nil {
			label = formatter.StylePurple.Render(c.Chart.Title) + formatter.Dim(" · "+c.Chart.Kind.Label())
		}
		b.WriteString(fmt.Sprintf("%s %s\n", formatter.Dim(fmt.Sprintf("Chart %d", i+1)), label))
	}
	return b.String()
}
