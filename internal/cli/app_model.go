package cli

import (
	"strings"

	"github.com/alexanderramin/suivi/internal/auth"
	"github.com/alexanderramin/suivi/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

// appModel is the root bubbletea model. It owns the view stack, the
// transient output pane and the session lifecycle: sign in, open the
// workbook, pick a sheet, then recompute the dashboard on every change.
type appModel struct {
	state     *SharedState
	viewStack []View
	output    outputPane
	quitting  bool
}

// newAppModel builds the TUI for the workbook at path. An authorized
// session skips the sign-in form.
func newAppModel(a *App, path string, session auth.Session) appModel {
	state := &SharedState{App: a, Path: path, Session: session}
	return appModel{
		state:     state,
		viewStack: []View{newDashboardView(state)},
		output:    newOutputPane(),
	}
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// broadcast delivers msg to every view on the stack, bottom first.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.viewStack))
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *appModel) forward(msg tea.Msg) tea.Cmd {
	v := m.activeView()
	if v == nil {
		return nil
	}
	updated, cmd := v.Update(msg)
	m.setActiveView(updated.(View))
	return cmd
}

func (m *appModel) push(v View) tea.Cmd {
	m.output.clear()
	m.viewStack = append(m.viewStack, v)
	return tea.Batch(v.Init(), m.sizeCmd())
}

func (m *appModel) pop() {
	if len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
	}
}

func (m *appModel) showOutput(s string) {
	m.output.show(s, m.state.Width, m.state.ContentHeight())
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	var first tea.Cmd
	if v := m.activeView(); v != nil {
		first = v.Init()
	}
	if m.state.Session.Authorized {
		return tea.Batch(first, openWorkbookCmd(m.state))
	}
	return tea.Batch(first, loginWizard(m.state, ""))
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width, m.state.Height = msg.Width, msg.Height
		if m.output.active {
			m.output.resize(msg.Width, m.state.ContentHeight())
		}
		// Views below the top keep their own viewports and need the size too.
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.output.active {
			return m, m.output.update(msg)
		}

	case pushViewMsg:
		return m, m.push(msg.view)

	case popViewMsg:
		m.pop()
		return m, nil

	case replaceViewMsg:
		if len(m.viewStack) == 0 {
			return m, m.push(msg.view)
		}
		m.output.clear()
		m.setActiveView(msg.view)
		return m, tea.Batch(msg.view.Init(), m.sizeCmd())

	case refreshViewMsg:
		return m, m.broadcast(msg)

	case cmdOutputMsg:
		m.showOutput(msg.output)
		return m, nil

	case wizardCompleteMsg:
		// Pop the form and run its follow-up in one step, then let views
		// recompute from whatever the form changed.
		m.pop()
		m.output.clear()
		return m, tea.Batch(msg.nextCmd, refreshCmd)

	case sessionMsg:
		if msg.err != nil {
			return m, loginWizard(m.state, describeLoadError(msg.err))
		}
		m.state.Session = msg.session
		return m, openWorkbookCmd(m.state)

	case workbookMsg:
		if msg.err != nil {
			m.showOutput(describeLoadError(msg.err))
			return m, nil
		}
		m.state.Workbook = msg.wb
		return m, selectSheetWizard(m.state)

	case sheetMsg:
		if msg.err != nil {
			m.showOutput(describeLoadError(msg.err))
			return m, nil
		}
		m.state.SetDataset(msg.ds)
		return m, refreshCmd
	}

	return m, m.forward(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Scroll keys move the output pane; any other key dismisses it and is
	// then handled normally, except Esc which only dismisses.
	if m.output.active {
		if isScrollKey(msg) {
			return m, m.output.update(msg)
		}
		m.output.clear()
		if msg.Type == tea.KeyEsc {
			return m, nil
		}
	}

	// Forms receive every key, including q and Esc.
	if viewCapturesInput(m.activeView()) {
		return m, m.forward(msg)
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.String() == "x" && m.state.Session.Authorized:
		// Sign out drops the session and everything loaded with it.
		m.state.Session = auth.Anonymous()
		m.state.Reset()
		m.viewStack = m.viewStack[:1]
		return m, tea.Batch(refreshCmd, loginWizard(m.state, ""))

	case msg.Type == tea.KeyEsc:
		m.pop()
		return m, nil
	}

	return m, m.forward(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch {
	case m.output.active:
		body = m.output.view(m.state.Height > 0)
	case m.activeView() != nil:
		body = m.activeView().View()
	}

	out := strings.Join([]string{m.renderHeader(), body, m.renderStatusBar()}, "\n")

	// Pad to the terminal height so the alt-screen line diff leaves no
	// stale rows behind.
	if lines := strings.Count(out, "\n") + 1; m.state.Height > lines {
		out += strings.Repeat("\n", m.state.Height-lines)
	}
	return out
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) rule() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

// renderHeader shows the breadcrumb of view titles, the loaded sheet and
// the signed-in user.
func (m *appModel) renderHeader() string {
	var b strings.Builder
	b.WriteString(formatter.StylePurple.Render("suivi"))

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	if len(crumbs) > 0 {
		b.WriteString(" " + formatter.Dim("› "+strings.Join(crumbs, " › ")))
	}
	if sheet := m.state.SheetName(); sheet != "" {
		b.WriteString("  " + formatter.Dim("[") + formatter.StyleGreen.Render(sheet) + formatter.Dim("]"))
	}
	if m.state.Session.Authorized {
		b.WriteString("  " + formatter.Dim(m.state.Session.Username))
	}
	return b.String() + "\n" + m.rule()
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	active := m.activeView()

	switch {
	case m.output.active:
		hints = m.output.hints()
	case active != nil:
		for _, b := range active.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}

	if !m.output.active && !viewCapturesInput(active) {
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		if m.state.Session.Authorized {
			hints = append(hints, formatter.Dim("x: sign out"))
		}
	}

	return m.rule() + "\n" + strings.Join(hints, "  ")
}

// sizeCmd replays the terminal size so a freshly pushed view can lay out.
func (m *appModel) sizeCmd() tea.Cmd {
	if m.state.Width == 0 && m.state.Height == 0 {
		return nil
	}
	size := tea.WindowSizeMsg{Width: m.state.Width, Height: m.state.Height}
	return func() tea.Msg { return size }
}

// viewCapturesInput reports whether v takes every key, bypassing the
// global bindings. Only forms do.
func viewCapturesInput(v View) bool {
	return v != nil && v.ID() == ViewForm
}
