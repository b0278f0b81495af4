package cli

import (
	"github.com/alexanderramin/suivi/internal/auth"
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/importer"
	tea "github.com/charmbracelet/bubbletea"
)

// Stack transitions. Views never touch the stack; they return one of these
// and appModel applies it.
type (
	pushViewMsg    struct{ view View }
	replaceViewMsg struct{ view View }
	popViewMsg     struct{}

	// refreshViewMsg reaches every view on the stack, not just the top.
	refreshViewMsg struct{}

	// cmdOutputMsg overlays text on the content area until dismissed.
	cmdOutputMsg struct{ output string }

	// wizardCompleteMsg pops the form that sent it, then runs nextCmd.
	wizardCompleteMsg struct{ nextCmd tea.Cmd }
)

// Results of service calls run as Cmds.
type (
	sessionMsg struct {
		session auth.Session
		err     error
	}
	workbookMsg struct {
		wb  *importer.Workbook
		err error
	}
	sheetMsg struct {
		ds  *domain.Dataset
		err error
	}
)

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func refreshCmd() tea.Msg { return refreshViewMsg{} }

// outputCmd overlays s on the content area. Empty text is a no-op.
func outputCmd(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

// closeFormWith pops the current form and shows s.
func closeFormWith(s string) tea.Msg {
	return wizardCompleteMsg{nextCmd: outputCmd(s)}
}
