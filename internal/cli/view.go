package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID tags the kind of screen on the view stack.
type ViewID int

const (
	ViewNone ViewID = iota - 1
	ViewDashboard
	ViewTable
	ViewForm
)

func (id ViewID) String() string {
	switch id {
	case ViewDashboard:
		return "dashboard"
	case ViewTable:
		return "table"
	case ViewForm:
		return "form"
	default:
		return "none"
	}
}

// View is one screen of the TUI. Title feeds the breadcrumb and ShortHelp
// the status bar.
type View interface {
	tea.Model
	ID() ViewID
	Title() string
	ShortHelp() []key.Binding
}
