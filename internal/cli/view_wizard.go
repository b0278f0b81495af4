package cli

import (
	"github.com/alexanderramin/suivi/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// formView puts a huh.Form on the view stack. On completion it runs
// onDone and asks appModel to pop it; Esc cancels unless the form is
// mandatory.
type formView struct {
	state     *SharedState
	form      *huh.Form
	title     string
	onDone    func() tea.Cmd
	mandatory bool
}

type formOption func(*formView)

// mandatoryForm disables Esc. Sign-in uses it while no session exists.
func mandatoryForm() formOption {
	return func(v *formView) { v.mandatory = true }
}

var (
	formNextKey   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next"))
	formToggleKey = key.NewBinding(key.WithKeys("x", "space"), key.WithHelp("x", "toggle"))
	formCancelKey = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
)

// openForm pushes form as a view. A nil form means there is nothing to
// ask, so onDone runs right away.
func openForm(state *SharedState, title string, form *huh.Form, onDone func() tea.Cmd, opts ...formOption) tea.Cmd {
	if form == nil {
		if onDone == nil {
			return nil
		}
		return onDone()
	}
	v := &formView{state: state, form: form, title: title, onDone: onDone}
	for _, opt := range opts {
		opt(v)
	}
	return pushView(v)
}

func (v *formView) Init() tea.Cmd { return v.form.Init() }

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !v.mandatory && key.Matches(msg, formCancelKey) {
			return v, func() tea.Msg { return closeFormWith(formatter.Dim("Cancelled.")) }
		}
	case tea.WindowSizeMsg:
		v.form = v.form.WithWidth(msg.Width).WithHeight(v.state.ContentHeight())
	}

	next, cmd := v.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State != huh.StateCompleted {
		return v, cmd
	}

	var after tea.Cmd
	if v.onDone != nil {
		after = v.onDone()
	}
	return v, func() tea.Msg {
		return wizardCompleteMsg{nextCmd: tea.Batch(cmd, after)}
	}
}

func (v *formView) View() string  { return v.form.View() }
func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.title }

func (v *formView) ShortHelp() []key.Binding {
	if v.mandatory {
		return []key.Binding{formNextKey, formToggleKey}
	}
	return []key.Binding{formNextKey, formToggleKey, formCancelKey}
}
