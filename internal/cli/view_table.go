package cli

import (
	"fmt"

	"github.com/alexanderramin/suivi/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// tableView shows every filtered row of the last dashboard pass.
type tableView struct {
	state *SharedState
	vp    viewport.Model
}

func newTableView(state *SharedState) *tableView {
	vp := viewport.New(state.Width, state.ContentHeight())
	vp.KeyMap = scrollKeyMap()
	v := &tableView{state: state, vp: vp}
	v.vp.SetContent(v.content())
	return v
}

func (v *tableView) ID() ViewID    { return ViewTable }
func (v *tableView) Title() string { return "Data" }

func (v *tableView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←→", "pan")),
	}
}

func (v *tableView) Init() tea.Cmd { return nil }

func (v *tableView) content() string {
	resp := v.state.Last
	if resp == nil {
		return formatter.Dim("No data loaded.")
	}
	head := formatter.Dim(fmt.Sprintf("%d of %d rows", resp.Filtered.Len(), resp.Source))
	return head + "\n\n" + formatter.FormatDataset(resp.Filtered, 0)
}

func (v *tableView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
	case refreshViewMsg, dashboardLoadedMsg:
		v.vp.SetContent(v.content())
	case tea.KeyMsg:
		switch msg.String() {
		case "left":
			v.vp.ScrollLeft(8)
			return v, nil
		case "right":
			v.vp.ScrollRight(8)
			return v, nil
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *tableView) View() string {
	return v.vp.View()
}
