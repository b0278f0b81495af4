package cli

import (
	"fmt"

	"github.com/alexanderramin/suivi/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// outputPane shows transient text (errors, export results, cancellations)
// over the active view until a non-scroll key dismisses it.
type outputPane struct {
	text   string
	vp     viewport.Model
	active bool
}

func newOutputPane() outputPane {
	vp := viewport.New(0, 0)
	vp.KeyMap = scrollKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return outputPane{vp: vp}
}

func (p *outputPane) show(text string, width, height int) {
	p.text = text
	p.active = true
	p.vp.SetContent(text)
	p.resize(width, height)
	p.vp.GotoTop()
}

func (p *outputPane) clear() {
	p.text = ""
	p.active = false
}

func (p *outputPane) resize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
}

func (p *outputPane) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

// overflows reports whether the text is taller than the pane.
func (p *outputPane) overflows() bool {
	return p.vp.TotalLineCount() > p.vp.Height
}

func (p *outputPane) view(sized bool) string {
	if !sized {
		return p.text
	}
	return p.vp.View()
}

// hints returns the status-bar hints while the pane is showing.
func (p *outputPane) hints() []string {
	if !p.overflows() {
		return []string{formatter.Dim("any key: dismiss")}
	}
	return []string{
		scrollPosition(p.vp),
		formatter.Dim("↑↓ pgup/pgdn: scroll"),
		formatter.Dim("esc: dismiss"),
	}
}

// scrollKeyMap binds only arrow and page keys so letters stay free for
// view shortcuts.
func scrollKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

func isScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}

func scrollPosition(vp viewport.Model) string {
	switch {
	case vp.AtTop():
		return formatter.Dim("[TOP]")
	case vp.AtBottom():
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}
