// Package teatest drives a bubbletea model without a tea.Program.
//
// Update is called directly and every returned Cmd is run and fed back
// until the model goes quiet. A Cmd that does not return within the
// driver's timeout is dropped; cursor blink ticks fall in this bucket, so
// Cmds doing real work (reading a workbook, rendering PNGs) must finish
// inside it.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultCmdTimeout bounds a single Cmd. Small in-memory workbooks load in
// a few milliseconds while a blink tick waits about half a second.
const DefaultCmdTimeout = 150 * time.Millisecond

// maxSteps caps the Cmds run for one input so a self-rescheduling Cmd
// cannot stall a test.
const maxSteps = 200

// Driver feeds messages to a model and settles the Cmds it returns.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg comes out of a Cmd. The runtime
	// normally swallows it, so models rarely record it themselves.
	Quitting bool

	// Seen lists every message handed to Update, oldest first.
	Seen []tea.Msg

	timeout time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// WithCmdTimeout replaces DefaultCmdTimeout.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.timeout = timeout }
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call DrainInit to run the model's Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, timeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and settles its Cmds.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.settle(d.Model.Init())
}

// Send hands msg to Update and settles the result. Nothing is delivered
// after the model quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.settle(d.update(msg))
}

// Sent reports whether a message with the dynamic type of sample reached
// Update.
func (d *Driver) Sent(sample tea.Msg) bool {
	want := typeName(sample)
	for _, m := range d.Seen {
		if typeName(m) == want {
			return true
		}
	}
	return false
}

// View renders the model.
func (d *Driver) View() string { return d.Model.View() }

// Press sends a special key such as tea.KeyEnter.
func (d *Driver) Press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// PressKey sends one printable key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) PressEnter() { d.T.Helper(); d.Press(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.Press(tea.KeyEsc) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.Press(tea.KeyCtrlC) }
func (d *Driver) PressUp()    { d.T.Helper(); d.Press(tea.KeyUp) }
func (d *Driver) PressDown()  { d.T.Helper(); d.Press(tea.KeyDown) }

func (d *Driver) update(msg tea.Msg) tea.Cmd {
	d.Seen = append(d.Seen, msg)
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	return cmd
}

// settle runs pending Cmds in order. Batches are flattened in place so
// their children run before anything queued after the batch.
func (d *Driver) settle(first tea.Cmd) {
	d.T.Helper()
	pending := []tea.Cmd{first}
	for steps := 0; len(pending) > 0; steps++ {
		if steps == maxSteps {
			d.T.Logf("teatest: gave up after %d cmds", maxSteps)
			return
		}
		cmd := pending[0]
		pending = pending[1:]
		if cmd == nil {
			continue
		}

		msg, ok := run(cmd, d.timeout)
		if !ok || msg == nil || isBlink(msg) {
			continue
		}
		switch m := msg.(type) {
		case tea.BatchMsg:
			pending = append(append([]tea.Cmd{}, m...), pending...)
		case tea.QuitMsg:
			d.Quitting = true
			d.Model, _ = d.Model.Update(m)
			return
		default:
			if next := d.update(m); next != nil {
				pending = append([]tea.Cmd{next}, pending...)
			}
		}
	}
}

// run executes cmd off the test goroutine and reports false on timeout.
func run(cmd tea.Cmd, timeout time.Duration) (tea.Msg, bool) {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case msg := <-done:
		return msg, true
	case <-timer.C:
		return nil, false
	}
}

// isBlink matches the unexported blink messages of bubbles/cursor, which
// chain into timer Cmds when handled.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(typeName(msg)), "blink")
}

func typeName(msg tea.Msg) string { return fmt.Sprintf("%T", msg) }
