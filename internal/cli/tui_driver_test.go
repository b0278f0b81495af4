package cli

import (
	"testing"

	"github.com/alexanderramin/suivi/internal/auth"
	"github.com/alexanderramin/suivi/internal/teatest"
)

// TestDriver is a teatest.Driver that can also look inside appModel.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver starts the TUI on the workbook at path in a 120x40
// terminal. An authorized session goes straight to the workbook.
func NewTestDriver(t *testing.T, app *App, path string, session auth.Session) *TestDriver {
	t.Helper()
	d := teatest.New(t, newAppModel(app, path, session), teatest.WithSize(120, 40))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

// SignIn fills both fields of the sign-in form.
func (d *TestDriver) SignIn(username, password string) {
	d.T.Helper()
	for _, field := range []string{username, password} {
		d.Type(field)
		d.PressEnter()
	}
}

func (d *TestDriver) model() appModel { return d.Model.(appModel) }

func (d *TestDriver) top() View {
	m := d.model()
	return m.activeView()
}

func (d *TestDriver) ActiveViewID() ViewID {
	if v := d.top(); v != nil {
		return v.ID()
	}
	return ViewNone
}

func (d *TestDriver) ActiveViewTitle() string {
	if v := d.top(); v != nil {
		return v.Title()
	}
	return ""
}

func (d *TestDriver) ViewStackLen() int    { return len(d.model().viewStack) }
func (d *TestDriver) State() *SharedState { return d.model().state }
func (d *TestDriver) LastOutput() string  { return d.model().output.text }

// IsQuitting is true once either the model or the runtime saw a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.Quitting || d.model().quitting
}
