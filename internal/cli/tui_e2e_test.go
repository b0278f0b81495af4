package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/alexanderramin/suivi/internal/auth"
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

// signedInDriver starts the TUI past the sign-in form on a one-sheet
// workbook, so the dashboard is loaded after Init.
func signedInDriver(t *testing.T) *TestDriver {
	t.Helper()
	return NewTestDriver(t, testApp(t), seedWorkbook(t), signedIn("admin"))
}

func TestTUI_SignInLoadsSingleSheet(t *testing.T) {
	d := NewTestDriver(t, testApp(t), seedWorkbook(t), auth.Anonymous())

	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, "Sign in", d.ActiveViewTitle())
	assert.Contains(t, stripANSI(d.View()), "Username")

	d.SignIn("admin", "2025")

	require.True(t, d.State().Session.Authorized)
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, "Projets", d.State().SheetName())
	require.NotNil(t, d.State().Last)
	assert.Equal(t, 3, d.State().Last.Summary.RowCount)

	view := stripANSI(d.View())
	assert.Contains(t, view, "[Projets]")
	assert.Contains(t, view, "4 000 Ar")
	assert.Contains(t, view, "3 of 3 rows")
}

func TestTUI_FailedSignInShowsReasonAndRetries(t *testing.T) {
	d := NewTestDriver(t, testApp(t), seedWorkbook(t), auth.Anonymous())

	d.SignIn("admin", "wrong")

	assert.False(t, d.State().Session.Authorized)
	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Contains(t, stripANSI(d.View()), "Incorrect username or password.")

	d.SignIn("user1", "2024")
	assert.True(t, d.State().Session.Authorized)
	assert.Equal(t, "user1", d.State().Session.Username)
}

func TestTUI_SignInFormCannotBeCancelled(t *testing.T) {
	d := NewTestDriver(t, testApp(t), seedWorkbook(t), auth.Anonymous())

	d.PressEsc()
	assert.Equal(t, ViewForm, d.ActiveViewID())
	assert.False(t, d.IsQuitting())
}

func TestTUI_MultiSheetWorkbookAsksForSheet(t *testing.T) {
	other := testutil.ProjectSheet("Phase 2",
		testutil.NewTestRecord("Tests", testutil.WithBudget(700)),
	)
	path := seedWorkbook(t, other)
	d := NewTestDriver(t, testApp(t), path, signedIn("admin"))

	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, "Sheet", d.ActiveViewTitle())

	d.PressDown()
	d.PressEnter()

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, "Phase 2", d.State().SheetName())
	require.NotNil(t, d.State().Last)
	assert.Equal(t, 1, d.State().Last.Summary.RowCount)
}

func TestTUI_SchemaFailureListsMissingColumns(t *testing.T) {
	path := testutil.WriteTestWorkbook(t, brokenSheet("Archive"))
	d := NewTestDriver(t, testApp(t), path, signedIn("admin"))

	out := stripANSI(d.LastOutput())
	assert.Contains(t, out, `Sheet "Archive" is missing required columns:`)
	assert.Contains(t, out, "• "+string(domain.ColTask))
	assert.Contains(t, out, "• "+string(domain.ColComment))
	assert.NotContains(t, out, "• "+string(domain.ColProjectTitle))
	assert.Nil(t, d.State().Dataset)
}

func TestTUI_FilterFormNarrowsDashboard(t *testing.T) {
	d := signedInDriver(t)

	d.PressKey('f')
	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, "Filters", d.ActiveViewTitle())

	// Toggle the first status ("Open"), then walk past the other fields.
	d.PressKey('x')
	d.PressEnter()
	d.PressEnter()
	d.PressEnter()
	d.PressEnter()

	require.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, []string{"Open"}, d.State().Selection.Statuses)
	require.NotNil(t, d.State().Last)
	assert.Equal(t, 2, d.State().Last.Filtered.Len())
	assert.Equal(t, 3, d.State().Last.Source)
}

func TestTUI_FilterFormEscCancels(t *testing.T) {
	d := signedInDriver(t)

	d.PressKey('f')
	d.PressKey('x')
	d.PressEsc()

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.True(t, d.State().Selection.IsEmpty())
	assert.Contains(t, stripANSI(d.LastOutput()), "Cancelled.")
}

func TestTUI_RefreshAndResetSelection(t *testing.T) {
	d := signedInDriver(t)

	d.State().Selection = domain.FilterSelection{Owners: []string{"Hery"}}
	d.Send(refreshViewMsg{})
	require.NotNil(t, d.State().Last)
	assert.Equal(t, 2, d.State().Last.Filtered.Len())
	assert.Contains(t, stripANSI(d.View()), "owner=Hery")

	d.PressKey('r')
	assert.True(t, d.State().Selection.IsEmpty())
	assert.Equal(t, 3, d.State().Last.Filtered.Len())
	assert.Contains(t, stripANSI(d.View()), "Filters: none")
}

func TestTUI_ChartsAppearAfterConfiguration(t *testing.T) {
	d := signedInDriver(t)
	view := stripANSI(d.View())
	assert.Contains(t, view, "Chart 1 not configured")

	spec, err := domain.ParseChartSpec("Budget", "bar", []string{"Responsable"}, []string{"Budget (Ariary)"}, nil)
	require.NoError(t, err)
	d.State().Charts[0] = spec
	d.Send(refreshViewMsg{})

	require.True(t, d.State().Last.Charts[0].Complete)
	assert.False(t, d.State().Last.Charts[1].Complete)
	view = stripANSI(d.View())
	assert.Contains(t, view, "Chart 1: Budget")
}

func TestTUI_ChartFormOpensForEachSlot(t *testing.T) {
	d := signedInDriver(t)

	d.PressKey('2')
	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, "Chart 2", d.ActiveViewTitle())
	assert.Contains(t, stripANSI(d.View()), "Chart 2 type")

	d.PressEsc()
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
}

func TestTUI_TableViewAndBack(t *testing.T) {
	d := signedInDriver(t)

	d.PressKey('t')
	require.Equal(t, ViewTable, d.ActiveViewID())
	assert.Equal(t, 2, d.ViewStackLen())
	view := stripANSI(d.View())
	assert.Contains(t, view, "Maquette")
	assert.Contains(t, view, "Livraison")

	d.PressEsc()
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
}

func TestTUI_ExportWritesPNGs(t *testing.T) {
	a := testApp(t)
	d := NewTestDriver(t, a, seedWorkbook(t), signedIn("admin"))

	d.PressKey('e')

	assert.Contains(t, stripANSI(d.LastOutput()), "Exported")
	for _, name := range []string{"chart-1.png", "chart-2.png", "gantt.png", "progress.png"} {
		_, err := os.Stat(filepath.Join(a.Config.Output.Dir, name))
		assert.NoError(t, err, name)
	}
}

func TestTUI_SignOutReturnsToSignIn(t *testing.T) {
	d := signedInDriver(t)
	d.PressKey('t')

	d.PressKey('x')

	assert.False(t, d.State().Session.Authorized)
	assert.Nil(t, d.State().Dataset)
	assert.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, 2, d.ViewStackLen())
	assert.Contains(t, stripANSI(d.View()), "Username")
}

func TestTUI_QuitKeys(t *testing.T) {
	d := signedInDriver(t)
	d.PressKey('q')
	assert.True(t, d.IsQuitting())

	d = signedInDriver(t)
	d.PressCtrlC()
	assert.True(t, d.IsQuitting())
}
