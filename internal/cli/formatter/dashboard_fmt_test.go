package formatter

import (
	"math"
	"strings"
	"testing"

	"github.com/alexanderramin/suivi/internal/app"
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/render"
	"github.com/alexanderramin/suivi/internal/report"
	"github.com/alexanderramin/suivi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardFixture() *domain.Dataset {
	return testutil.NewTestDataset("Projets",
		testutil.NewTestRecord("Maquette", testutil.WithOwner("Rivo"), testutil.WithBudget(1000), testutil.WithVariance(-250)),
		testutil.NewTestRecord("Revue", testutil.WithOwner("Hery"), testutil.WithBudget(2500), testutil.WithStatus("Closed")),
	)
}

func TestFormatSummary(t *testing.T) {
	out := stripANSI(FormatSummary(report.Summarize(dashboardFixture())))
	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "3 500 Ar")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "250 Ar")
}

func TestFormatSummary_UndefinedProgress(t *testing.T) {
	out := stripANSI(FormatSummary(report.Summary{MeanProgress: math.NaN()}))
	assert.Contains(t, out, "--")
}

func TestFormatFilters(t *testing.T) {
	assert.Contains(t, stripANSI(FormatFilters(domain.FilterSelection{})), "none")

	out := stripANSI(FormatFilters(domain.FilterSelection{
		Statuses: []string{"Open"},
		MinStart: testutil.DayPtr("2024-01-01"),
	}))
	assert.Contains(t, out, "status=Open")
	assert.Contains(t, out, "from=2024-01-01")
	assert.NotContains(t, out, "owner=")
}

func TestFormatChart_Incomplete(t *testing.T) {
	out := stripANSI(FormatChart(2, app.ChartResult{}))
	assert.Contains(t, out, "CHART 2")
	assert.Contains(t, out, render.MsgIncomplete)
}

func TestFormatChart_BarPoints(t *testing.T) {
	spec, err := domain.ParseChartSpec("", "bar", []string{string(domain.ColOwner)}, []string{string(domain.ColBudget)}, nil)
	require.NoError(t, err)
	c, ok := report.BuildChart(dashboardFixture(), spec)
	require.True(t, ok)

	out := stripANSI(FormatChart(1, app.ChartResult{Spec: spec, Chart: c, Complete: true}))
	assert.Contains(t, out, "Bar")
	assert.Contains(t, out, "Rivo")
	assert.Contains(t, out, "2 500")
}

func TestFormatChart_PiePercentages(t *testing.T) {
	spec, err := domain.ParseChartSpec("", "pie", []string{string(domain.ColOwner)}, []string{string(domain.ColBudget)}, nil)
	require.NoError(t, err)
	c, ok := report.BuildChart(dashboardFixture(), spec)
	require.True(t, ok)

	out := stripANSI(FormatChart(1, app.ChartResult{Spec: spec, Chart: c, Complete: true}))
	assert.Contains(t, out, "28.6%")
	assert.Contains(t, out, "71.4%")
}

func TestFormatChart_EmptyChart(t *testing.T) {
	spec, err := domain.ParseChartSpec("", "line", []string{string(domain.ColOwner)}, []string{string(domain.ColBudget)}, nil)
	require.NoError(t, err)
	c, ok := report.BuildChart(testutil.NewTestDataset("Projets"), spec)
	require.True(t, ok)

	out := stripANSI(FormatChart(1, app.ChartResult{Spec: spec, Chart: c, Complete: true}))
	assert.Contains(t, out, render.MsgNoData)
}

func TestFormatDashboard_Sections(t *testing.T) {
	ds := dashboardFixture()
	resp := &app.DashboardResponse{
		Sheet:    ds.Sheet,
		Source:   ds.Len(),
		Filtered: ds,
		Summary:  report.Summarize(ds),
		Charts:   []app.ChartResult{{}},
		Schedule: report.Project(ds),
	}
	out := stripANSI(FormatDashboard(resp, domain.FilterSelection{}, 10, 100))
	for _, want := range []string{"PROJETS", "2 of 2 rows", "SUMMARY", "CHART 1", "GANTT", "DATA", "Maquette"} {
		assert.True(t, strings.Contains(out, want), "missing %q", want)
	}
}
