package app

import (
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/report"
)

// MaxCharts is the number of independently configured charts on the
// dashboard.
const MaxCharts = 2

// DashboardRequest carries the current selections of one interaction.
type DashboardRequest struct {
	Selection domain.FilterSelection
	Charts    []domain.ChartSpec
}

// ChartResult is one configured chart. Chart is nil when the spec is
// incomplete.
type ChartResult struct {
	Spec     domain.ChartSpec
	Chart    *report.Chart
	Complete bool
}

// DashboardResponse is everything the dashboard displays for one pass.
type DashboardResponse struct {
	Sheet    string
	Source   int // row count before filtering
	Filtered *domain.Dataset
	Summary  report.Summary
	Options  report.FilterOptions
	Bounds   report.Bounds
	Charts   []ChartResult
	Schedule *report.Schedule
}
