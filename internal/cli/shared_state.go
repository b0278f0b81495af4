package cli

import (
	"github.com/alexanderramin/suivi/internal/app"
	"github.com/alexanderramin/suivi/internal/auth"
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/importer"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Path is the workbook opened after sign-in.
	Path    string
	Session auth.Session

	Workbook *importer.Workbook
	Dataset  *domain.Dataset

	// Current selections, recomputed into Last on every change.
	Selection domain.FilterSelection
	Charts    [app.MaxCharts]domain.ChartSpec
	Last      *app.DashboardResponse

	// Terminal dimensions
	Width  int
	Height int
}

// SheetName returns the loaded sheet, or "".
func (s *SharedState) SheetName() string {
	if s.Dataset == nil {
		return ""
	}
	return s.Dataset.Sheet
}

// Request returns the dashboard request for the current selections.
func (s *SharedState) Request() app.DashboardRequest {
	return app.DashboardRequest{Selection: s.Selection, Charts: s.Charts[:]}
}

// SetDataset switches to a newly loaded sheet. Filters are reset because
// their options come from the previous sheet; chart configs are kept.
func (s *SharedState) SetDataset(ds *domain.Dataset) {
	s.Dataset = ds
	s.Selection = domain.FilterSelection{}
	s.Last = nil
}

// Reset forgets the workbook and every selection.
func (s *SharedState) Reset() {
	s.Workbook = nil
	s.Dataset = nil
	s.Selection = domain.FilterSelection{}
	s.Charts = [app.MaxCharts]domain.ChartSpec{}
	s.Last = nil
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
