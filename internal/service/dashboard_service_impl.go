package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/suivi/internal/app"
	"github.com/alexanderramin/suivi/internal/auth"
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/importer"
	"github.com/alexanderramin/suivi/internal/report"
)

var (
	ErrUnauthorized  = errors.New("session is not authorized")
	ErrNoDataset     = errors.New("no sheet loaded")
	ErrTooManyCharts = fmt.Errorf("at most %d charts can be configured", app.MaxCharts)
)

type dashboardService struct {
	gate     auth.Gate
	observer UseCaseObserver
}

func NewDashboardService(gate auth.Gate, observers ...UseCaseObserver) DashboardService {
	return &dashboardService{
		gate:     gate,
		observer: MultiObserver(observers...),
	}
}

func (s *dashboardService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *dashboardService) Login(ctx context.Context, username, password string) (session auth.Session, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"username": username}
	defer func() { s.observe(ctx, "login", startedAt, fields, err) }()

	return s.gate.Authenticate(username, password)
}

func (s *dashboardService) OpenWorkbook(ctx context.Context, session auth.Session, path string) (wb *importer.Workbook, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": path}
	defer func() { s.observe(ctx, "open-workbook", startedAt, fields, err) }()

	if err = authorize(session); err != nil {
		return nil, err
	}
	wb, err = importer.OpenWorkbook(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	fields["sheets"] = len(wb.Sheets)
	return wb, nil
}

func (s *dashboardService) ReadWorkbook(ctx context.Context, session auth.Session, r io.Reader, name string) (wb *importer.Workbook, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": name}
	defer func() { s.observe(ctx, "read-workbook", startedAt, fields, err) }()

	if err = authorize(session); err != nil {
		return nil, err
	}
	wb, err = importer.ReadWorkbook(r, name)
	if err != nil {
		return nil, err
	}
	fields["sheets"] = len(wb.Sheets)
	return wb, nil
}

func (s *dashboardService) LoadSheet(ctx context.Context, session auth.Session, wb *importer.Workbook, sheet string) (ds *domain.Dataset, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"sheet": sheet}
	defer func() { s.observe(ctx, "load-sheet", startedAt, fields, err) }()

	if err = authorize(session); err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, ErrNoDataset
	}
	ds, err = importer.LoadSheet(wb, sheet)
	if err != nil {
		return nil, err
	}
	fields["rows"] = ds.Len()
	return ds, nil
}

// Build runs filter, summary, charts and schedule over ds. Filter options
// and date bounds describe the unfiltered sheet so widgets keep offering
// every value.
func (s *dashboardService) Build(ctx context.Context, session auth.Session, ds *domain.Dataset, req app.DashboardRequest) (resp *app.DashboardResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"charts": len(req.Charts)}
	defer func() { s.observe(ctx, "build-dashboard", startedAt, fields, err) }()

	if err = authorize(session); err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, ErrNoDataset
	}
	if len(req.Charts) > app.MaxCharts {
		return nil, ErrTooManyCharts
	}
	if err = importer.Validate(ds); err != nil {
		return nil, err
	}
	fields["sheet"] = ds.Sheet
	fields["rows_in"] = ds.Len()

	filtered := report.Filter(ds, req.Selection)
	fields["rows_out"] = filtered.Len()

	resp = &app.DashboardResponse{
		Sheet:    ds.Sheet,
		Source:   ds.Len(),
		Filtered: filtered,
		Summary:  report.Summarize(filtered),
		Options:  report.Options(ds),
		Bounds:   report.DateBounds(ds),
		Schedule: report.Project(filtered),
	}
	for _, spec := range req.Charts {
		c, ok := report.BuildChart(filtered, spec)
		resp.Charts = append(resp.Charts, app.ChartResult{Spec: spec, Chart: c, Complete: ok})
	}
	return resp, nil
}

func authorize(session auth.Session) error {
	if !session.Authorized {
		return ErrUnauthorized
	}
	return nil
}
