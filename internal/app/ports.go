package app

import (
	"context"
	"io"

	"github.com/alexanderramin/suivi/internal/auth"
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/importer"
)

// LoginUseCase turns credentials into an explicit session.
type LoginUseCase interface {
	Login(ctx context.Context, username, password string) (auth.Session, error)
}

// IngestUseCase reads workbooks and loads validated sheets.
type IngestUseCase interface {
	OpenWorkbook(ctx context.Context, session auth.Session, path string) (*importer.Workbook, error)
	ReadWorkbook(ctx context.Context, session auth.Session, r io.Reader, name string) (*importer.Workbook, error)
	LoadSheet(ctx context.Context, session auth.Session, wb *importer.Workbook, sheet string) (*domain.Dataset, error)
}

// DashboardUseCase runs one full recomputation pass over a loaded sheet.
type DashboardUseCase interface {
	Build(ctx context.Context, session auth.Session, ds *domain.Dataset, req DashboardRequest) (*DashboardResponse, error)
}
