package service

import (
	"github.com/alexanderramin/suivi/internal/app"
)

// DashboardService is the single entry point used by every surface. Each
// method takes the caller's session explicitly.
type DashboardService interface {
	app.LoginUseCase
	app.IngestUseCase
	app.DashboardUseCase
}
