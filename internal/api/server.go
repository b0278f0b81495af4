// Package api exposes the dashboard over HTTP. Every request runs one
// full recomputation over a read-only dataset; the only shared mutable
// state is the token and workbook registry.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/suivi/internal/auth"
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/importer"
	"github.com/alexanderramin/suivi/internal/render"
	"github.com/alexanderramin/suivi/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxUploadSize bounds a workbook upload.
const MaxUploadSize = 32 << 20

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string
	Render         render.Options
	// Registry is served on /metrics. A private registry is used when nil.
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// Server routes HTTP requests to the dashboard service.
type Server struct {
	svc      service.DashboardService
	opts     Options
	logger   *slog.Logger
	sessions *sessionRegistry
	books    *workbookRegistry
}

func NewServer(svc service.DashboardService, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{
		svc:      svc,
		opts:     opts,
		logger:   opts.Logger,
		sessions: newSessionRegistry(),
		books:    newWorkbookRegistry(),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelDebug),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{}))
	r.Post("/api/login", s.login)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Post("/api/logout", s.logout)
		r.Post("/api/workbooks", s.uploadWorkbook)
		r.Route("/api/workbooks/{id}", func(r chi.Router) {
			r.Get("/sheets", s.listSheets)
			r.Route("/sheets/{sheet}", func(r chi.Router) {
				r.Get("/dashboard", s.dashboard)
				r.Get("/chart.png", s.chartPNG)
				r.Get("/gantt.png", s.ganttPNG)
				r.Get("/progress.png", s.progressPNG)
			})
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// ── responses ────────────────────────────────────────────────────────────────

type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

// writeJSON encodes v before touching w, so an encoding failure leaves
// the response unwritten and can still become an error response.
func writeJSON(w http.ResponseWriter, status int, v any) (written bool, err error) {
	body, err := json.Marshal(v)
	if err != nil {
		return false, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(append(body, '\n'))
	return true, err
}

// respond writes v as JSON, or a 500 when v cannot be encoded.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	written, err := writeJSON(w, status, v)
	switch {
	case err == nil:
	case !written:
		s.writeError(w, r, fmt.Errorf("encoding response: %w", err))
	default:
		s.logger.Debug("writing response", "path", r.URL.Path, "error", err)
	}
}

// writeError maps service and domain errors onto status codes. Schema
// failures carry the list of missing columns.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	body := errorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var missing *importer.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		status = http.StatusUnprocessableEntity
		for _, c := range missing.Missing {
			body.Missing = append(body.Missing, string(c))
		}
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, importer.ErrSheetNotFound), errors.Is(err, errWorkbookNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownColumn),
		errors.Is(err, domain.ErrNonNumericColumn),
		errors.Is(err, domain.ErrUnknownChartKind),
		errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	if _, err := writeJSON(w, status, body); err != nil {
		s.logger.Error("writing error response", "path", r.URL.Path, "error", err)
	}
}
