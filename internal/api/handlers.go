package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexanderramin/suivi/internal/app"
	"github.com/alexanderramin/suivi/internal/auth"
	"github.com/alexanderramin/suivi/internal/domain"
	"github.com/alexanderramin/suivi/internal/render"
	"github.com/go-chi/chi/v5"
)

var errBadRequest = errors.New("bad request")

type ctxKey int

const sessionKey ctxKey = iota

type tokenSession struct {
	token   string
	session auth.Session
}

// requireSession resolves the bearer token into the request's session.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			s.respond(w, r, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}
		session, found := s.sessions.get(token)
		if !found {
			s.respond(w, r, http.StatusUnauthorized, errorResponse{Error: "unknown or expired token"})
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, tokenSession{token: token, session: session})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(ctx context.Context) tokenSession {
	ts, _ := ctx.Value(sessionKey).(tokenSession)
	return ts
}

// ── auth ─────────────────────────────────────────────────────────────────────

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid JSON body", errBadRequest))
		return
	}
	session, err := s.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, loginResponse{Token: s.sessions.add(session), Username: session.Username})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.remove(sessionFrom(r.Context()).token)
	w.WriteHeader(http.StatusNoContent)
}

// ── workbooks ────────────────────────────────────────────────────────────────

type workbookResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Sheets []string `json:"sheets"`
}

func (s *Server) uploadWorkbook(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context()).session
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: multipart field \"file\" is required", errBadRequest))
		return
	}
	defer file.Close()

	wb, err := s.svc.ReadWorkbook(r.Context(), session, file, header.Filename)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	id := s.books.add(session.Username, wb)
	s.respond(w, r, http.StatusCreated, workbookResponse{ID: id, Name: wb.Name, Sheets: wb.Sheets})
}

func (s *Server) listSheets(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context()).session
	id := chi.URLParam(r, "id")
	wb, err := s.books.get(session.Username, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, workbookResponse{ID: id, Name: wb.Name, Sheets: wb.Sheets})
}

// ── dashboard ────────────────────────────────────────────────────────────────

// build loads the sheet named in the path and runs one pass with the query's
// filters and the given charts.
func (s *Server) build(r *http.Request, charts ...domain.ChartSpec) (*app.DashboardResponse, error) {
	session := sessionFrom(r.Context()).session
	wb, err := s.books.get(session.Username, chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	sel, err := selectionFromQuery(r.URL.Query())
	if err != nil {
		return nil, err
	}
	ds, err := s.svc.LoadSheet(r.Context(), session, wb, sheetParam(r))
	if err != nil {
		return nil, err
	}
	return s.svc.Build(r.Context(), session, ds, app.DashboardRequest{Selection: sel, Charts: charts})
}

// sheetParam unescapes the sheet segment; sheet names often carry spaces.
func sheetParam(r *http.Request) string {
	raw := chi.URLParam(r, "sheet")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := s.build(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, newDashboardJSON(resp))
}

// chartPNG renders one chart from query parameters. An incomplete spec is
// not an error: the response is empty.
func (s *Server) chartPNG(w http.ResponseWriter, r *http.Request) {
	spec, err := chartFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !spec.Complete() {
		w.Header().Set("X-Suivi-Message", render.MsgIncomplete)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	resp, err := s.build(r, spec)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePNG(w, r, func(out io.Writer) error {
		return render.Chart(out, resp.Charts[0].Chart, s.opts.Render)
	})
}

func (s *Server) ganttPNG(w http.ResponseWriter, r *http.Request) {
	resp, err := s.build(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePNG(w, r, func(out io.Writer) error { return render.Gantt(out, resp.Schedule, s.opts.Render) })
}

func (s *Server) progressPNG(w http.ResponseWriter, r *http.Request) {
	resp, err := s.build(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePNG(w, r, func(out io.Writer) error { return render.Progress(out, resp.Schedule, s.opts.Render) })
}

// writePNG renders into a buffer first so a failure still yields a JSON
// error instead of a truncated image.
func (s *Server) writePNG(w http.ResponseWriter, r *http.Request, draw func(io.Writer) error) {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		s.writeError(w, r, fmt.Errorf("rendering png: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
