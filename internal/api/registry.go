package api

import (
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/suivi/internal/auth"
	"github.com/alexanderramin/suivi/internal/importer"
	"github.com/google/uuid"
)

var errWorkbookNotFound = errors.New("workbook not found")

// sessionRegistry maps bearer tokens to sessions.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]auth.Session)}
}

func (r *sessionRegistry) add(s auth.Session) string {
	token := uuid.NewString()
	r.mu.Lock()
	r.sessions[token] = s
	r.mu.Unlock()
	return token
}

func (r *sessionRegistry) get(token string) (auth.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	return s, ok
}

func (r *sessionRegistry) remove(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

// workbookRegistry holds uploaded workbooks. A workbook is visible only
// to the user who uploaded it.
type workbookRegistry struct {
	mu    sync.RWMutex
	books map[string]storedWorkbook
}

type storedWorkbook struct {
	owner string
	wb    *importer.Workbook
}

func newWorkbookRegistry() *workbookRegistry {
	return &workbookRegistry{books: make(map[string]storedWorkbook)}
}

func (r *workbookRegistry) add(owner string, wb *importer.Workbook) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.books[id] = storedWorkbook{owner: owner, wb: wb}
	r.mu.Unlock()
	return id
}

func (r *workbookRegistry) get(owner, id string) (*importer.Workbook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[id]
	if !ok || b.owner != owner {
		return nil, fmt.Errorf("%w: %s", errWorkbookNotFound, id)
	}
	return b.wb, nil
}
