// Package auth implements the login gate in front of the dashboard. It is
// a flat username/password table compared in plain text and is not a
// security boundary.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("incorrect username or password")

// Session is the explicit, per-login context passed to service entry
// points.
type Session struct {
	ID         string
	Username   string
	Authorized bool
	LoginAt    time.Time
}

// Anonymous returns an unauthorized session.
func Anonymous() Session { return Session{} }

// Gate authenticates a username and password.
type Gate interface {
	Authenticate(username, password string) (Session, error)
}

// StaticGate checks credentials against a fixed users table.
type StaticGate struct {
	users map[string]string
	now   func() time.Time
}

// NewStaticGate copies users so later changes to the map have no effect.
func NewStaticGate(users map[string]string) *StaticGate {
	table := make(map[string]string, len(users))
	for u, p := range users {
		table[u] = p
	}
	return &StaticGate{users: table, now: time.Now}
}

func (g *StaticGate) Authenticate(username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	want, ok := g.users[username]
	if !ok || want != password {
		return Anonymous(), ErrInvalidCredentials
	}
	return Session{
		ID:         uuid.NewString(),
		Username:   username,
		Authorized: true,
		LoginAt:    g.now().UTC(),
	}, nil
}
