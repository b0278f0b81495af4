package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticGate_ValidCredentials(t *testing.T) {
	g := NewStaticGate(map[string]string{"admin": "2025", "user1": "2024"})

	s, err := g.Authenticate("admin", "2025")
	require.NoError(t, err)
	assert.True(t, s.Authorized)
	assert.Equal(t, "admin", s.Username)
	assert.False(t, s.LoginAt.IsZero())
	_, err = uuid.Parse(s.ID)
	assert.NoError(t, err)
}

func TestStaticGate_InvalidCredentials(t *testing.T) {
	g := NewStaticGate(map[string]string{"admin": "2025"})

	tests := []struct {
		name, user, pass string
	}{
		{"wrong password", "admin", "2024"},
		{"unknown user", "root", "2025"},
		{"empty", "", ""},
		{"case sensitive", "Admin", "2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := g.Authenticate(tt.user, tt.pass)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.False(t, s.Authorized)
		})
	}
}

func TestStaticGate_SessionsAreDistinct(t *testing.T) {
	g := NewStaticGate(map[string]string{"admin": "2025"})
	a, err := g.Authenticate("admin", "2025")
	require.NoError(t, err)
	b, err := g.Authenticate("admin", "2025")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewStaticGate_CopiesTable(t *testing.T) {
	users := map[string]string{"admin": "2025"}
	g := NewStaticGate(users)
	users["admin"] = "changed"

	_, err := g.Authenticate("admin", "2025")
	assert.NoError(t, err)
}
