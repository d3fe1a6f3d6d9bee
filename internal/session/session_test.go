package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("superuser")
	assert.ErrorIs(t, err, ErrBadRole)
}

func TestLoginReplacesAndLogoutClears(t *testing.T) {
	g := Restore(nil)
	_, ok := g.Current()
	assert.False(t, ok, "initial state is logged out")

	require.NoError(t, g.Login(Session{ID: "u1", Email: "a@example.com", Role: RoleCustomer}))
	require.NoError(t, g.Login(Session{ID: "u2", Email: "b@example.com", Role: RoleAdmin}))

	cur, ok := g.Current()
	require.True(t, ok)
	assert.Equal(t, "u2", cur.ID, "re-login replaces the prior session")

	g.Logout()
	_, ok = g.Current()
	assert.False(t, ok)
}

func TestLoginRejectsBadRole(t *testing.T) {
	g := Restore(nil)
	assert.ErrorIs(t, g.Login(Session{Email: "a@example.com", Role: "root"}), ErrBadRole)
}

func TestRestoreDropsBadStoredSessions(t *testing.T) {
	_, ok := Restore(&Session{Email: "a@example.com", Role: "root"}).Current()
	assert.False(t, ok)

	_, ok = Restore(&Session{Role: RoleAdmin}).Current()
	assert.False(t, ok, "a session without an email is not a session")

	cur, ok := Restore(&Session{ID: "u1", Email: "a@example.com", Role: RoleAdmin}).Current()
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, cur.Role)
}
