// Package session holds the single self-asserted identity. There is no
// credential verification anywhere: presence of a session is what gates
// checkout, and the role is whatever the login form claimed.
package session

import "errors"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

var ErrBadRole = errors.New("role must be customer or admin")

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrBadRole
}

type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Gate holds at most one active session. Absence is both the initial and
// the logged-out state.
type Gate struct {
	current *Session
}

// Restore validates a stored session at the load boundary; anything with a
// bad role or missing email is treated as logged out.
func Restore(s *Session) *Gate {
	g := &Gate{}
	if s == nil || s.Email == "" {
		return g
	}
	if _, err := ParseRole(string(s.Role)); err != nil {
		return g
	}
	cp := *s
	g.current = &cp
	return g
}

// Login replaces the current session unconditionally.
func (g *Gate) Login(s Session) error {
	if _, err := ParseRole(string(s.Role)); err != nil {
		return err
	}
	g.current = &s
	return nil
}

func (g *Gate) Logout() { g.current = nil }

// Current returns a copy of the active session, if any.
func (g *Gate) Current() (Session, bool) {
	if g.current == nil {
		return Session{}, false
	}
	return *g.current, true
}
