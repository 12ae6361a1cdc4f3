package domain

import (
	"net/http"
	"strings"
)

// Role is the account role reported by the ImageHub API.
type Role string

const (
	RoleUser     Role = "USER"
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
)

// ParseRole normalises s into a known Role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleUser, RoleAdmin, RoleOperator:
		return r, true
	default:
		return "", false
	}
}

// Storage keys of a persisted session record. A record is only usable when all
// four are present.
const (
	KeyToken = "token"
	KeyEmail = "email"
	KeyName  = "name"
	KeyRole  = "role"
)

// SessionKeys lists the persisted keys in a stable order.
var SessionKeys = []string{KeyToken, KeyEmail, KeyName, KeyRole}

// Session is the client-held identity: bearer token plus cached profile fields.
type Session struct {
	Token string
	Email string
	Name  string
	Role  Role
}

// Complete reports whether every field of the session is present.
func (s Session) Complete() bool {
	return s.Token != "" && s.Email != "" && s.Name != "" && s.Role != ""
}

// Fields flattens the session into its four storage keys.
func (s Session) Fields() map[string]string {
	return map[string]string{
		KeyToken: s.Token,
		KeyEmail: s.Email,
		KeyName:  s.Name,
		KeyRole:  string(s.Role),
	}
}

// SessionFromFields rebuilds a session from stored keys. Missing keys stay empty,
// so callers must check Complete before trusting the result.
func SessionFromFields(fields map[string]string) Session {
	return Session{
		Token: fields[KeyToken],
		Email: fields[KeyEmail],
		Name:  fields[KeyName],
		Role:  Role(fields[KeyRole]),
	}
}

// AuthHeaders builds the headers attached to every authenticated API call.
// The token is sent as-is; its shape and expiry are never inspected here.
func (s Session) AuthHeaders() http.Header {
	h := make(http.Header, 2)
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", "Bearer "+s.Token)
	return h
}

// SessionState is the lifecycle state of a per-request session context.
type SessionState int

const (
	StateLoading SessionState = iota
	StateAuthenticated
	StateAnonymous
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}
