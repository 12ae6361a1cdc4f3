package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// UserID is an opaque user identifier. The API has shipped both numeric and
// UUID identifiers, so both JSON shapes decode into the same string form.
type UserID string

func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = UserID(n.String())
	return nil
}

// User is an account record as listed by the admin endpoints.
type User struct {
	ID               UserID    `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phoneNumber"`
	Direction        string    `json:"direction"`
	Role             Role      `json:"role"`
	Active           bool      `json:"active"`
	RegistrationDate Timestamp `json:"registrationDate"`
}

// UnmarshalJSON reads the id from "id" and falls back to "idCard", which some
// API versions use to key listed users.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var aux struct {
		plain
		IDCard UserID `json:"idCard"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.IDCard
	}
	return nil
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserInput is the full record submitted when creating an account. Password is
// write-only and never read back from the API.
type UserInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	Direction   string `json:"direction"`
	Role        Role   `json:"role"`
	Active      *bool  `json:"active,omitempty"`
}

// UserPatch is a partial update. Nil fields are omitted from the payload, so
// an empty password means "unchanged".
type UserPatch struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Password    *string `json:"password,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Direction   *string `json:"direction,omitempty"`
	Role        *Role   `json:"role,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// LoginResult is the body of a successful login or registration.
type LoginResult struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
	Message   string `json:"message"`
}

// DisplayName prefers the explicit name and falls back to first + last name.
func (r LoginResult) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Session converts the login answer into a session record.
func (r LoginResult) Session() Session {
	return Session{
		Token: r.Token,
		Email: r.Email,
		Name:  r.DisplayName(),
		Role:  r.Role,
	}
}
