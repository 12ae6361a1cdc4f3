package imagehub

import (
	"context"
	"net/http"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts the credentials to /api/auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	cl, err := jsonCall("login", http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var out domain.LoginResult
	if err := c.sendJSON(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register posts a new account to /api/auth/register without credentials.
func (c *Client) Register(ctx context.Context, in domain.UserInput) (*domain.LoginResult, error) {
	cl, err := jsonCall("register", http.MethodPost, "/api/auth/register", in)
	if err != nil {
		return nil, err
	}
	var out domain.LoginResult
	if err := c.sendJSON(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var _ ports.AuthAPI = (*Client)(nil)
