package imagehub

import (
	"context"
	"net/http"
	"net/url"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
)

// ListUsers returns every account. Administrators only.
func (c *Client) ListUsers(ctx context.Context, s domain.Session) ([]domain.User, error) {
	cl, err := jsonCall("list_users", http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}
	var out []domain.User
	if err := c.sendJSON(ctx, cl.as(s), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.User{}
	}
	return out, nil
}

// Me returns the profile of the session's own account.
func (c *Client) Me(ctx context.Context, s domain.Session) (*domain.User, error) {
	cl, err := jsonCall("me", http.MethodGet, "/api/users/me", nil)
	if err != nil {
		return nil, err
	}
	var out domain.User
	if err := c.sendJSON(ctx, cl.as(s), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser registers an account with an explicit role on behalf of an admin.
func (c *Client) CreateUser(ctx context.Context, s domain.Session, in domain.UserInput) error {
	cl, err := jsonCall("create_user", http.MethodPost, "/api/auth/register", in)
	if err != nil {
		return err
	}
	return c.sendJSON(ctx, cl.as(s), nil)
}

// UpdateUser sends a partial update; nil patch fields are left out.
func (c *Client) UpdateUser(ctx context.Context, s domain.Session, id domain.UserID, patch domain.UserPatch) error {
	cl, err := jsonCall("update_user", http.MethodPut, userPath(id), patch)
	if err != nil {
		return err
	}
	return c.sendJSON(ctx, cl.as(s), nil)
}

// DeleteUser removes an account permanently.
func (c *Client) DeleteUser(ctx context.Context, s domain.Session, id domain.UserID) error {
	cl, err := jsonCall("delete_user", http.MethodDelete, userPath(id), nil)
	if err != nil {
		return err
	}
	return c.sendJSON(ctx, cl.as(s), nil)
}

// SetActive flips the active flag through the activate/deactivate endpoints.
func (c *Client) SetActive(ctx context.Context, s domain.Session, id domain.UserID, active bool) error {
	suffix, action := "/deactivate", "deactivate_user"
	if active {
		suffix, action = "/activate", "activate_user"
	}
	cl, err := jsonCall(action, http.MethodPatch, userPath(id)+suffix, nil)
	if err != nil {
		return err
	}
	return c.sendJSON(ctx, cl.as(s), nil)
}

func userPath(id domain.UserID) string {
	return "/api/users/" + url.PathEscape(string(id))
}

var _ ports.UserAPI = (*Client)(nil)
