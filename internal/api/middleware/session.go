package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/imagehub/imagehub-web/internal/core/domain"
)

// SessionOpener resolves a session id into a request session context.
type SessionOpener interface {
	Open(ctx context.Context, id string) *domain.SessionContext
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Session loads the session behind the cookie before the handler runs and
// writes the cookie back when login or logout changed the id.
func Session(opener SessionOpener, cfg CookieConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if ck, err := c.Cookie(cfg.Name); err == nil {
				id = ck.Value
			}

			sc := opener.Open(c.Request().Context(), id)
			c.Set(ContextKeySession, sc)

			c.Response().Before(func() {
				if !sc.Changed() {
					return
				}
				c.SetCookie(sessionCookie(cfg, sc.ID()))
			})

			return next(c)
		}
	}
}

func sessionCookie(cfg CookieConfig, id string) *http.Cookie {
	ck := &http.Cookie{
		Name:     cfg.Name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if id == "" {
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
		return ck
	}
	if cfg.TTL > 0 {
		ck.MaxAge = int(cfg.TTL / time.Second)
	}
	return ck
}

// SessionFrom returns the request session context. Requests that bypassed the
// Session middleware get a fresh anonymous one.
func SessionFrom(c echo.Context) *domain.SessionContext {
	if sc, ok := c.Get(ContextKeySession).(*domain.SessionContext); ok {
		return sc
	}
	sc := domain.NewSessionContext("")
	sc.Settle(domain.Session{})
	c.Set(ContextKeySession, sc)
	return sc
}
