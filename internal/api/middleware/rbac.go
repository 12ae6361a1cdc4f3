package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/imagehub/imagehub-web/internal/core/domain"
)

// RequireRole lets only authenticated sessions holding role through. Everyone
// else is handed to denied.
func RequireRole(role domain.Role, denied echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sc := SessionFrom(c)
			if !sc.IsAuthenticated() || sc.Role() != role {
				return denied(c)
			}
			return next(c)
		}
	}
}
