package middleware

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
)

// CSRFFieldName is the hidden form field carrying the token.
const CSRFFieldName = "csrf_token"

// CSRF protects form posts with gorilla/csrf. An empty key disables it.
func CSRF(key []byte, secure bool) echo.MiddlewareFunc {
	if len(key) == 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName(CSRFFieldName),
		csrf.CookieName("imagehub_csrf"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Solicitud no válida. Recargue la página e inténtelo de nuevo.", http.StatusForbidden)
		})),
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var nextErr error
			h := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.SetRequest(r)
				nextErr = next(c)
			}))

			r := c.Request()
			if !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			h.ServeHTTP(c.Response(), r)
			return nextErr
		}
	}
}
