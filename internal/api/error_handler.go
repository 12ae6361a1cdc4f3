package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/imagehub/imagehub-web/internal/api/middleware"
	"github.com/imagehub/imagehub-web/internal/api/web"
	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/service"
)

// errorResponse is the JSON error envelope of the probe endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

const msgInternal = "Ha ocurrido un error inesperado. Por favor, inténtelo más tarde."

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the HTML error page, or {"error": "<message>"} under /health.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if strings.HasPrefix(c.Request().URL.Path, "/health") {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}

		v := web.View{
			Title: fmt.Sprintf("Error %d", code),
			User:  middleware.SessionFrom(c).Session(),
			Data:  web.ErrorData{Status: code, Message: msg},
		}
		if rerr := c.Render(code, web.TemplateError, v); rerr != nil {
			log.Error().Err(rerr).Msg("render error page")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return he.Code, "Página no encontrada"
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrUnreachable):
		return http.StatusBadGateway, service.MsgUnreachable
	case errors.Is(err, domain.ErrForbiddenScreen):
		return http.StatusForbidden, "Acceso no permitido"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, msgInternal
}
