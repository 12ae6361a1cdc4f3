package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/imagehub/imagehub-web/internal/api/middleware"
	"github.com/imagehub/imagehub-web/internal/api/web"
	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
	"github.com/imagehub/imagehub-web/internal/core/service"
)

const (
	titleLogin  = "Iniciar Sesión"
	titleSignup = "Crear Cuenta"
)

// LoginData is the payload of the login page.
type LoginData struct {
	Email string
	Error string
}

// SignupData is the payload of the signup page. The password fields are never
// echoed back.
type SignupData struct {
	Form    ports.SignupForm
	Error   string
	Success string
}

type AuthHandler struct {
	Screen
	authService ports.AuthService
	signupDelay time.Duration
}

func NewAuthHandler(s Screen, authService ports.AuthService, signupDelay time.Duration) *AuthHandler {
	return &AuthHandler{Screen: s, authService: authService, signupDelay: signupDelay}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	email := c.FormValue("email")

	sess, err := h.authService.Login(ctx, email, c.FormValue("password"))
	if err != nil {
		status, msg := authFailure(err, service.MsgLoginFailed)
		if status >= http.StatusInternalServerError {
			h.logger.Warn().Err(err).Msg("login failed")
		}
		return c.Render(status, string(domain.PageLogin), h.view(c, titleLogin, web.Flash{}, LoginData{Email: email, Error: msg}))
	}

	if err := h.sessions.Login(ctx, middleware.SessionFrom(c), sess); err != nil {
		h.logger.Error().Err(err).Msg("could not store session")
		data := LoginData{Email: email, Error: service.MsgAuthUnreachable}
		return c.Render(http.StatusServiceUnavailable, string(domain.PageLogin), h.view(c, titleLogin, web.Flash{}, data))
	}
	return home(c, "")
}

// Signup handles POST /signup. Success shows a confirmation and moves to the
// login page after the configured delay.
func (h *AuthHandler) Signup(c echo.Context) error {
	var form ports.SignupForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	err := h.authService.Signup(c.Request().Context(), form)
	form.Password, form.ConfirmPassword = "", ""
	if err != nil {
		status, msg := authFailure(err, service.MsgSignupFailed)
		if status >= http.StatusInternalServerError {
			h.logger.Warn().Err(err).Msg("signup failed")
		}
		return c.Render(status, string(domain.PageSignup), h.view(c, titleSignup, web.Flash{}, SignupData{Form: form, Error: msg}))
	}

	v := h.view(c, titleSignup, web.Flash{}, SignupData{Success: service.MsgSignupSuccess})
	v.Refresh = &web.Refresh{Seconds: int(h.signupDelay / time.Second), URL: "/go/login"}
	return c.Render(http.StatusOK, string(domain.PageSignup), v)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context(), middleware.SessionFrom(c)); err != nil {
		h.logger.Warn().Err(err).Msg("could not drop session")
	}
	h.setView(c, string(domain.PageLogin))
	return home(c, "")
}

// authFailure maps a login or signup error to a status and message.
func authFailure(err error, fallback string) (int, string) {
	switch {
	case isValidation(err):
		return http.StatusUnprocessableEntity, domain.MessageOf(err, fallback)
	case errors.Is(err, domain.ErrUnreachable):
		return http.StatusBadGateway, service.MsgAuthUnreachable
	}

	status := http.StatusUnauthorized
	var ae *domain.APIError
	if errors.As(err, &ae) {
		switch {
		case ae.Status >= http.StatusInternalServerError:
			status = http.StatusBadGateway
		case ae.Status >= http.StatusBadRequest:
			status = ae.Status
		}
	}
	return status, domain.MessageOf(err, fallback)
}
