package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
)

// AuthService implements the login and signup screens.
type AuthService struct {
	api      ports.AuthAPI
	validate *formValidator
	logger   zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, logger zerolog.Logger) *AuthService {
	return &AuthService{api: api, validate: newFormValidator(), logger: logger}
}

// Login exchanges credentials for a complete session. A 2xx answer without a
// token counts as a rejection.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Session{}, reject("login", MsgRequiredFields)
	}

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	if res.Token == "" {
		return domain.Session{}, &domain.APIError{Status: http.StatusOK, Message: res.Message}
	}

	sess := res.Session()
	if sess.Email == "" {
		sess.Email = email
	}
	if sess.Name == "" {
		sess.Name = sess.Email
	}
	role, ok := domain.ParseRole(string(sess.Role))
	if !ok {
		s.logger.Warn().Str("role", string(sess.Role)).Msg("login answer carries unknown role")
		return domain.Session{}, &domain.APIError{Status: http.StatusOK}
	}
	sess.Role = role
	return sess, nil
}

// Signup checks the form locally, then registers a USER account. Success
// requires a token in the answer, although the token itself is not kept.
func (s *AuthService) Signup(ctx context.Context, form ports.SignupForm) error {
	trimAll(&form.FirstName, &form.LastName, &form.Email, &form.PhoneNumber, &form.Direction)
	if err := s.validate.check("signup", form); err != nil {
		return err
	}

	res, err := s.api.Register(ctx, domain.UserInput{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       form.Email,
		Password:    form.Password,
		PhoneNumber: normalisePhone(form.PhoneNumber),
		Direction:   form.Direction,
		Role:        domain.RoleUser,
	})
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	if res.Token == "" {
		return &domain.APIError{Status: http.StatusOK, Message: res.Message}
	}
	s.logger.Info().Str("email", form.Email).Msg("account registered")
	return nil
}

var _ ports.AuthService = (*AuthService)(nil)
