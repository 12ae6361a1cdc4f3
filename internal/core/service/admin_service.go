package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
)

const minPasswordLen = 6

// AdminService implements the administrator dashboard.
type AdminService struct {
	api      ports.UserAPI
	validate *formValidator
	logger   zerolog.Logger
}

func NewAdminService(api ports.UserAPI, logger zerolog.Logger) *AdminService {
	return &AdminService{api: api, validate: newFormValidator(), logger: logger}
}

func (s *AdminService) List(ctx context.Context, sess domain.Session) ([]domain.User, error) {
	users, err := s.api.ListUsers(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create registers an account with the role picked in the form.
func (s *AdminService) Create(ctx context.Context, sess domain.Session, form ports.UserForm) error {
	normaliseUserForm(&form)
	if err := s.validate.check("user", form); err != nil {
		return err
	}
	if form.Email == "" || form.Password == "" {
		return reject("user", MsgRequiredFields)
	}
	if !strings.Contains(form.Email, "@") {
		return reject("user", MsgInvalidEmail)
	}
	if len(form.Password) < minPasswordLen {
		return reject("user", MsgPasswordTooShort)
	}

	active := form.Active
	err := s.api.CreateUser(ctx, sess, domain.UserInput{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       form.Email,
		Password:    form.Password,
		PhoneNumber: normalisePhone(form.PhoneNumber),
		Direction:   form.Direction,
		Role:        domain.Role(form.Role),
		Active:      &active,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	s.logger.Info().Str("email", form.Email).Str("role", form.Role).Msg("user created")
	return nil
}

// Update sends a partial update. The email is fixed after creation and a
// blank password leaves the current one unchanged.
func (s *AdminService) Update(ctx context.Context, sess domain.Session, id domain.UserID, form ports.UserForm) error {
	normaliseUserForm(&form)
	if err := s.validate.check("user", form); err != nil {
		return err
	}
	if form.Password != "" && len(form.Password) < minPasswordLen {
		return reject("user", MsgPasswordTooShort)
	}

	phone := normalisePhone(form.PhoneNumber)
	role := domain.Role(form.Role)
	active := form.Active
	patch := domain.UserPatch{
		FirstName:   &form.FirstName,
		LastName:    &form.LastName,
		PhoneNumber: &phone,
		Direction:   &form.Direction,
		Role:        &role,
		Active:      &active,
	}
	if form.Password != "" {
		patch.Password = &form.Password
	}

	if err := s.api.UpdateUser(ctx, sess, id, patch); err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	s.logger.Info().Str("user_id", string(id)).Msg("user updated")
	return nil
}

func (s *AdminService) Delete(ctx context.Context, sess domain.Session, id domain.UserID) error {
	if err := s.api.DeleteUser(ctx, sess, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	s.logger.Info().Str("user_id", string(id)).Msg("user deleted")
	return nil
}

func (s *AdminService) SetActive(ctx context.Context, sess domain.Session, id domain.UserID, active bool) error {
	if err := s.api.SetActive(ctx, sess, id, active); err != nil {
		return fmt.Errorf("set user %s active=%t: %w", id, active, err)
	}
	return nil
}

func normaliseUserForm(f *ports.UserForm) {
	trimAll(&f.FirstName, &f.LastName, &f.Email, &f.PhoneNumber, &f.Direction)
	f.Role = strings.ToUpper(strings.TrimSpace(f.Role))
}

var _ ports.AdminService = (*AdminService)(nil)
