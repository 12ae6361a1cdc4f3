package ports

import (
	"context"

	"github.com/imagehub/imagehub-web/internal/core/domain"
)

// SignupForm carries the raw registration form fields.
type SignupForm struct {
	FirstName       string `form:"firstName"       validate:"required"`
	LastName        string `form:"lastName"        validate:"required"`
	Email           string `form:"email"           validate:"required,contains=@"`
	Password        string `form:"password"        validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"eqfield=Password"`
	PhoneNumber     string `form:"phoneNumber"     validate:"required"`
	Direction       string `form:"direction"       validate:"required"`
}

// UserForm carries the admin create/edit form fields. Email and Password are
// checked by the service since their rules differ between create and edit.
type UserForm struct {
	FirstName   string `form:"firstName"   validate:"required"`
	LastName    string `form:"lastName"    validate:"required"`
	Email       string `form:"email"`
	Password    string `form:"password"`
	PhoneNumber string `form:"phoneNumber" validate:"required"`
	Direction   string `form:"direction"   validate:"required"`
	Role        string `form:"role"        validate:"required,oneof=USER ADMIN OPERATOR"`
	Active      bool   `form:"active"`
}

// FormFromUser preloads the edit form. The password stays blank.
func FormFromUser(u domain.User) UserForm {
	return UserForm{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Direction:   u.Direction,
		Role:        string(u.Role),
		Active:      u.Active,
	}
}

// AuthService drives the login and signup screens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Signup(ctx context.Context, form SignupForm) error
}

// ImageService drives the end-user dashboard.
type ImageService interface {
	List(ctx context.Context, s domain.Session, page int) (*domain.ImagePage, error)
	Upload(ctx context.Context, s domain.Session, f *domain.UploadFile) error
	Transform(ctx context.Context, s domain.Session, imageID string, kind domain.TransformKind, params domain.TransformParams) error
	Download(ctx context.Context, s domain.Session, imageID string, kind domain.ArtifactKind, imageName string) (*domain.Artifact, error)
	Delete(ctx context.Context, s domain.Session, imageID string) error
}

// AdminService drives the administrator dashboard.
type AdminService interface {
	List(ctx context.Context, s domain.Session) ([]domain.User, error)
	Create(ctx context.Context, s domain.Session, form UserForm) error
	Update(ctx context.Context, s domain.Session, id domain.UserID, form UserForm) error
	Delete(ctx context.Context, s domain.Session, id domain.UserID) error
	SetActive(ctx context.Context, s domain.Session, id domain.UserID, active bool) error
}

// SessionManager binds request session contexts to the session backend.
type SessionManager interface {
	Open(ctx context.Context, id string) *domain.SessionContext
	Login(ctx context.Context, sc *domain.SessionContext, s domain.Session) error
	Logout(ctx context.Context, sc *domain.SessionContext) error
	Expire(ctx context.Context, sc *domain.SessionContext) error
	Rename(ctx context.Context, sc *domain.SessionContext, name string) error
	Ping(ctx context.Context) error
}
