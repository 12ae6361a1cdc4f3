package ports

import (
	"context"

	"github.com/imagehub/imagehub-web/internal/core/domain"
)

// AuthAPI wraps the unauthenticated account endpoints.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	Register(ctx context.Context, in domain.UserInput) (*domain.LoginResult, error)
}

// ImageAPI wraps the end-user image endpoints.
type ImageAPI interface {
	ListImages(ctx context.Context, s domain.Session, page, size int) (*domain.ImagePage, error)
	Upload(ctx context.Context, s domain.Session, f domain.UploadFile) error
	Transform(ctx context.Context, s domain.Session, imageID string, req domain.TransformRequest) error
	Download(ctx context.Context, s domain.Session, imageID string, kind domain.ArtifactKind) (*domain.Artifact, error)
	DeleteImage(ctx context.Context, s domain.Session, imageID string) error
}

// UserAPI wraps the administrator user endpoints.
type UserAPI interface {
	ListUsers(ctx context.Context, s domain.Session) ([]domain.User, error)
	Me(ctx context.Context, s domain.Session) (*domain.User, error)
	CreateUser(ctx context.Context, s domain.Session, in domain.UserInput) error
	UpdateUser(ctx context.Context, s domain.Session, id domain.UserID, patch domain.UserPatch) error
	DeleteUser(ctx context.Context, s domain.Session, id domain.UserID) error
	SetActive(ctx context.Context, s domain.Session, id domain.UserID, active bool) error
}
