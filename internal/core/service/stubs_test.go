package service

import (
	"context"

	"github.com/imagehub/imagehub-web/internal/core/domain"
)

type stubAuthAPI struct {
	loginFn    func(ctx context.Context, email, password string) (*domain.LoginResult, error)
	registerFn func(ctx context.Context, in domain.UserInput) (*domain.LoginResult, error)
	calls      int
}

func (s *stubAuthAPI) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	s.calls++
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthAPI) Register(ctx context.Context, in domain.UserInput) (*domain.LoginResult, error) {
	s.calls++
	return s.registerFn(ctx, in)
}

type stubImageAPI struct {
	listFn      func(ctx context.Context, s domain.Session, page, size int) (*domain.ImagePage, error)
	uploadFn    func(ctx context.Context, s domain.Session, f domain.UploadFile) error
	transformFn func(ctx context.Context, s domain.Session, id string, req domain.TransformRequest) error
	downloadFn  func(ctx context.Context, s domain.Session, id string, kind domain.ArtifactKind) (*domain.Artifact, error)
	deleteFn    func(ctx context.Context, s domain.Session, id string) error
	calls       int
}

func (s *stubImageAPI) ListImages(ctx context.Context, sess domain.Session, page, size int) (*domain.ImagePage, error) {
	s.calls++
	return s.listFn(ctx, sess, page, size)
}

func (s *stubImageAPI) Upload(ctx context.Context, sess domain.Session, f domain.UploadFile) error {
	s.calls++
	return s.uploadFn(ctx, sess, f)
}

func (s *stubImageAPI) Transform(ctx context.Context, sess domain.Session, id string, req domain.TransformRequest) error {
	s.calls++
	return s.transformFn(ctx, sess, id, req)
}

func (s *stubImageAPI) Download(ctx context.Context, sess domain.Session, id string, kind domain.ArtifactKind) (*domain.Artifact, error) {
	s.calls++
	return s.downloadFn(ctx, sess, id, kind)
}

func (s *stubImageAPI) DeleteImage(ctx context.Context, sess domain.Session, id string) error {
	s.calls++
	return s.deleteFn(ctx, sess, id)
}

type stubUserAPI struct {
	users     []domain.User
	created   *domain.UserInput
	patched   *domain.UserPatch
	listErr   error
	activeSet map[domain.UserID]bool
	deleted   []domain.UserID
	calls     int
}

func (s *stubUserAPI) ListUsers(context.Context, domain.Session) ([]domain.User, error) {
	s.calls++
	return s.users, s.listErr
}

func (s *stubUserAPI) Me(context.Context, domain.Session) (*domain.User, error) {
	s.calls++
	if len(s.users) == 0 {
		return nil, domain.ErrNotFound
	}
	return &s.users[0], nil
}

func (s *stubUserAPI) CreateUser(_ context.Context, _ domain.Session, in domain.UserInput) error {
	s.calls++
	s.created = &in
	return nil
}

func (s *stubUserAPI) UpdateUser(_ context.Context, _ domain.Session, _ domain.UserID, p domain.UserPatch) error {
	s.calls++
	s.patched = &p
	return nil
}

func (s *stubUserAPI) DeleteUser(_ context.Context, _ domain.Session, id domain.UserID) error {
	s.calls++
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubUserAPI) SetActive(_ context.Context, _ domain.Session, id domain.UserID, active bool) error {
	s.calls++
	if s.activeSet == nil {
		s.activeSet = make(map[domain.UserID]bool)
	}
	s.activeSet[id] = active
	return nil
}
