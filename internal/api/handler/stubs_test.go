package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/imagehub/imagehub-web/internal/api/middleware"
	"github.com/imagehub/imagehub-web/internal/api/web"
	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
	"github.com/imagehub/imagehub-web/internal/core/service"
	"github.com/imagehub/imagehub-web/internal/infrastructure/memory"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (domain.Session, error)
	signupFn func(ctx context.Context, form ports.SignupForm) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Signup(ctx context.Context, form ports.SignupForm) error {
	return s.signupFn(ctx, form)
}

type stubImageService struct {
	listFn      func(ctx context.Context, s domain.Session, page int) (*domain.ImagePage, error)
	uploadFn    func(ctx context.Context, s domain.Session, f *domain.UploadFile) error
	transformFn func(ctx context.Context, s domain.Session, id string, kind domain.TransformKind, p domain.TransformParams) error
	downloadFn  func(ctx context.Context, s domain.Session, id string, kind domain.ArtifactKind, name string) (*domain.Artifact, error)
	deleteFn    func(ctx context.Context, s domain.Session, id string) error
	calls       int
}

func (s *stubImageService) List(ctx context.Context, sess domain.Session, page int) (*domain.ImagePage, error) {
	if s.listFn == nil {
		return &domain.ImagePage{Content: []domain.Image{}, Page: page}, nil
	}
	return s.listFn(ctx, sess, page)
}

func (s *stubImageService) Upload(ctx context.Context, sess domain.Session, f *domain.UploadFile) error {
	s.calls++
	return s.uploadFn(ctx, sess, f)
}

func (s *stubImageService) Transform(ctx context.Context, sess domain.Session, id string, kind domain.TransformKind, p domain.TransformParams) error {
	s.calls++
	return s.transformFn(ctx, sess, id, kind, p)
}

func (s *stubImageService) Download(ctx context.Context, sess domain.Session, id string, kind domain.ArtifactKind, name string) (*domain.Artifact, error) {
	s.calls++
	return s.downloadFn(ctx, sess, id, kind, name)
}

func (s *stubImageService) Delete(ctx context.Context, sess domain.Session, id string) error {
	s.calls++
	return s.deleteFn(ctx, sess, id)
}

type stubAdminService struct {
	listFn      func(ctx context.Context, s domain.Session) ([]domain.User, error)
	createFn    func(ctx context.Context, s domain.Session, form ports.UserForm) error
	updateFn    func(ctx context.Context, s domain.Session, id domain.UserID, form ports.UserForm) error
	deleteFn    func(ctx context.Context, s domain.Session, id domain.UserID) error
	setActiveFn func(ctx context.Context, s domain.Session, id domain.UserID, active bool) error
	calls       int
}

func (s *stubAdminService) List(ctx context.Context, sess domain.Session) ([]domain.User, error) {
	if s.listFn == nil {
		return []domain.User{}, nil
	}
	return s.listFn(ctx, sess)
}


func (s *stubAdminService) Create(ctx context.Context, sess domain.Session, form ports.UserForm) error {
	s.calls++
	return s.createFn(ctx, sess, form)
}

func (s *stubAdminService) Update(ctx context.Context, sess domain.Session, id domain.UserID, form ports.UserForm) error {
	s.calls++
	return s.updateFn(ctx, sess, id, form)
}

func (s *stubAdminService) Delete(ctx context.Context, sess domain.Session, id domain.UserID) error {
	s.calls++
	return s.deleteFn(ctx, sess, id)
}

func (s *stubAdminService) SetActive(ctx context.Context, sess domain.Session, id domain.UserID, active bool) error {
	s.calls++
	return s.setActiveFn(ctx, sess, id, active)
}

type stubProfiles struct {
	meFn func(ctx context.Context, s domain.Session) (*domain.User, error)
}

func (s *stubProfiles) Me(ctx context.Context, sess domain.Session) (*domain.User, error) {
	if s.meFn == nil {
		return nil, domain.ErrNotFound
	}
	return s.meFn(ctx, sess)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

var (
	userSession  = domain.Session{Token: "tok-user", Email: "ana@example.com", Name: "Ana", Role: domain.RoleUser}
	adminSession = domain.Session{Token: "tok-admin", Email: "root@example.com", Name: "Root", Role: domain.RoleAdmin}
)

// testEnv wires handlers over the real renderer, the in-memory session
// backend and the real session service.
type testEnv struct {
	e        *echo.Echo
	store    *memory.SessionStore
	sessions *service.SessionService
	seq      *service.Sequencer
	screen   Screen
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	r, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e := echo.New()
	e.Renderer = r

	store := memory.NewSessionStore()
	sessions := service.NewSessionService(store, time.Hour, zerolog.Nop())
	return &testEnv{
		e:        e,
		store:    store,
		sessions: sessions,
		seq:      service.NewSequencer(memory.NewSequenceGuard(), zerolog.Nop()),
		screen:   NewScreen(sessions, false, zerolog.Nop()),
	}
}

// context builds an echo context carrying the session stored under sid. An
// empty sess means anonymous.
func (env *testEnv) context(t *testing.T, req *http.Request, sess domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	id := ""
	if sess.Complete() {
		id = "sid-" + sess.Token
		if err := env.store.Save(req.Context(), id, sess, time.Hour); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.Set(middleware.ContextKeySession, env.sessions.Open(req.Context(), id))
	return c, rec
}

func formRequest(method, target string, form url.Values) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	return req
}

func withCookies(req *http.Request, cookies ...*http.Cookie) *http.Request {
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return req
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			found = ck
		}
	}
	return found
}

func flashOf(t *testing.T, rec *httptest.ResponseRecorder) (web.Flash, bool) {
	t.Helper()
	ck := responseCookie(rec, CookieFlash)
	if ck == nil || ck.Value == "" {
		return web.Flash{}, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		t.Fatalf("flash cookie not base64: %v", err)
	}
	var f web.Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("flash cookie not json: %v", err)
	}
	return f, true
}

func flashCookie(t *testing.T, f web.Flash) *http.Cookie {
	t.Helper()
	raw, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal flash: %v", err)
	}
	return &http.Cookie{Name: CookieFlash, Value: base64.RawURLEncoding.EncodeToString(raw)}
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

func flashFixture(msg string) web.Flash {
	return web.Flash{Kind: web.FlashSuccess, Message: msg}
}
