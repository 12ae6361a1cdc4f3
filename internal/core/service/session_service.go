package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
	"github.com/imagehub/imagehub-web/internal/pkg/metrics"
)

// SessionService binds request session contexts to the session backend.
type SessionService struct {
	store  ports.SessionStore
	ttl    time.Duration
	newID  func() string
	logger zerolog.Logger
}

func NewSessionService(store ports.SessionStore, ttl time.Duration, logger zerolog.Logger) *SessionService {
	return &SessionService{
		store:  store,
		ttl:    ttl,
		newID:  uuid.NewString,
		logger: logger,
	}
}

// Open reads the record behind id. Unknown ids and partial records settle
// anonymous; a backend failure leaves the context loading.
func (s *SessionService) Open(ctx context.Context, id string) *domain.SessionContext {
	sc := domain.NewSessionContext(id)
	if id == "" {
		sc.Settle(domain.Session{})
		return sc
	}

	sess, err := s.store.Load(ctx, id)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		sc.Settle(domain.Session{})
	case err != nil:
		s.logger.Error().Err(err).Msg("session backend unavailable")
	default:
		sc.Settle(sess)
	}
	return sc
}

// Login stores sess under a fresh id and drops the previous record.
func (s *SessionService) Login(ctx context.Context, sc *domain.SessionContext, sess domain.Session) error {
	if !sess.Complete() {
		return fmt.Errorf("login: incomplete session")
	}
	id := s.newID()
	if err := s.store.Save(ctx, id, sess, tokenTTL(sess.Token, s.ttl, time.Now())); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if old := sc.ID(); old != "" {
		if err := s.store.Delete(ctx, old); err != nil {
			s.logger.Warn().Err(err).Msg("could not drop previous session")
		}
	}
	sc.Authenticate(id, sess)
	metrics.SessionTransitionsTotal.WithLabelValues("login").Inc()
	s.logger.Info().Str("email", sess.Email).Str("role", string(sess.Role)).Msg("session opened")
	return nil
}

// tokenTTL caps limit at the expiry of a JWT bearer token. Opaque tokens, tokens
// without exp and already expired tokens keep limit; the API rejects the latter
// on first use.
func tokenTTL(token string, limit time.Duration, now time.Time) time.Duration {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return limit
	}
	left := claims.ExpiresAt.Sub(now)
	if left <= 0 || left >= limit {
		return limit
	}
	return left
}

// Logout removes the record and clears the context.
func (s *SessionService) Logout(ctx context.Context, sc *domain.SessionContext) error {
	return s.end(ctx, sc, "logout")
}

// Expire is Logout for sessions the API rejected with 401/403.
func (s *SessionService) Expire(ctx context.Context, sc *domain.SessionContext) error {
	return s.end(ctx, sc, "forced_logout")
}

func (s *SessionService) end(ctx context.Context, sc *domain.SessionContext, event string) error {
	id := sc.ID()
	sc.Clear()
	metrics.SessionTransitionsTotal.WithLabelValues(event).Inc()
	if id == "" {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", event, err)
	}
	return nil
}

// Rename updates the cached display name, keeping the other three keys. The
// record keeps the same expiry cap as at login.
func (s *SessionService) Rename(ctx context.Context, sc *domain.SessionContext, name string) error {
	sess := sc.Session()
	if !sc.IsAuthenticated() || name == "" || name == sess.Name {
		return nil
	}
	sess.Name = name
	if err := s.store.Save(ctx, sc.ID(), sess, tokenTTL(sess.Token, s.ttl, time.Now())); err != nil {
		return fmt.Errorf("rename session: %w", err)
	}
	sc.Settle(sess)
	return nil
}

// Ping checks the session backend.
func (s *SessionService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

var _ ports.SessionManager = (*SessionService)(nil)
