package ports

import (
	"context"
	"time"

	"github.com/imagehub/imagehub-web/internal/core/domain"
)

// SessionStore persists the four session keys under an opaque session id.
type SessionStore interface {
	// Save writes all four keys and (re)arms the expiry.
	Save(ctx context.Context, id string, s domain.Session, ttl time.Duration) error
	// Load returns whatever keys are present. It returns
	// domain.ErrSessionNotFound when none are.
	Load(ctx context.Context, id string) (domain.Session, error)
	// Delete removes every key of the record. Unknown ids are not an error.
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// SequenceGuard issues monotonic numbers per session and action slot so that a
// superseded action's answer can be recognised and discarded.
type SequenceGuard interface {
	Next(ctx context.Context, sessionID, slot string) (int64, error)
	Current(ctx context.Context, sessionID, slot string) (int64, error)
}
