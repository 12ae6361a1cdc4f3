package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
)

// SessionStore keeps each session as a hash holding the four session keys.
// Key format: session:<id>
type SessionStore struct {
	client redis.UniversalClient
}

// NewSessionStore wraps the given Redis client.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, id string, sess domain.Session, ttl time.Duration) error {
	key := sessionKey(id)
	fields := make(map[string]any, len(domain.SessionKeys))
	for k, v := range sess.Fields() {
		fields[k] = v
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, id string) (domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if len(fields) == 0 {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return domain.SessionFromFields(fields), nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.HDel(ctx, sessionKey(id), domain.SessionKeys...).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func sessionKey(id string) string {
	return "session:" + id
}

var _ ports.SessionStore = (*SessionStore)(nil)
