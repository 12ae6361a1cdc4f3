// Package memory provides process-local session storage for development and
// tests. Nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
)

type record struct {
	fields    map[string]string
	expiresAt time.Time
}

type SessionStore struct {
	mu      sync.RWMutex
	records map[string]record
	now     func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{records: make(map[string]record), now: time.Now}
}

func (s *SessionStore) Save(_ context.Context, id string, sess domain.Session, ttl time.Duration) error {
	rec := record{fields: sess.Fields()}
	if ttl > 0 {
		rec.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.records[id] = rec
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Load(_ context.Context, id string) (domain.Session, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok || len(rec.fields) == 0 {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if !rec.expiresAt.IsZero() && !rec.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.records, id)
		s.mu.Unlock()
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return domain.SessionFromFields(rec.fields), nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.records, id)
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Ping(context.Context) error { return nil }

// Unset drops a single key from a record, leaving it partial.
func (s *SessionStore) Unset(id, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return
	}
	fields := make(map[string]string, len(rec.fields))
	for k, v := range rec.fields {
		if k != key {
			fields[k] = v
		}
	}
	rec.fields = fields
	s.records[id] = rec
}

// Len reports how many records are held.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

var _ ports.SessionStore = (*SessionStore)(nil)
