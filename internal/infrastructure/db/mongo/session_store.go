package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
)

const sessionCollection = "web_sessions"

type SessionStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewSessionStore(db *mongo.Database) *SessionStore {
	return &SessionStore{coll: db.Collection(sessionCollection), now: time.Now}
}

type mongoSession struct {
	ID        string     `bson:"_id"`
	Token     string     `bson:"token,omitempty"`
	Email     string     `bson:"email,omitempty"`
	Name      string     `bson:"name,omitempty"`
	Role      string     `bson:"role,omitempty"`
	UpdatedAt time.Time  `bson:"updated_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

func (s *SessionStore) Save(ctx context.Context, id string, sess domain.Session, ttl time.Duration) error {
	now := s.now().UTC()
	doc := mongoSession{
		ID:        id,
		Token:     sess.Token,
		Email:     sess.Email,
		Name:      sess.Name,
		Role:      string(sess.Role),
		UpdatedAt: now,
	}
	if ttl > 0 {
		exp := now.Add(ttl)
		doc.ExpiresAt = &exp
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, id string) (domain.Session, error) {
	var doc mongoSession
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	// The TTL monitor runs about once a minute; expired documents can linger.
	if doc.ExpiresAt != nil && !doc.ExpiresAt.After(s.now()) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return domain.Session{
		Token: doc.Token,
		Email: doc.Email,
		Name:  doc.Name,
		Role:  domain.Role(doc.Role),
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}

var _ ports.SessionStore = (*SessionStore)(nil)
