package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/imagehub/imagehub-web/internal/core/ports"
)

const (
	sequenceCollection = "web_sequences"
	sequenceTTL        = 24 * time.Hour
)

// SequenceGuard keeps one counter document per session and slot. Each bump
// pushes expires_at forward; the TTL index reaps idle counters.
type SequenceGuard struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewSequenceGuard(db *mongo.Database) *SequenceGuard {
	return &SequenceGuard{coll: db.Collection(sequenceCollection), now: time.Now}
}

type sequenceDoc struct {
	ID        string    `bson:"_id"`
	Value     int64     `bson:"value"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func (g *SequenceGuard) Next(ctx context.Context, sessionID, slot string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc sequenceDoc
	err := g.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": sequenceID(sessionID, slot)},
		bson.M{
			"$inc": bson.M{"value": int64(1)},
			"$set": bson.M{"expires_at": g.now().UTC().Add(sequenceTTL)},
		},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("sequence next: %w", err)
	}
	return doc.Value, nil
}

func (g *SequenceGuard) Current(ctx context.Context, sessionID, slot string) (int64, error) {
	var doc sequenceDoc
	err := g.coll.FindOne(ctx, bson.M{"_id": sequenceID(sessionID, slot)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sequence current: %w", err)
	}
	if !doc.ExpiresAt.IsZero() && !doc.ExpiresAt.After(g.now()) {
		return 0, nil
	}
	return doc.Value, nil
}

func sequenceID(sessionID, slot string) string {
	return sessionID + ":" + slot
}

var _ ports.SequenceGuard = (*SequenceGuard)(nil)
