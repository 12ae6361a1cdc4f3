package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/imagehub/imagehub-web/internal/core/ports"
)

const sequenceTTL = 24 * time.Hour

// SequenceGuard hands out per-session action numbers with INCR.
// Key format: seq:<session_id>:<slot>
type SequenceGuard struct {
	client redis.UniversalClient
}

// NewSequenceGuard wraps the given Redis client.
func NewSequenceGuard(client redis.UniversalClient) *SequenceGuard {
	return &SequenceGuard{client: client}
}

// Next bumps the slot counter and returns the new value.
func (g *SequenceGuard) Next(ctx context.Context, sessionID, slot string) (int64, error) {
	key := g.key(sessionID, slot)
	pipe := g.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, sequenceTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("sequence next: %w", err)
	}
	return incr.Val(), nil
}

// Current returns the latest issued number, or 0 when none was issued.
func (g *SequenceGuard) Current(ctx context.Context, sessionID, slot string) (int64, error) {
	n, err := g.client.Get(ctx, g.key(sessionID, slot)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sequence current: %w", err)
	}
	return n, nil
}

func (g *SequenceGuard) key(sessionID, slot string) string {
	return fmt.Sprintf("seq:%s:%s", sessionID, slot)
}

var _ ports.SequenceGuard = (*SequenceGuard)(nil)
