//go:build integration

package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagehub/imagehub-web/internal/core/domain"
)

var full = domain.Session{Token: "t", Email: "e@x.co", Name: "N", Role: domain.RoleAdmin}

// connect dials REDIS_ADDR and skips when it is unset.
func connect(t *testing.T) *SessionStore {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := connect(t)
	id := uuid.NewString()

	require.NoError(t, s.Save(ctx, id, full, time.Minute))
	got, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, full, got)

	ttl, err := s.client.TTL(ctx, sessionKey(id)).Result()
	require.NoError(t, err)
	assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 2)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Load(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_PartialHashIsIncomplete(t *testing.T) {
	ctx := context.Background()
	s := connect(t)
	id := uuid.NewString()
	t.Cleanup(func() { _ = s.Delete(ctx, id) })

	require.NoError(t, s.Save(ctx, id, full, time.Minute))
	require.NoError(t, s.client.HDel(ctx, sessionKey(id), domain.KeyRole).Err())

	got, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.Complete())
	assert.Equal(t, "t", got.Token)
}

func TestSequenceGuard_NextSetsExpiry(t *testing.T) {
	ctx := context.Background()
	s := connect(t)
	g := NewSequenceGuard(s.client)
	sid := uuid.NewString()
	t.Cleanup(func() { _ = s.client.Del(ctx, g.key(sid, "upload")).Err() })

	cur, err := g.Current(ctx, sid, "upload")
	require.NoError(t, err)
	assert.Zero(t, cur)

	for want := int64(1); want <= 3; want++ {
		n, err := g.Next(ctx, sid, "upload")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	ttl, err := s.client.TTL(ctx, g.key(sid, "upload")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, sequenceTTL-time.Minute)
}
