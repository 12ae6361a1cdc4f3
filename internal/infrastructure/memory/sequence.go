package memory

import (
	"context"
	"sync"
	"time"

	"github.com/imagehub/imagehub-web/internal/core/ports"
)

// sequenceTTL is how long an untouched counter is kept.
const sequenceTTL = 24 * time.Hour

type counter struct {
	value   int64
	touched time.Time
}

type SequenceGuard struct {
	mu       sync.Mutex
	counters map[string]counter
	now      func() time.Time
}

func NewSequenceGuard() *SequenceGuard {
	return &SequenceGuard{counters: make(map[string]counter), now: time.Now}
}

// Next bumps the slot counter and drops counters idle for longer than
// sequenceTTL.
func (g *SequenceGuard) Next(_ context.Context, sessionID, slot string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	for k, c := range g.counters {
		if now.Sub(c.touched) >= sequenceTTL {
			delete(g.counters, k)
		}
	}
	k := sessionID + ":" + slot
	c := g.counters[k]
	c.value++
	c.touched = now
	g.counters[k] = c
	return c.value, nil
}

func (g *SequenceGuard) Current(_ context.Context, sessionID, slot string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.counters[sessionID+":"+slot]
	if !ok || g.now().Sub(c.touched) >= sequenceTTL {
		return 0, nil
	}
	return c.value, nil
}

// Len reports how many counters are held.
func (g *SequenceGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.counters)
}

var _ ports.SequenceGuard = (*SequenceGuard)(nil)
