package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/imagehub/imagehub-web/internal/core/ports"
	"github.com/imagehub/imagehub-web/internal/pkg/metrics"
)

// Sequencer numbers user actions per session and slot so a superseded
// action's answer can be dropped.
type Sequencer struct {
	guard  ports.SequenceGuard
	logger zerolog.Logger
}

func NewSequencer(guard ports.SequenceGuard, logger zerolog.Logger) *Sequencer {
	return &Sequencer{guard: guard, logger: logger}
}

// Ticket is one numbered action.
type Ticket struct {
	seq       *Sequencer
	sessionID string
	slot      string
	n         int64
}

// Begin issues the next number for slot. A guard failure yields a ticket that
// always counts as latest, so actions are never blocked.
func (s *Sequencer) Begin(ctx context.Context, sessionID, slot string) Ticket {
	n, err := s.guard.Next(ctx, sessionID, slot)
	if err != nil {
		s.logger.Warn().Err(err).Str("slot", slot).Msg("sequence guard unavailable")
		return Ticket{}
	}
	return Ticket{seq: s, sessionID: sessionID, slot: slot, n: n}
}

// Latest reports whether no newer action was started on the same slot.
func (t Ticket) Latest(ctx context.Context) bool {
	if t.seq == nil {
		return true
	}
	cur, err := t.seq.guard.Current(ctx, t.sessionID, t.slot)
	if err != nil {
		t.seq.logger.Warn().Err(err).Str("slot", t.slot).Msg("sequence guard unavailable")
		return true
	}
	if cur != t.n {
		metrics.StaleActionsTotal.WithLabelValues(slotLabel(t.slot)).Inc()
		t.seq.logger.Info().Str("slot", t.slot).Int64("seq", t.n).Int64("latest", cur).Msg("discarding superseded action")
		return false
	}
	return true
}

// slotLabel strips the per-resource suffix so metric cardinality stays bounded.
func slotLabel(slot string) string {
	name, _, _ := strings.Cut(slot, ":")
	return name
}
