// Package store defines the persistence boundary for CineList user snapshots.
package store

import (
	"context"
	"time"

	"github.com/cinelist/cinelist-server/internal/domain"
)

// UserStore loads and saves whole user snapshots.
//
// SaveUser returns the canonical snapshot as stored. Callers should publish that
// value, not the one they passed in.
type UserStore interface {
	LoadUser(ctx context.Context, id string) (domain.User, error)
	SaveUser(ctx context.Context, user domain.User) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	Close() error
}

// EventEmitter is the interface for emitting SSE events.
// Services use this to broadcast changes without depending on SSE implementation details.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// Canonicalize prepares u for storage: it deep-copies the snapshot, stamps
// timestamps, and restores the pinned-first list order.
func Canonicalize(u domain.User, now func() time.Time) domain.User {
	out := u.Clone()
	ts := now().UTC()
	if out.CreatedAt.IsZero() {
		out.CreatedAt = ts
	}
	out.UpdatedAt = ts
	if !domain.PinnedPrefixHolds(out.Lists) {
		out.Lists = domain.NormalizeOrder(out.Lists)
	}
	return out
}
