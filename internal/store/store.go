package store

import (
	"context"

	"ludo_broker/internal/domain"
)

// SnapshotStore persists the live match set as an opaque durable snapshot.
// It is used only for crash recovery; challenges are never persisted.
//
// Implementations must treat a missing snapshot as an empty set. A corrupt
// snapshot surfaces as an error so the caller can log it and start empty.
type SnapshotStore interface {
	Load(ctx context.Context) ([]domain.Match, error)
	Save(ctx context.Context, matches []domain.Match) error
}
