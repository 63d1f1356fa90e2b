package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/google/uuid"
)

// HistoryStore defines the interface for the append-only review history log.
// Entries are never mutated or deleted under normal operation.
type HistoryStore interface {
	// Append records one completed review.
	// Returns validation errors from the domain entry if data is invalid.
	Append(ctx context.Context, entry *domain.ReviewHistoryEntry) error

	// ListRange retrieves a user's history entries with completed_at in
	// [from, to), oldest first. Used by the dashboard aggregator.
	ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.ReviewHistoryEntry, error)

	// CountSince returns the number of entries for a (user, content) pair
	// completed at or after the given instant. Used as the duplicate-
	// completion guard alongside the schedule row lock.
	CountSince(ctx context.Context, userID, contentID uuid.UUID, since time.Time) (int, error)

	// WithTx returns a HistoryStore bound to the provided transaction.
	WithTx(tx *sql.Tx) HistoryStore
}
