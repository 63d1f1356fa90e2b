package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/curvelearn/curve-api/internal/platform/logger"
	"github.com/curvelearn/curve-api/internal/store"
	"github.com/google/uuid"
)

// PostgresHistoryStore implements the store.HistoryStore interface
// using a PostgreSQL database as the storage backend. The review_history
// table is append-only: this store exposes no update or delete.
type PostgresHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHistoryStore creates a new PostgreSQL implementation of the
// HistoryStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "history_store")),
	}
}

// Ensure PostgresHistoryStore implements store.HistoryStore interface
var _ store.HistoryStore = (*PostgresHistoryStore)(nil)

// Append implements store.HistoryStore.Append
// Returns store.ErrInvalidEntity if the referenced user or content does not
// exist (foreign key violation).
func (s *PostgresHistoryStore) Append(ctx context.Context, entry *domain.ReviewHistoryEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("history entry validation failed during append",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return err
	}

	query := `
		INSERT INTO review_history (id, user_id, content_id, outcome, completed_at, time_spent_seconds)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.ContentID,
		entry.Outcome,
		entry.CompletedAt,
		entry.TimeSpentSeconds,
	)

	if err != nil {
		log.Error("failed to append history entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()),
			slog.String("content_id", entry.ContentID.String()))
		return MapError(err)
	}

	log.Info("history entry appended",
		slog.String("entry_id", entry.ID.String()),
		slog.String("user_id", entry.UserID.String()),
		slog.String("outcome", string(entry.Outcome)))
	return nil
}

// ListRange implements store.HistoryStore.ListRange
// Entries are returned oldest first; the [from, to) bounds are instants, and
// the dashboard aggregator does owner-local day bucketing on the result.
func (s *PostgresHistoryStore) ListRange(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.ReviewHistoryEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, content_id, outcome, completed_at, time_spent_seconds
		FROM review_history
		WHERE user_id = $1 AND completed_at >= $2 AND completed_at < $3
		ORDER BY completed_at
	`

	rows, err := s.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		log.Error("failed to query history range",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var entries []*domain.ReviewHistoryEntry
	for rows.Next() {
		var entry domain.ReviewHistoryEntry
		var outcome string
		var timeSpent sql.NullInt64

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.ContentID,
			&outcome,
			&entry.CompletedAt,
			&timeSpent,
		)
		if err != nil {
			log.Error("failed to scan history row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		entry.Outcome = domain.ReviewOutcome(outcome)
		if timeSpent.Valid {
			seconds := int(timeSpent.Int64)
			entry.TimeSpentSeconds = &seconds
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if entries == nil {
		entries = []*domain.ReviewHistoryEntry{}
	}

	log.Debug("listed history range",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(entries)))
	return entries, nil
}

// CountSince implements store.HistoryStore.CountSince
func (s *PostgresHistoryStore) CountSince(
	ctx context.Context,
	userID, contentID uuid.UUID,
	since time.Time,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM review_history
		WHERE user_id = $1 AND content_id = $2 AND completed_at >= $3
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, contentID, since).Scan(&count)
	if err != nil {
		log.Error("failed to count history entries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("content_id", contentID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// WithTx implements store.HistoryStore.WithTx
func (s *PostgresHistoryStore) WithTx(tx *sql.Tx) store.HistoryStore {
	return &PostgresHistoryStore{
		db:     tx,
		logger: s.logger,
	}
}
