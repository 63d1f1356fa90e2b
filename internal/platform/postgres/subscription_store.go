package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/curvelearn/curve-api/internal/platform/logger"
	"github.com/curvelearn/curve-api/internal/store"
	"github.com/google/uuid"
)

// PostgresSubscriptionStore implements the store.SubscriptionStore interface.
// Subscriptions are written by the billing collaborator; this store only
// reads them.
type PostgresSubscriptionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSubscriptionStore creates a new PostgreSQL implementation of
// the SubscriptionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSubscriptionStore(db store.DBTX, logger *slog.Logger) *PostgresSubscriptionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSubscriptionStore{
		db:     db,
		logger: logger.With(slog.String("component", "subscription_store")),
	}
}

// Ensure PostgresSubscriptionStore implements store.SubscriptionStore interface
var _ store.SubscriptionStore = (*PostgresSubscriptionStore)(nil)

// GetByUser implements store.SubscriptionStore.GetByUser
// Returns store.ErrSubscriptionNotFound if the user has no subscription row;
// callers interpret that as the free tier.
func (s *PostgresSubscriptionStore) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, tier, max_interval_days, expires_at, updated_at
		FROM subscriptions
		WHERE user_id = $1
	`

	var subscription domain.Subscription
	var tier string
	var expiresAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&subscription.UserID,
		&tier,
		&subscription.MaxIntervalDays,
		&expiresAt,
		&subscription.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("subscription not found, user reads as free tier",
				slog.String("user_id", userID.String()))
			return nil, store.ErrSubscriptionNotFound
		}
		log.Error("failed to get subscription",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	subscription.Tier = domain.Tier(tier)
	if expiresAt.Valid {
		subscription.ExpiresAt = &expiresAt.Time
	}

	return &subscription, nil
}
