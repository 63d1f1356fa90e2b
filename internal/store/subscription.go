package store

import (
	"context"

	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/google/uuid"
)

// SubscriptionStore defines read-only access to subscription rows. The
// billing collaborator is the sole writer; the scheduler reads the tier at
// transition and read time and never mutates it, so there is no WithTx.
type SubscriptionStore interface {
	// GetByUser retrieves the user's subscription.
	// Returns ErrSubscriptionNotFound if the user has no row; callers treat
	// that as the free tier.
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
}

// UserStore defines read-only access to user rows. Account lifecycle is
// owned by an external collaborator; the scheduler needs only identity and
// time zone.
type UserStore interface {
	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
