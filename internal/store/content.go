package store

import (
	"context"
	"database/sql"

	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/google/uuid"
)

// ContentStore defines the interface for content persistence. Content is
// created and deleted by the content-lifecycle collaborator; the scheduler
// reacts to its existence, never edits it.
type ContentStore interface {
	// Create saves a new content item.
	// Returns validation errors from the domain Content if data is invalid.
	Create(ctx context.Context, content *domain.Content) error

	// GetByID retrieves a content item by its unique ID.
	// Returns ErrContentNotFound if the content does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Content, error)

	// ListByUser retrieves all content items owned by a user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Content, error)

	// Delete removes a content item by its ID. The caller is responsible for
	// deactivating the content's schedule in the same transaction; history
	// rows are never removed.
	// Returns ErrContentNotFound if the content does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a ContentStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ContentStore
}
