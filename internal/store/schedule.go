package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/google/uuid"
)

// ScheduleStore defines the interface for review schedule persistence.
// There is exactly one schedule row per (user, content) pair.
type ScheduleStore interface {
	// Create saves a new review schedule.
	// Returns ErrScheduleExists if a schedule already exists for the pair.
	Create(ctx context.Context, schedule *domain.ReviewSchedule) error

	// Get retrieves the schedule for a (user, content) pair.
	// Returns ErrScheduleNotFound if it does not exist.
	// NOTE: this method does not lock the row; use GetForUpdate inside a
	// transaction when you plan to update it.
	Get(ctx context.Context, userID, contentID uuid.UUID) (*domain.ReviewSchedule, error)

	// GetForUpdate retrieves the schedule with a row-level lock
	// (SELECT ... FOR UPDATE) so concurrent completions serialize.
	// Returns ErrScheduleNotFound if it does not exist.
	GetForUpdate(ctx context.Context, userID, contentID uuid.UUID) (*domain.ReviewSchedule, error)

	// Update modifies an existing schedule, identified by the UserID and
	// ContentID fields of the given value.
	// Returns ErrScheduleNotFound if it does not exist.
	Update(ctx context.Context, schedule *domain.ReviewSchedule) error

	// DueToday returns all active schedules for the user that are due on the
	// given owner-local date, plus any whose next review date lies further
	// than capDays in the future. The second clause surfaces schedules
	// stranded by a tier downgrade as immediately due, without waiting for a
	// review event. Each schedule appears whole: a concurrent update is
	// observed either entirely or not at all.
	DueToday(ctx context.Context, userID uuid.UUID, asOfLocalDate time.Time, capDays int) ([]*domain.ReviewSchedule, error)

	// Deactivate soft-deletes the schedule for a content item
	// (is_active = false). The row is never hard-deleted while history
	// references it.
	// Returns ErrScheduleNotFound if no schedule exists for the content.
	Deactivate(ctx context.Context, contentID uuid.UUID) error

	// WithTx returns a ScheduleStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ScheduleStore
}
