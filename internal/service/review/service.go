// Package review implements the transactional orchestration around the pure
// scheduling transition: creating content together with its schedule,
// completing reviews, listing what is due, and deactivating schedules when
// content goes away.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/google/uuid"
)

// CreateContentRequest carries the caller-supplied fields of a new content
// item. The owner comes from the authenticated identity, never the body.
type CreateContentRequest struct {
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	Category *string         `json:"category,omitempty"`
	Priority domain.Priority `json:"priority,omitempty"`
}

// CompleteReviewRequest carries a user's review completion.
type CompleteReviewRequest struct {
	Outcome          domain.ReviewOutcome `json:"outcome"`
	TimeSpentSeconds *int                 `json:"time_spent_seconds,omitempty"`
}

// DueItem pairs a due schedule with its content so the client can render the
// review queue without a second round trip.
type DueItem struct {
	Content  *domain.Content        `json:"content"`
	Schedule *domain.ReviewSchedule `json:"schedule"`
}

// ReviewService provides the scheduling operations of the review engine.
type ReviewService interface {
	// CreateContent creates a content item and its review schedule
	// atomically. The schedule starts at the bottom of the ladder, due
	// InitialIntervalDays after creation at the owner's local midnight.
	// If the transaction fails neither row exists.
	CreateContent(
		ctx context.Context,
		userID uuid.UUID,
		req CreateContentRequest,
	) (*domain.Content, *domain.ReviewSchedule, error)

	// DeleteContent removes a content item and soft-deactivates its
	// schedule in the same transaction. History rows survive.
	// Returns ErrContentNotOwned if the caller does not own the content.
	DeleteContent(ctx context.Context, userID, contentID uuid.UUID) error

	// ListContents returns the caller's content items, newest first.
	// limit <= 0 uses the default page size.
	ListContents(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Content, error)

	// DueToday returns the caller's review queue for their current local
	// date: every active schedule due today plus any stranded past the
	// caller's current tier cap by an earlier downgrade.
	DueToday(ctx context.Context, userID uuid.UUID, now time.Time) ([]*DueItem, error)

	// CompleteReview applies a review outcome to a schedule: advances the
	// ladder, clamps to the owner's effective tier, anchors the next due
	// date at the owner's local midnight, and appends exactly one history
	// entry. Schedule update and history append commit or roll back
	// together. A second completion inside the duplicate window is rejected
	// with ErrDuplicateCompletion.
	CompleteReview(
		ctx context.Context,
		userID, contentID uuid.UUID,
		req CompleteReviewRequest,
		now time.Time,
	) (*domain.ReviewSchedule, error)
}

// Common error types for ReviewService
var (
	// ErrScheduleNotFound indicates that no schedule exists for the pair.
	ErrScheduleNotFound = errors.New("review schedule not found")

	// ErrScheduleUnavailable indicates the schedule exists but is inactive,
	// typically because the content was deleted.
	ErrScheduleUnavailable = errors.New("review schedule is not active")

	// ErrDuplicateCompletion indicates a second completion arrived within
	// the duplicate window of the previous one.
	ErrDuplicateCompletion = errors.New("review already completed")

	// ErrInvalidOutcome indicates an unknown review outcome was submitted.
	ErrInvalidOutcome = errors.New("invalid review outcome")

	// ErrContentNotFound indicates that the content does not exist.
	ErrContentNotFound = errors.New("content not found")

	// ErrContentNotOwned indicates the caller does not own the content.
	ErrContentNotOwned = errors.New("unauthorized access: content not owned by user")
)

// ServiceError wraps errors from the review service with additional context.
// Consumers differentiate error types with errors.As instead of string
// matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_content",
	// "complete_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
