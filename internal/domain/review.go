package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewOutcome represents the result of a completed review.
type ReviewOutcome string

// Possible review outcome values
const (
	ReviewOutcomeRemembered ReviewOutcome = "remembered"
	ReviewOutcomePartial    ReviewOutcome = "partial"
	ReviewOutcomeForgot     ReviewOutcome = "forgot"
)

// Review-history validation errors
var (
	ErrHistoryIDEmpty        = errors.New("review history ID cannot be empty")
	ErrHistoryUserIDEmpty    = errors.New("review history user ID cannot be empty")
	ErrHistoryContentIDEmpty = errors.New("review history content ID cannot be empty")
	ErrHistoryCompletedZero  = errors.New("review history completion time cannot be zero")
	ErrNegativeTimeSpent     = errors.New("time spent must be greater than or equal to 0")
)

// IsValid reports whether the outcome is one of remembered, partial, forgot.
func (o ReviewOutcome) IsValid() bool {
	switch o {
	case ReviewOutcomeRemembered, ReviewOutcomePartial, ReviewOutcomeForgot:
		return true
	default:
		return false
	}
}

// ReviewHistoryEntry records one completed review. Entries are append-only:
// they are never mutated or deleted under normal operation, and exactly one
// entry is created per completed review.
type ReviewHistoryEntry struct {
	ID               uuid.UUID     `json:"id"`
	UserID           uuid.UUID     `json:"user_id"`
	ContentID        uuid.UUID     `json:"content_id"`
	Outcome          ReviewOutcome `json:"outcome"`
	CompletedAt      time.Time     `json:"completed_at"`
	TimeSpentSeconds *int          `json:"time_spent_seconds,omitempty"`
}

// NewReviewHistoryEntry creates a history entry for a completed review.
// Returns an error if validation fails.
func NewReviewHistoryEntry(
	userID, contentID uuid.UUID,
	outcome ReviewOutcome,
	completedAt time.Time,
	timeSpentSeconds *int,
) (*ReviewHistoryEntry, error) {
	entry := &ReviewHistoryEntry{
		ID:               uuid.New(),
		UserID:           userID,
		ContentID:        contentID,
		Outcome:          outcome,
		CompletedAt:      completedAt,
		TimeSpentSeconds: timeSpentSeconds,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the ReviewHistoryEntry has valid data.
func (e *ReviewHistoryEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrHistoryIDEmpty
	}

	if e.UserID == uuid.Nil {
		return ErrHistoryUserIDEmpty
	}

	if e.ContentID == uuid.Nil {
		return ErrHistoryContentIDEmpty
	}

	if !e.Outcome.IsValid() {
		return ErrInvalidReviewOutcome
	}

	if e.CompletedAt.IsZero() {
		return ErrHistoryCompletedZero
	}

	if e.TimeSpentSeconds != nil && *e.TimeSpentSeconds < 0 {
		return ErrNegativeTimeSpent
	}

	return nil
}
