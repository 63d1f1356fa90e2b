package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewSchedule validation errors
var (
	ErrEmptyScheduleUserID    = errors.New("review schedule user ID cannot be empty")
	ErrEmptyScheduleContentID = errors.New("review schedule content ID cannot be empty")
	ErrInvalidLadderIndex     = errors.New("ladder index must be greater than or equal to 0")
	ErrZeroNextReviewDate     = errors.New("next review date cannot be zero")
)

// ReviewSchedule tracks when a piece of content is next due for review.
// There is exactly one schedule per (user, content) pair.
//
// NextReviewDate is a cached projection: it is always derivable from
// LadderIndex, the date of the last completed review (or CreatedAt if none)
// and the owner's tier cap at the time it was computed. It is stored at the
// owner's local midnight so that "due" is a calendar-day comparison, never an
// instant comparison.
type ReviewSchedule struct {
	UserID                 uuid.UUID `json:"user_id"`
	ContentID              uuid.UUID `json:"content_id"`
	LadderIndex            int       `json:"ladder_index"`
	NextReviewDate         time.Time `json:"next_review_date"`
	IsActive               bool      `json:"is_active"`
	InitialReviewCompleted bool      `json:"initial_review_completed"`
	LastReviewedAt         time.Time `json:"last_reviewed_at"` // zero until the first completion
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// NewReviewSchedule creates a schedule at the bottom of the ladder, due on
// the given date. The schedule starts active with the initial review pending.
func NewReviewSchedule(userID, contentID uuid.UUID, dueDate time.Time) (*ReviewSchedule, error) {
	now := time.Now().UTC()
	schedule := &ReviewSchedule{
		UserID:                 userID,
		ContentID:              contentID,
		LadderIndex:            0,
		NextReviewDate:         dueDate,
		IsActive:               true,
		InitialReviewCompleted: false,
		LastReviewedAt:         time.Time{},
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	return schedule, nil
}

// Validate checks if the ReviewSchedule has valid data.
func (s *ReviewSchedule) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptyScheduleUserID
	}

	if s.ContentID == uuid.Nil {
		return ErrEmptyScheduleContentID
	}

	if s.LadderIndex < 0 {
		return ErrInvalidLadderIndex
	}

	if s.NextReviewDate.IsZero() {
		return ErrZeroNextReviewDate
	}

	return nil
}

// IsDue reports whether the schedule is due on the given owner-local date.
// The comparison is by calendar day: a schedule becomes due at the start of
// the owner's local day, not 24xN hours after the completion timestamp.
func (s *ReviewSchedule) IsDue(asOfLocalDate time.Time) bool {
	return s.IsActive && !s.NextReviewDate.After(asOfLocalDate)
}
