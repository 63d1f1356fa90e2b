package ebbinghaus

import (
	"errors"
	"time"

	"github.com/curvelearn/curve-api/internal/domain"
)

// Common errors
var (
	ErrNilSchedule    = errors.New("review schedule cannot be nil")
	ErrInvalidOutcome = errors.New("invalid review outcome")
	ErrNilLocation    = errors.New("time zone location cannot be nil")
)

// Service defines the interface for the scheduling state machine. All
// operations are pure: they return new schedule instances and never touch
// storage or the clock.
type Service interface {
	// NextSchedule computes the schedule state after a review completion.
	NextSchedule(
		schedule *domain.ReviewSchedule,
		outcome domain.ReviewOutcome,
		completedAt time.Time,
		loc *time.Location,
		tier domain.Tier,
	) (*domain.ReviewSchedule, error)

	// InitialDueDate computes the first due date for newly created content.
	InitialDueDate(createdAt time.Time, loc *time.Location) time.Time

	// Policy exposes the tier policy so read paths can resolve the current cap.
	Policy() *TierPolicy

	// DuplicateWindow is the idempotency window for repeated completions.
	DuplicateWindow() time.Duration
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// advance computes the new ladder index for an outcome:
// remembered climbs one rung (capped at the ceiling), partial stays in
// place, forgot restarts at the bottom. Repeated partials deliberately do
// not decay toward zero; stay-in-place is the contract.
func advance(table Table, currentIndex int, outcome domain.ReviewOutcome) int {
	switch outcome {
	case domain.ReviewOutcomeRemembered:
		next := currentIndex + 1
		if next > table.MaxIndex() {
			next = table.MaxIndex()
		}
		return next
	case domain.ReviewOutcomePartial:
		if currentIndex > table.MaxIndex() {
			return table.MaxIndex()
		}
		return currentIndex
	default: // forgot
		return 0
	}
}

// localMidnight truncates an instant to the start of its calendar day in
// the given zone. Due dates are always anchored here so that "due" is a
// day comparison in the owner's zone.
func localMidnight(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// NextSchedule implements the Service interface. It applies the transition
// table, clamps the raw ladder interval to the tier cap, and anchors the new
// due date at the owner's local midnight of the completion day plus the
// effective interval. The returned schedule is a new instance; the input is
// not modified.
func (s *defaultService) NextSchedule(
	schedule *domain.ReviewSchedule,
	outcome domain.ReviewOutcome,
	completedAt time.Time,
	loc *time.Location,
	tier domain.Tier,
) (*domain.ReviewSchedule, error) {
	if schedule == nil {
		return nil, ErrNilSchedule
	}
	if !outcome.IsValid() {
		return nil, ErrInvalidOutcome
	}
	if loc == nil {
		return nil, ErrNilLocation
	}

	newIndex := advance(s.params.Table, schedule.LadderIndex, outcome)
	rawDays := s.params.Table.At(newIndex)
	effectiveDays := s.params.TierPolicy.Clamp(rawDays, tier)

	next := *schedule
	next.LadderIndex = newIndex
	next.NextReviewDate = localMidnight(completedAt, loc).AddDate(0, 0, effectiveDays)
	next.InitialReviewCompleted = true
	next.LastReviewedAt = completedAt
	next.UpdatedAt = completedAt

	return &next, nil
}

// InitialDueDate implements the Service interface. Content creation schedules
// the very first review a fixed short interval out, without consulting the
// ladder.
func (s *defaultService) InitialDueDate(createdAt time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return localMidnight(createdAt, loc).AddDate(0, 0, s.params.InitialIntervalDays)
}

// Policy implements the Service interface.
func (s *defaultService) Policy() *TierPolicy {
	return s.params.TierPolicy
}

// DuplicateWindow implements the Service interface.
func (s *defaultService) DuplicateWindow() time.Duration {
	return s.params.DuplicateWindow
}
