package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User validation errors
var (
	ErrUserIDEmpty   = errors.New("user ID cannot be empty")
	ErrEmptyTimezone = errors.New("user time zone cannot be empty")
)

// User carries the slice of account state the scheduler needs: an identity
// and a time zone. Account and session management live in an external
// collaborator; this service only reads user rows.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Timezone  string    `json:"timezone"` // IANA zone name, e.g. "Europe/Berlin"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks if the User has valid data, including that the time zone
// resolves to a real IANA location.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrUserIDEmpty
	}

	if u.Timezone == "" {
		return ErrEmptyTimezone
	}

	if _, err := time.LoadLocation(u.Timezone); err != nil {
		return ErrInvalidTimezone
	}

	return nil
}

// Location resolves the user's IANA time zone, falling back to UTC when the
// stored name no longer resolves (e.g. a renamed zone in an old row). Due-date
// math must never fail just because tzdata moved underneath us.
func (u *User) Location() *time.Location {
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
