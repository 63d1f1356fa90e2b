package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidReviewOutcome is returned when a review outcome is outside
	// the remembered/partial/forgot enum.
	ErrInvalidReviewOutcome = errors.New("invalid review outcome")

	// ErrInvalidPriority is returned when a content priority is not valid.
	ErrInvalidPriority = errors.New("invalid content priority")

	// ErrInvalidTier is returned when a subscription tier is not valid.
	ErrInvalidTier = errors.New("invalid subscription tier")

	// ErrInvalidTimezone is returned when a user's time zone is not a valid
	// IANA zone name.
	ErrInvalidTimezone = errors.New("invalid time zone")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
