package api

import (
	"errors"
	"net/http"

	"github.com/curvelearn/curve-api/internal/service/auth"
	"github.com/curvelearn/curve-api/internal/service/dashboard"
	"github.com/curvelearn/curve-api/internal/service/review"
	"github.com/curvelearn/curve-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, review.ErrContentNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, review.ErrContentNotFound),
		errors.Is(err, review.ErrScheduleNotFound),
		errors.Is(err, review.ErrScheduleUnavailable),
		errors.Is(err, dashboard.ErrUserNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, review.ErrDuplicateCompletion),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, review.ErrInvalidOutcome),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	// Authorization errors
	case errors.Is(err, review.ErrContentNotOwned):
		return "You do not own this content"

	// Not found errors
	case errors.Is(err, review.ErrContentNotFound):
		return "Content not found"

	case errors.Is(err, review.ErrScheduleNotFound):
		return "Review schedule not found"

	case errors.Is(err, review.ErrScheduleUnavailable):
		return "Review schedule is no longer active"

	case errors.Is(err, dashboard.ErrUserNotFound), errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	// Conflict errors
	case errors.Is(err, review.ErrDuplicateCompletion):
		return "Review already completed"

	// Bad request errors
	case errors.Is(err, review.ErrInvalidOutcome):
		return "Invalid review outcome"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}
