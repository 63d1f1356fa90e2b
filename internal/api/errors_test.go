package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/curvelearn/curve-api/internal/service/auth"
	"github.com/curvelearn/curve-api/internal/service/dashboard"
	"github.com/curvelearn/curve-api/internal/service/review"
	"github.com/curvelearn/curve-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "authentication error",
			err:            auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			err:            auth.ErrExpiredToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrapped authentication error",
			err:            fmt.Errorf("failed to authenticate: %w", auth.ErrInvalidToken),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "ownership error",
			err:            review.ErrContentNotOwned,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "content not found",
			err:            review.ErrContentNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "schedule not found",
			err:            review.ErrScheduleNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "inactive schedule",
			err:            review.ErrScheduleUnavailable,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "dashboard user not found",
			err:            dashboard.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "store not found",
			err:            fmt.Errorf("%w: content", store.ErrNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "duplicate completion",
			err:            review.ErrDuplicateCompletion,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid outcome",
			err:            review.ErrInvalidOutcome,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid entity",
			err:            store.ErrInvalidEntity,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service error wrapping duplicate",
			err: &review.ServiceError{
				Operation: "complete_review",
				Message:   "duplicate completion",
				Err:       review.ErrDuplicateCompletion,
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unknown error",
			err:            errors.New("something unexpected"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name:            "nil error",
			err:             nil,
			expectedMessage: "An unexpected error occurred",
		},
		{
			name:            "expired token",
			err:             auth.ErrExpiredToken,
			expectedMessage: "Token expired",
		},
		{
			name:            "ownership error",
			err:             review.ErrContentNotOwned,
			expectedMessage: "You do not own this content",
		},
		{
			name:            "duplicate completion",
			err:             review.ErrDuplicateCompletion,
			expectedMessage: "Review already completed",
		},
		{
			name:            "invalid outcome",
			err:             review.ErrInvalidOutcome,
			expectedMessage: "Invalid review outcome",
		},
		{
			name:            "dashboard user not found",
			err:             dashboard.ErrUserNotFound,
			expectedMessage: "User not found",
		},
		{
			name:            "raw database error is not leaked",
			err:             errors.New("pq: connection refused host=10.0.0.3"),
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedMessage, GetSafeErrorMessage(tc.err))
		})
	}
}
