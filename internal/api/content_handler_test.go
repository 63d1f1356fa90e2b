package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/curvelearn/curve-api/internal/api/shared"
	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/curvelearn/curve-api/internal/service/review"
)

// mockReviewService is a mock implementation of the ReviewService interface.
type mockReviewService struct {
	createContentFn  func(ctx context.Context, userID uuid.UUID, req review.CreateContentRequest) (*domain.Content, *domain.ReviewSchedule, error)
	deleteContentFn  func(ctx context.Context, userID, contentID uuid.UUID) error
	listContentsFn   func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Content, error)
	dueTodayFn       func(ctx context.Context, userID uuid.UUID, now time.Time) ([]*review.DueItem, error)
	completeReviewFn func(ctx context.Context, userID, contentID uuid.UUID, req review.CompleteReviewRequest, now time.Time) (*domain.ReviewSchedule, error)
}

func (m *mockReviewService) CreateContent(
	ctx context.Context,
	userID uuid.UUID,
	req review.CreateContentRequest,
) (*domain.Content, *domain.ReviewSchedule, error) {
	return m.createContentFn(ctx, userID, req)
}

func (m *mockReviewService) DeleteContent(ctx context.Context, userID, contentID uuid.UUID) error {
	return m.deleteContentFn(ctx, userID, contentID)
}

func (m *mockReviewService) ListContents(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Content, error) {
	return m.listContentsFn(ctx, userID, limit, offset)
}

func (m *mockReviewService) DueToday(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) ([]*review.DueItem, error) {
	return m.dueTodayFn(ctx, userID, now)
}

func (m *mockReviewService) CompleteReview(
	ctx context.Context,
	userID, contentID uuid.UUID,
	req review.CompleteReviewRequest,
	now time.Time,
) (*domain.ReviewSchedule, error) {
	return m.completeReviewFn(ctx, userID, contentID, req, now)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withUserID attaches an authenticated user ID to the request context the way
// the auth middleware does.
func withUserID(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// withURLParam attaches a chi route parameter to the request context so
// handlers can be exercised without a full router.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func sampleContentAndSchedule(userID uuid.UUID) (*domain.Content, *domain.ReviewSchedule) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	content := &domain.Content{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "Photosynthesis",
		Body:      "Light reactions and the Calvin cycle.",
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	schedule := &domain.ReviewSchedule{
		UserID:         userID,
		ContentID:      content.ID,
		LadderIndex:    0,
		NextReviewDate: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return content, schedule
}

func TestCreateContent(t *testing.T) {
	userID := uuid.New()
	content, schedule := sampleContentAndSchedule(userID)

	tests := []struct {
		name           string
		userIDInCtx    uuid.UUID
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "Success",
			userIDInCtx:    userID,
			body:           `{"title":"Photosynthesis","body":"Light reactions and the Calvin cycle."}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing User ID",
			userIDInCtx:    uuid.Nil,
			body:           `{"title":"Photosynthesis","body":"x"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed JSON",
			userIDInCtx:    userID,
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Title",
			userIDInCtx:    userID,
			body:           `{"body":"no title"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid Priority",
			userIDInCtx:    userID,
			body:           `{"title":"t","body":"b","priority":"urgent"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Service Failure",
			userIDInCtx:    userID,
			body:           `{"title":"Photosynthesis","body":"x"}`,
			serviceErr:     errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &mockReviewService{
				createContentFn: func(ctx context.Context, gotUserID uuid.UUID, req review.CreateContentRequest) (*domain.Content, *domain.ReviewSchedule, error) {
					if tc.serviceErr != nil {
						return nil, nil, tc.serviceErr
					}
					if gotUserID != userID {
						t.Errorf("service called with wrong user ID: got %v want %v", gotUserID, userID)
					}
					return content, schedule, nil
				},
			}
			handler := NewContentHandler(mockService, testLogger())

			req := httptest.NewRequest("POST", "/api/contents", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			if tc.userIDInCtx != uuid.Nil {
				req = withUserID(req, tc.userIDInCtx)
			}
			rr := httptest.NewRecorder()

			handler.CreateContent(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tc.expectedStatus)
			}

			if tc.expectedStatus == http.StatusCreated {
				var response CreateContentResponse
				if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
					t.Fatalf("failed to decode response body: %v", err)
				}
				if response.Content.ID != content.ID.String() {
					t.Errorf("wrong content ID in response: got %v want %v", response.Content.ID, content.ID)
				}
				if response.Schedule.LadderIndex != 0 {
					t.Errorf("new schedule should start at the bottom of the ladder, got index %d", response.Schedule.LadderIndex)
				}
				if response.Schedule.NextReviewDate != "2026-03-11" {
					t.Errorf("wrong next review date: got %v want 2026-03-11", response.Schedule.NextReviewDate)
				}
				if response.Schedule.LastReviewedAt != nil {
					t.Errorf("unreviewed schedule should omit last_reviewed_at, got %v", response.Schedule.LastReviewedAt)
				}
			}
		})
	}
}

func TestListContents(t *testing.T) {
	userID := uuid.New()
	content, _ := sampleContentAndSchedule(userID)

	var gotLimit, gotOffset int
	mockService := &mockReviewService{
		listContentsFn: func(ctx context.Context, gotUserID uuid.UUID, limit, offset int) ([]*domain.Content, error) {
			gotLimit, gotOffset = limit, offset
			return []*domain.Content{content}, nil
		},
	}
	handler := NewContentHandler(mockService, testLogger())

	req := withUserID(httptest.NewRequest("GET", "/api/contents?limit=10&offset=20", nil), userID)
	rr := httptest.NewRecorder()

	handler.ListContents(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if gotLimit != 10 || gotOffset != 20 {
		t.Errorf("service called with wrong page: got limit=%d offset=%d want limit=10 offset=20", gotLimit, gotOffset)
	}

	var response ContentListResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if response.Count != 1 || len(response.Items) != 1 {
		t.Fatalf("wrong page size: count=%d items=%d", response.Count, len(response.Items))
	}
	if response.Items[0].Title != content.Title {
		t.Errorf("wrong content title: got %q want %q", response.Items[0].Title, content.Title)
	}
}

func TestDeleteContent(t *testing.T) {
	userID := uuid.New()
	contentID := uuid.New()

	tests := []struct {
		name           string
		userIDInCtx    uuid.UUID
		contentIDParam string
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "Success",
			userIDInCtx:    userID,
			contentIDParam: contentID.String(),
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Missing User ID",
			userIDInCtx:    uuid.Nil,
			contentIDParam: contentID.String(),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Content ID",
			userIDInCtx:    userID,
			contentIDParam: "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Content Not Found",
			userIDInCtx:    userID,
			contentIDParam: contentID.String(),
			serviceErr:     review.ErrContentNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Not Owner",
			userIDInCtx:    userID,
			contentIDParam: contentID.String(),
			serviceErr:     review.ErrContentNotOwned,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &mockReviewService{
				deleteContentFn: func(ctx context.Context, gotUserID, gotContentID uuid.UUID) error {
					return tc.serviceErr
				},
			}
			handler := NewContentHandler(mockService, testLogger())

			req := httptest.NewRequest("DELETE", "/api/contents/"+tc.contentIDParam, nil)
			if tc.userIDInCtx != uuid.Nil {
				req = withUserID(req, tc.userIDInCtx)
			}
			req = withURLParam(req, "id", tc.contentIDParam)
			rr := httptest.NewRecorder()

			handler.DeleteContent(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tc.expectedStatus)
			}
			if tc.expectedStatus == http.StatusNoContent && rr.Body.Len() > 0 {
				t.Errorf("expected empty body, got %s", rr.Body.String())
			}
		})
	}
}
