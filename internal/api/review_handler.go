package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/curvelearn/curve-api/internal/api/shared"
	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/curvelearn/curve-api/internal/platform/logger"
	"github.com/curvelearn/curve-api/internal/service/review"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ReviewHandler handles review queue and completion HTTP requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	timeFunc      func() time.Time // Injectable for testing
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.ReviewService, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		timeFunc:      time.Now,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// GetDueToday handles GET /reviews/due requests.
// It returns the authenticated user's review queue for their current local
// date, including schedules stranded past the current tier cap.
func (h *ReviewHandler) GetDueToday(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	items, err := h.reviewService.DueToday(r.Context(), userID, h.timeFunc())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list due reviews"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := DueListResponse{
		Items: make([]DueItemResponse, 0, len(items)),
		Count: len(items),
	}
	for _, item := range items {
		response.Items = append(response.Items, DueItemResponse{
			Content:  contentToResponse(item.Content),
			Schedule: scheduleToResponse(item.Schedule),
		})
	}

	log.Debug("due list served",
		slog.String("user_id", userID.String()),
		slog.Int("count", response.Count))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CompleteReview handles POST /contents/{id}/review requests.
// It applies the outcome to the schedule and returns the updated schedule.
func (h *ReviewHandler) CompleteReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	contentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Warn("invalid content ID format", slog.String("content_id", chi.URLParam(r, "id")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid content ID format")
		return
	}

	var req CompleteReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Invalid request: outcome must be one of remembered, partial, forgot")
		return
	}

	schedule, err := h.reviewService.CompleteReview(r.Context(), userID, contentID, review.CompleteReviewRequest{
		Outcome:          domain.ReviewOutcome(req.Outcome),
		TimeSpentSeconds: req.TimeSpentSeconds,
	}, h.timeFunc())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to complete review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Info("review completed",
		slog.String("user_id", userID.String()),
		slog.String("content_id", contentID.String()),
		slog.String("outcome", req.Outcome))
	shared.RespondWithJSON(w, r, http.StatusOK, scheduleToResponse(schedule))
}
