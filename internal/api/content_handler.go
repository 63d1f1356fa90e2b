// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/curvelearn/curve-api/internal/api/shared"
	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/curvelearn/curve-api/internal/platform/logger"
	"github.com/curvelearn/curve-api/internal/service/review"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ContentHandler handles content lifecycle HTTP requests.
type ContentHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(reviewService review.ReviewService, logger *slog.Logger) *ContentHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil for ContentHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ContentHandler")
	}

	return &ContentHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "content_handler")),
	}
}

// CreateContent handles POST /contents requests.
// It creates a content item and its initial review schedule atomically.
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateContentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: title and body are required")
		return
	}

	content, schedule, err := h.reviewService.CreateContent(r.Context(), userID, review.CreateContentRequest{
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Priority: domain.Priority(req.Priority),
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create content"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Info("content created",
		slog.String("user_id", userID.String()),
		slog.String("content_id", content.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, CreateContentResponse{
		Content:  contentToResponse(content),
		Schedule: scheduleToResponse(schedule),
	})
}

// ListContents handles GET /contents requests.
// It returns a page of the authenticated user's content items, newest first.
func (h *ContentHandler) ListContents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	limit := queryInt(r, "limit")
	offset := queryInt(r, "offset")

	contents, err := h.reviewService.ListContents(r.Context(), userID, limit, offset)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list contents"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := ContentListResponse{
		Items: make([]ContentResponse, 0, len(contents)),
		Count: len(contents),
	}
	for _, content := range contents {
		response.Items = append(response.Items, contentToResponse(content))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// DeleteContent handles DELETE /contents/{id} requests.
// The content's schedule is deactivated, not deleted; history rows survive.
func (h *ContentHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
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

	if err := h.reviewService.DeleteContent(r.Context(), userID, contentID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to delete content"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Info("content deleted",
		slog.String("user_id", userID.String()),
		slog.String("content_id", contentID.String()))
	w.WriteHeader(http.StatusNoContent)
}
