package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/curvelearn/curve-api/internal/api/shared"
	"github.com/curvelearn/curve-api/internal/platform/logger"
	"github.com/curvelearn/curve-api/internal/service/dashboard"
	"github.com/google/uuid"
)

// DashboardHandler handles dashboard aggregate HTTP requests.
type DashboardHandler struct {
	dashboardService dashboard.DashboardService
	timeFunc         func() time.Time // Injectable for testing
	logger           *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService dashboard.DashboardService, logger *slog.Logger) *DashboardHandler {
	if dashboardService == nil {
		panic("dashboardService cannot be nil for DashboardHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for DashboardHandler")
	}

	return &DashboardHandler{
		dashboardService: dashboardService,
		timeFunc:         time.Now,
		logger:           logger.With(slog.String("component", "dashboard_handler")),
	}
}

// GetSummary handles GET /dashboard/summary?days= requests.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	days := queryInt(r, "days")

	summary, err := h.dashboardService.Summary(r.Context(), userID, h.timeFunc(), days)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to compute dashboard summary"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// GetDaily handles GET /dashboard/daily?days= requests.
func (h *DashboardHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	days := queryInt(r, "days")

	buckets, err := h.dashboardService.Daily(r.Context(), userID, h.timeFunc(), days)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to compute daily series"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, buckets)
}

// GetWeekly handles GET /dashboard/weekly?weeks= requests.
func (h *DashboardHandler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	weeks := queryInt(r, "weeks")

	buckets, err := h.dashboardService.Weekly(r.Context(), userID, h.timeFunc(), weeks)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to compute weekly series"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, buckets)
}

// queryInt reads an integer query parameter. Missing or malformed values
// read as 0, which the dashboard service replaces with its default window.
func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
