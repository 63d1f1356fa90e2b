package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/curvelearn/curve-api/internal/api"
	apiMiddleware "github.com/curvelearn/curve-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	contentHandler := api.NewContentHandler(app.reviewService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	dashboardHandler := api.NewDashboardHandler(app.dashboardService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		// Content lifecycle
		r.Post("/contents", contentHandler.CreateContent)
		r.Get("/contents", contentHandler.ListContents)
		r.Delete("/contents/{id}", contentHandler.DeleteContent)

		// Review queue and completion
		r.Get("/reviews/due", reviewHandler.GetDueToday)
		r.Post("/contents/{id}/review", reviewHandler.CompleteReview)

		// Dashboard aggregates
		r.Get("/dashboard/summary", dashboardHandler.GetSummary)
		r.Get("/dashboard/daily", dashboardHandler.GetDaily)
		r.Get("/dashboard/weekly", dashboardHandler.GetWeekly)
	})

	// Health check endpoint (public)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
