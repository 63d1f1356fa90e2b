package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/curvelearn/curve-api/internal/config"
	"github.com/curvelearn/curve-api/internal/domain"
	"github.com/curvelearn/curve-api/internal/domain/ebbinghaus"
	"github.com/curvelearn/curve-api/internal/platform/postgres"
	"github.com/curvelearn/curve-api/internal/platform/rediscache"
	"github.com/curvelearn/curve-api/internal/service/auth"
	"github.com/curvelearn/curve-api/internal/service/dashboard"
	"github.com/curvelearn/curve-api/internal/service/review"
	"github.com/curvelearn/curve-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	cache  *rediscache.Cache

	contentStore      store.ContentStore
	scheduleStore     store.ScheduleStore
	historyStore      store.HistoryStore
	subscriptionStore store.SubscriptionStore
	userStore         store.UserStore

	jwtService       auth.JWTService
	scheduler        ebbinghaus.Service
	reviewService    review.ReviewService
	dashboardService dashboard.DashboardService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.contentStore = postgres.NewPostgresContentStore(db, logger)
	app.scheduleStore = postgres.NewPostgresScheduleStore(db, logger)
	app.historyStore = postgres.NewPostgresHistoryStore(db, logger)
	app.subscriptionStore = postgres.NewPostgresSubscriptionStore(db, logger)
	app.userStore = postgres.NewPostgresUserStore(db, logger)

	app.scheduler = ebbinghaus.NewServiceWithParams(ebbinghaus.NewParams(ebbinghaus.ParamsConfig{
		TierMaxDays: map[domain.Tier]int{
			domain.TierFree:  cfg.Review.FreeMaxIntervalDays,
			domain.TierBasic: cfg.Review.BasicMaxIntervalDays,
			domain.TierPro:   cfg.Review.ProMaxIntervalDays,
		},
		InitialIntervalDays:    cfg.Review.InitialIntervalDays,
		DuplicateWindowSeconds: cfg.Review.DuplicateWindowSeconds,
	}))

	// The dashboard degrades gracefully without Redis: every read
	// recomputes from the history log.
	var dashboardCache dashboard.Cache
	app.cache, err = rediscache.New(ctx, rediscache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}, logger)
	if err != nil {
		logger.Warn("dashboard cache unavailable, running without cache", "error", err)
		app.cache = nil
	} else {
		dashboardCache = app.cache
	}

	app.dashboardService = dashboard.NewDashboardService(
		app.historyStore,
		app.userStore,
		dashboardCache,
		logger,
	)

	app.reviewService = review.NewReviewService(
		db,
		app.contentStore,
		app.scheduleStore,
		app.historyStore,
		app.subscriptionStore,
		app.userStore,
		app.scheduler,
		app.dashboardService,
		logger,
	)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("error closing cache connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
